// Package scheduler drives the weekly rollover. A ticker re-derives the week
// key at a short interval; when it moves past the stored key the competition
// data is reset and the new week is announced.
package scheduler

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/ellielalafontaine/trackmaniabottime/bot"
	"github.com/ellielalafontaine/trackmaniabottime/competition"
	"github.com/ellielalafontaine/trackmaniabottime/config"
	"github.com/ellielalafontaine/trackmaniabottime/constants"
	"github.com/ellielalafontaine/trackmaniabottime/interfaces"
	"github.com/ellielalafontaine/trackmaniabottime/utils"
)

type Scheduler struct {
	session       *discordgo.Session
	config        *config.Config
	store         *competition.Store
	renderer      *bot.LeaderboardRenderer
	metricsClient interfaces.MetricsRecorder
	ticker        *time.Ticker
	stopChan      chan bool
}

func NewScheduler(
	session *discordgo.Session,
	cfg *config.Config,
	store *competition.Store,
	renderer *bot.LeaderboardRenderer,
	metricsClient interfaces.MetricsRecorder,
) *Scheduler {
	return &Scheduler{
		session:       session,
		config:        cfg,
		store:         store,
		renderer:      renderer,
		metricsClient: metricsClient,
		stopChan:      make(chan bool),
	}
}

// Start launches the periodic week-rollover check.
func (s *Scheduler) Start() {
	s.ticker = time.NewTicker(constants.ResetCheckInterval)

	go func() {
		for {
			select {
			case <-s.ticker.C:
				s.checkWeekRollover()
			case <-s.stopChan:
				return
			}
		}
	}()

	utils.Info("Week rollover scheduler started (checking every %v)", constants.ResetCheckInterval)
}

// checkWeekRollover resets the competition when the week key has moved on
// and announces the new week.
func (s *Scheduler) checkWeekRollover() {
	oldWeek, newWeek, reset := s.store.CheckAndReset()
	if !reset {
		return
	}

	utils.Info("Weekly rollover: %s -> %s", oldWeek, newWeek)

	if s.metricsClient != nil {
		s.metricsClient.SendWeekResetMetric(s.store.PlayerCount())
	}

	s.announceNewWeek(newWeek)
}

// announceNewWeek posts the rollover embed to the configured channel.
func (s *Scheduler) announceNewWeek(week string) {
	if !s.config.AnnouncementsEnabled() {
		utils.Debug("No announcement channel configured - skipping new week announcement")
		return
	}

	embed := s.renderer.NewWeekEmbed(week)
	if _, err := s.session.ChannelMessageSendEmbed(s.config.Discord.ChannelID, embed); err != nil {
		utils.Error("DISCORD API ERROR: Failed to send new week announcement: %v", err)
		return
	}

	utils.Info("New week announcement sent for %s", week)
}

func (s *Scheduler) Stop() {
	if s.ticker != nil {
		s.ticker.Stop()
	}

	select {
	case s.stopChan <- true:
	default:
		// channel is full or no receiver, skip
	}

	utils.Info("Scheduler stopped")
}
