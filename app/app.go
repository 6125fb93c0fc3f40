// Package app wires the bot together: config, storage, competition state,
// Discord session, scheduler and optional telemetry/export clients.
package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"github.com/ellielalafontaine/trackmaniabottime/bot"
	"github.com/ellielalafontaine/trackmaniabottime/competition"
	"github.com/ellielalafontaine/trackmaniabottime/config"
	"github.com/ellielalafontaine/trackmaniabottime/constants"
	"github.com/ellielalafontaine/trackmaniabottime/interfaces"
	"github.com/ellielalafontaine/trackmaniabottime/scheduler"
	"github.com/ellielalafontaine/trackmaniabottime/sheets"
	"github.com/ellielalafontaine/trackmaniabottime/storage"
	"github.com/ellielalafontaine/trackmaniabottime/telemetry"
	"github.com/ellielalafontaine/trackmaniabottime/utils"
)

type Application struct {
	config         *config.Config
	session        *discordgo.Session
	storage        interfaces.StorageRepository
	store          *competition.Store
	renderer       *bot.LeaderboardRenderer
	commandHandler *bot.CommandHandler
	scheduler      *scheduler.Scheduler
	metricsClient  interfaces.MetricsRecorder
	sheetsClient   interfaces.LeaderboardExporter
}

func New() (*Application, error) {
	app := &Application{}

	if err := app.loadConfig(); err != nil {
		return nil, err
	}

	if err := app.initializeDependencies(); err != nil {
		return nil, err
	}

	if err := app.initializeDiscord(); err != nil {
		return nil, err
	}

	app.setupHandlers()
	app.initializeScheduler()

	return app, nil
}

func (app *Application) loadConfig() error {
	app.config = config.Load()
	if err := app.config.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func (app *Application) initializeDependencies() error {
	repo, err := storage.NewStorage(app.config)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	app.storage = repo
	app.store = competition.NewStore(repo)
	app.renderer = bot.NewLeaderboardRenderer(app.store)

	if app.config.Telemetry.Enabled {
		app.metricsClient = telemetry.NewMetricsClient(app.config.Telemetry.ProjectID)
	}

	if app.config.Export.SpreadsheetID != "" {
		sheetsClient, err := sheets.NewSheetsClient(app.config.Export.SpreadsheetID)
		if err != nil {
			utils.Warn("Google Sheets export disabled: %v", err)
		} else {
			app.sheetsClient = sheetsClient
		}
	}

	return nil
}

func (app *Application) initializeDiscord() error {
	session, err := discordgo.New("Bot " + app.config.Discord.Token)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent | discordgo.IntentsGuilds | discordgo.IntentsDirectMessages
	app.session = session
	return nil
}

func (app *Application) setupHandlers() {
	deps := bot.NewCommandDependencies(app.store, app.renderer, app.metricsClient, app.sheetsClient, app.config)
	app.commandHandler = bot.NewCommandHandler(deps)

	app.session.AddHandler(app.commandHandler.HandleMessage)
	app.session.AddHandler(app.handleReady)
}

func (app *Application) initializeScheduler() {
	app.scheduler = scheduler.NewScheduler(app.session, app.config, app.store, app.renderer, app.metricsClient)
}

func (app *Application) Start() error {
	if err := app.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord websocket: %w", err)
	}

	app.scheduler.Start()

	if !app.config.AnnouncementsEnabled() {
		utils.Warn("%s is not set. New week announcements are disabled.", constants.EnvChannelID)
	}

	app.printStartupMessage()
	return nil
}

func (app *Application) printStartupMessage() {
	utils.Info("Weekly Shorts Bot v%s", constants.BotVersion)
	utils.Info("Current week: %s (%d registered players)", app.store.Week(), app.store.PlayerCount())
	utils.Info("Available commands: %s help", constants.CommandPrefix)
}

func (app *Application) Run() error {
	if err := app.Start(); err != nil {
		return err
	}

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	return app.Stop()
}

func (app *Application) handleReady(s *discordgo.Session, event *discordgo.Ready) {
	utils.Info("Discord bot connected successfully as %s#%s", event.User.Username, event.User.Discriminator)
	utils.Info("Bot is serving %d guilds", len(event.Guilds))

	if err := s.UpdateGameStatus(0, constants.BotStatusMessage); err != nil {
		utils.Warn("Failed to set bot status: %v", err)
	}
}

// Store exposes the competition store for the health endpoint.
func (app *Application) Store() *competition.Store {
	return app.store
}

func (app *Application) Stop() error {
	utils.Info("Shutting down...")

	if app.scheduler != nil {
		app.scheduler.Stop()
	}

	if app.metricsClient != nil {
		if err := app.metricsClient.Close(); err != nil {
			utils.Warn("Failed to close metrics client: %v", err)
		}
	}

	if app.session != nil {
		app.session.Close()
	}

	if app.storage != nil {
		if err := app.storage.Close(); err != nil {
			utils.Warn("Failed to close storage: %v", err)
		}
	}

	utils.Info("Shutdown complete.")
	return nil
}
