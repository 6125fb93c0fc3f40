package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/ellielalafontaine/trackmaniabottime/competition"
	"github.com/ellielalafontaine/trackmaniabottime/constants"
	"github.com/ellielalafontaine/trackmaniabottime/models"
	"github.com/ellielalafontaine/trackmaniabottime/timefmt"
	"github.com/ellielalafontaine/trackmaniabottime/utils"
)

const (
	overallDisplayLimit = 10
	boardNameWidth      = 18
)

// LeaderboardRenderer formats competition standings as Discord embeds.
type LeaderboardRenderer struct {
	store *competition.Store
}

func NewLeaderboardRenderer(store *competition.Store) *LeaderboardRenderer {
	return &LeaderboardRenderer{store: store}
}

// MapBoard renders a per-map leaderboard. The fastest entry shows no split;
// everyone else shows the gap to the leader. Times at or under the author
// time carry a medal marker.
func (r *LeaderboardRenderer) MapBoard(mapNum int, entries []models.MapEntry) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s %s", constants.EmojiMap, models.MapName(mapNum)),
		Color: constants.ColorMap,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Week %s", r.store.Week()),
		},
	}

	authorMs, hasAuthor := r.store.AuthorTime(mapNum)
	if hasAuthor {
		embed.Description = fmt.Sprintf("%s Author time: `%s`",
			constants.EmojiMedal, timefmt.FormatTime(authorMs))
	}

	var builder strings.Builder
	builder.WriteString("```\n")
	for i, entry := range entries {
		line := fmt.Sprintf("%2d. %-*s %s",
			i+1,
			boardNameWidth, truncateName(entry.DisplayName),
			timefmt.FormatTime(entry.TimeMs))
		if entry.Split != nil {
			line += fmt.Sprintf("  +%s", timefmt.FormatTime(*entry.Split))
		}
		if hasAuthor && entry.TimeMs <= authorMs {
			line += " *"
		}
		builder.WriteString(line + "\n")
	}
	builder.WriteString("```")
	if hasAuthor {
		builder.WriteString("\n`*` = author medal")
	}

	embed.Description += "\n" + builder.String()
	return embed
}

// Overall renders the overall standings: maps completed, then author medals,
// then name. Only the top entries are shown to keep the embed readable.
func (r *LeaderboardRenderer) Overall(entries []models.OverallEntry) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s Weekly Shorts Leaderboard", constants.EmojiTrophy),
		Color: constants.ColorOverall,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Week %s", r.store.Week()),
		},
	}

	shown := entries
	if len(shown) > overallDisplayLimit {
		shown = shown[:overallDisplayLimit]
	}

	var builder strings.Builder
	for i, entry := range shown {
		builder.WriteString(fmt.Sprintf("**%d. %s** — %d/%d maps",
			i+1, entry.DisplayName, entry.MapsDone, constants.MapCount))
		if entry.AuthorMedals > 0 {
			builder.WriteString(fmt.Sprintf(", %d %s", entry.AuthorMedals, constants.EmojiMedal))
		}
		builder.WriteString("\n")
		builder.WriteString(formatMapTimes(entry.Times))
		builder.WriteString("\n")
	}
	if len(entries) > overallDisplayLimit {
		builder.WriteString(fmt.Sprintf("…and %d more players\n", len(entries)-overallDisplayLimit))
	}

	embed.Description = builder.String()
	return embed
}

// Totals renders the total-time ranking over players who completed every map.
func (r *LeaderboardRenderer) Totals(entries []models.TotalEntry) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s Total Times (all %d maps)", constants.EmojiClock, constants.MapCount),
		Color: constants.ColorTotals,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Week %s", r.store.Week()),
		},
	}

	var builder strings.Builder
	builder.WriteString("```\n")
	for i, entry := range entries {
		line := fmt.Sprintf("%2d. %-*s %s",
			i+1,
			boardNameWidth, truncateName(entry.DisplayName),
			timefmt.FormatTime(entry.TotalMs))
		if entry.Split != nil {
			line += fmt.Sprintf("  +%s", timefmt.FormatTime(*entry.Split))
		}
		builder.WriteString(line + "\n")
	}
	builder.WriteString("```")

	embed.Description = builder.String()
	return embed
}

// SubmissionEmbed confirms an accepted time with the player's current rank
// on the map.
func (r *LeaderboardRenderer) SubmissionEmbed(playerID string, mapNum, ms int) *discordgo.MessageEmbed {
	name, _ := r.store.PlayerName(playerID)

	rank := 0
	entries := r.store.MapLeaderboard(mapNum)
	for i, entry := range entries {
		if entry.PlayerID == playerID {
			rank = i + 1
			break
		}
	}

	description := fmt.Sprintf("**%s** — `%s` on %s", name, timefmt.FormatTime(ms), models.MapName(mapNum))
	if rank > 0 {
		description += fmt.Sprintf("\nCurrently **#%d** of %d", rank, len(entries))
	}

	color := constants.ColorSuccess
	if authorMs, ok := r.store.AuthorTime(mapNum); ok && ms <= authorMs {
		description += fmt.Sprintf("\n%s Author medal!", constants.EmojiMedal)
		color = constants.ColorGold
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s Time accepted", constants.EmojiClock),
		Description: description,
		Color:       color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Week %s", r.store.Week()),
		},
	}
}

// NewWeekEmbed announces a week rollover.
func (r *LeaderboardRenderer) NewWeekEmbed(week string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf(constants.MsgNewWeekTitle, week),
		Description: constants.MsgNewWeekDesc,
		Color:       constants.ColorNewWeek,
	}
}

// formatMapTimes renders a player's per-map times as one inline code line,
// marking missing maps.
func formatMapTimes(times map[int]int) string {
	parts := make([]string, 0, constants.MapCount)
	for mapNum := constants.MinMapNumber; mapNum <= constants.MaxMapNumber; mapNum++ {
		if ms, ok := times[mapNum]; ok {
			parts = append(parts, fmt.Sprintf("M%d %s", mapNum, timefmt.FormatTime(ms)))
		} else {
			parts = append(parts, fmt.Sprintf("M%d %s", mapNum, constants.EmojiMissing))
		}
	}
	return "`" + strings.Join(parts, " | ") + "`"
}

func truncateName(name string) string {
	return utils.TruncateString(name, boardNameWidth)
}
