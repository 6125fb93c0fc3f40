package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/ellielalafontaine/trackmaniabottime/constants"
	"github.com/ellielalafontaine/trackmaniabottime/errors"
	"github.com/ellielalafontaine/trackmaniabottime/timefmt"
	"github.com/ellielalafontaine/trackmaniabottime/utils"
)

type CommandHandler struct {
	deps *CommandDependencies
}

func NewCommandHandler(deps *CommandDependencies) *CommandHandler {
	return &CommandHandler{
		deps: deps,
	}
}

// HandleMessage processes a Discord message create event.
func (ch *CommandHandler) HandleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if ch.shouldIgnoreMessage(s, m) {
		return
	}

	command, params, isDM := ch.parseMessage(m)
	if command == "" {
		return
	}

	ch.routeCommand(s, m, command, params, isDM)
}

// shouldIgnoreMessage checks whether a message should be ignored.
func (ch *CommandHandler) shouldIgnoreMessage(s *discordgo.Session, m *discordgo.MessageCreate) bool {
	// Ignore the bot's own messages
	if m.Author.ID == s.State.User.ID {
		return true
	}

	if m.GuildID == "" {
		utils.Debug("DM received from %s", m.Author.Username)
	}

	return false
}

// parseMessage extracts the command and parameters from a message. Commands
// look like "!tm time 3 1:23.456"; the bare prefix shows the help text.
func (ch *CommandHandler) parseMessage(m *discordgo.MessageCreate) (command string, params []string, isDM bool) {
	content := strings.TrimSpace(m.Content)
	if !strings.HasPrefix(content, constants.CommandPrefix) {
		return "", nil, false
	}

	args := strings.Fields(content)
	if len(args) == 0 || args[0] != constants.CommandPrefix {
		return "", nil, false
	}

	isDM = m.GuildID == ""
	if len(args) == 1 {
		return "help", []string{}, isDM
	}

	command = strings.ToLower(args[1])
	params = args[2:]

	return command, params, isDM
}

// routeCommand dispatches a command to its handler.
func (ch *CommandHandler) routeCommand(s *discordgo.Session, m *discordgo.MessageCreate, command string, params []string, isDM bool) {
	isAdmin := ch.isAdmin(s, m)
	if ch.deps.MetricsClient != nil {
		ch.deps.MetricsClient.SendCommandMetric(command, isAdmin)
	}

	switch command {
	case "help":
		ch.handleHelp(s, m)
	case "register":
		ch.handleRegister(s, m, params)
	case "time", "submit", "t":
		ch.handleTime(s, m, params)
	case "author":
		ch.handleAuthor(s, m, params, isAdmin)
	case "map":
		ch.handleMap(s, m, params)
	case "leaderboard", "lb":
		ch.handleLeaderboard(s, m)
	case "totals", "total":
		ch.handleTotals(s, m)
	case "delete":
		ch.handleDelete(s, m, params)
	case "week":
		ch.handleWeek(s, m)
	case "export":
		ch.handleExport(s, m, isAdmin)
	case "ping":
		ch.handlePing(s, m)
	}
}

func (ch *CommandHandler) handleHelp(s *discordgo.Session, m *discordgo.MessageCreate) {
	if _, err := s.ChannelMessageSend(m.ChannelID, constants.HelpMessage); err != nil {
		utils.Error("DISCORD API ERROR: Failed to send help message: %v", err)
	}
}

// handlePing handles the ping command.
func (ch *CommandHandler) handlePing(s *discordgo.Session, m *discordgo.MessageCreate) {
	if err := errors.SendDiscordInfo(s, m.ChannelID, constants.MsgPong); err != nil {
		utils.Error("Failed to send ping response: %v", err)
	}
}

func (ch *CommandHandler) handleRegister(s *discordgo.Session, m *discordgo.MessageCreate, params []string) {
	errorHandlers := utils.NewErrorHandlerFactory(s, m.ChannelID)

	if len(params) < 1 {
		errorHandlers.Validation().HandleInvalidParams("REGISTER_INVALID_PARAMS",
			"Invalid register parameters",
			constants.MsgRegisterUsage)
		return
	}

	// Trackmania usernames may contain spaces.
	name := strings.Join(params, " ")
	if !utils.IsValidDisplayName(name) {
		errorHandlers.Validation().HandleInvalidParams("REGISTER_NAME_TOO_LONG",
			fmt.Sprintf("Display name %q fails validation", name),
			constants.MsgRegisterTooLong)
		return
	}

	ch.deps.Store.Register(m.Author.ID, name)
	utils.Info("Registered player %s as %q", m.Author.ID, name)

	response := fmt.Sprintf(constants.MsgRegisterSuccess, name, ch.deps.Store.Week())
	if err := errors.SendDiscordSuccess(s, m.ChannelID, response); err != nil {
		utils.Error("Failed to send registration response: %v", err)
	}
}

func (ch *CommandHandler) handleTime(s *discordgo.Session, m *discordgo.MessageCreate, params []string) {
	errorHandlers := utils.NewErrorHandlerFactory(s, m.ChannelID)

	if len(params) < 2 {
		errorHandlers.Validation().HandleInvalidParams("TIME_INVALID_PARAMS",
			"Invalid time parameters",
			constants.MsgTimeUsage)
		return
	}

	mapNum, ok := ch.parseMapNumber(params[0], errorHandlers)
	if !ok {
		return
	}

	ms, ok := timefmt.ParseTime(params[1])
	if !ok {
		errorHandlers.Validation().HandleInvalidTimeFormat(params[1])
		return
	}
	if !utils.IsValidTimeMs(ms) {
		errorHandlers.Validation().HandleTimeOutOfRange(ms)
		return
	}

	if !ch.deps.Store.IsRegistered(m.Author.ID) {
		errorHandlers.Data().HandleNotRegistered(m.Author.ID)
		return
	}

	ch.deps.Store.SubmitTime(m.Author.ID, mapNum, ms)
	utils.Info("Time %s recorded for player %s on map %d", timefmt.FormatTime(ms), m.Author.ID, mapNum)

	if ch.deps.MetricsClient != nil {
		ch.deps.MetricsClient.SendSubmissionMetric(mapNum)
	}

	embed := ch.deps.Renderer.SubmissionEmbed(m.Author.ID, mapNum, ms)
	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		utils.Error("DISCORD API ERROR: Failed to send submission embed: %v", err)
	}
}

func (ch *CommandHandler) handleAuthor(s *discordgo.Session, m *discordgo.MessageCreate, params []string, isAdmin bool) {
	errorHandlers := utils.NewErrorHandlerFactory(s, m.ChannelID)

	if !isAdmin {
		errorHandlers.Validation().HandleInsufficientPermissions()
		return
	}

	if len(params) < 2 {
		errorHandlers.Validation().HandleInvalidParams("AUTHOR_INVALID_PARAMS",
			"Invalid author parameters",
			constants.MsgAuthorUsage)
		return
	}

	mapNum, ok := ch.parseMapNumber(params[0], errorHandlers)
	if !ok {
		return
	}

	ms, ok := timefmt.ParseTime(params[1])
	if !ok {
		errorHandlers.Validation().HandleInvalidTimeFormat(params[1])
		return
	}
	if !utils.IsValidTimeMs(ms) {
		errorHandlers.Validation().HandleTimeOutOfRange(ms)
		return
	}

	ch.deps.Store.SetAuthorTime(mapNum, ms)
	utils.Info("Author time for map %d set to %s", mapNum, timefmt.FormatTime(ms))

	response := fmt.Sprintf("Author time for Map %d set to `%s`.", mapNum, timefmt.FormatTime(ms))
	if err := errors.SendDiscordSuccess(s, m.ChannelID, response); err != nil {
		utils.Error("Failed to send author time response: %v", err)
	}
}

func (ch *CommandHandler) handleMap(s *discordgo.Session, m *discordgo.MessageCreate, params []string) {
	errorHandlers := utils.NewErrorHandlerFactory(s, m.ChannelID)

	if len(params) < 1 {
		errorHandlers.Validation().HandleInvalidParams("MAP_INVALID_PARAMS",
			"Invalid map parameters",
			"Usage: `!tm map <map>`")
		return
	}

	mapNum, ok := ch.parseMapNumber(params[0], errorHandlers)
	if !ok {
		return
	}

	entries := ch.deps.Store.MapLeaderboard(mapNum)
	if len(entries) == 0 {
		if err := errors.SendDiscordInfo(s, m.ChannelID, fmt.Sprintf(constants.MsgMapEmpty, mapNum)); err != nil {
			utils.Error("Failed to send empty map response: %v", err)
		}
		return
	}

	embed := ch.deps.Renderer.MapBoard(mapNum, entries)
	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		utils.Error("DISCORD API ERROR: Failed to send map leaderboard: %v", err)
	}
}

func (ch *CommandHandler) handleLeaderboard(s *discordgo.Session, m *discordgo.MessageCreate) {
	entries := ch.deps.Store.OverallLeaderboard()
	if len(entries) == 0 {
		if err := errors.SendDiscordInfo(s, m.ChannelID, constants.MsgLeaderboardEmpty); err != nil {
			utils.Error("Failed to send empty leaderboard response: %v", err)
		}
		return
	}

	embed := ch.deps.Renderer.Overall(entries)
	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		utils.Error("DISCORD API ERROR: Failed to send overall leaderboard: %v", err)
	}
}

func (ch *CommandHandler) handleTotals(s *discordgo.Session, m *discordgo.MessageCreate) {
	entries := ch.deps.Store.TotalsLeaderboard()
	if len(entries) == 0 {
		if err := errors.SendDiscordInfo(s, m.ChannelID, constants.MsgTotalsEmpty); err != nil {
			utils.Error("Failed to send empty totals response: %v", err)
		}
		return
	}

	embed := ch.deps.Renderer.Totals(entries)
	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		utils.Error("DISCORD API ERROR: Failed to send totals leaderboard: %v", err)
	}
}

func (ch *CommandHandler) handleDelete(s *discordgo.Session, m *discordgo.MessageCreate, params []string) {
	errorHandlers := utils.NewErrorHandlerFactory(s, m.ChannelID)

	if len(params) < 1 {
		errorHandlers.Validation().HandleInvalidParams("DELETE_INVALID_PARAMS",
			"Invalid delete parameters",
			constants.MsgDeleteUsage)
		return
	}

	mapNum, ok := ch.parseMapNumber(params[0], errorHandlers)
	if !ok {
		return
	}

	if !ch.deps.Store.DeleteTime(m.Author.ID, mapNum) {
		errorHandlers.Data().HandleNoTimeRecorded(m.Author.ID, mapNum)
		return
	}

	utils.Info("Deleted time for player %s on map %d", m.Author.ID, mapNum)
	response := fmt.Sprintf(constants.MsgDeleteSuccess, mapNum)
	if err := errors.SendDiscordSuccess(s, m.ChannelID, response); err != nil {
		utils.Error("Failed to send delete response: %v", err)
	}
}

func (ch *CommandHandler) handleWeek(s *discordgo.Session, m *discordgo.MessageCreate) {
	response := fmt.Sprintf(constants.MsgWeekStatus,
		constants.EmojiCalendar, ch.deps.Store.Week(),
		constants.EmojiStats, ch.deps.Store.PlayerCount())
	if _, err := s.ChannelMessageSend(m.ChannelID, response); err != nil {
		utils.Error("DISCORD API ERROR: Failed to send week status: %v", err)
	}
}

func (ch *CommandHandler) handleExport(s *discordgo.Session, m *discordgo.MessageCreate, isAdmin bool) {
	errorHandlers := utils.NewErrorHandlerFactory(s, m.ChannelID)

	if !isAdmin {
		errorHandlers.Validation().HandleInsufficientPermissions()
		return
	}

	if ch.deps.SheetsClient == nil {
		if err := errors.SendDiscordWarning(s, m.ChannelID, constants.MsgExportDisabled); err != nil {
			utils.Error("Failed to send export disabled warning: %v", err)
		}
		return
	}

	entries := ch.deps.Store.OverallLeaderboard()
	if err := ch.deps.SheetsClient.ExportOverall(ch.deps.Store.Week(), entries); err != nil {
		utils.Error("Failed to export leaderboard: %v", err)
		errorHandlers.System().HandleExportFailed(err)
		return
	}

	if err := errors.SendDiscordSuccess(s, m.ChannelID, constants.MsgExportSuccess); err != nil {
		utils.Error("Failed to send export response: %v", err)
	}
}

// parseMapNumber parses and validates a map number parameter, reporting the
// error to the channel on failure.
func (ch *CommandHandler) parseMapNumber(raw string, errorHandlers *utils.ErrorHandlerFactory) (int, bool) {
	mapNum, err := strconv.Atoi(raw)
	if err != nil || !utils.IsValidMapNumber(mapNum) {
		errorHandlers.Validation().HandleInvalidMapNumber(raw)
		return 0, false
	}
	return mapNum, true
}

// isAdmin checks whether the message author holds the server administrator
// permission.
func (ch *CommandHandler) isAdmin(s *discordgo.Session, m *discordgo.MessageCreate) bool {
	// No admin permissions in DMs
	if m.GuildID == "" {
		return false
	}

	guild, err := s.State.Guild(m.GuildID)
	if err != nil || guild == nil {
		utils.Warn("Cannot get guild information: %v", err)
		return false
	}

	if m.Author.ID == guild.OwnerID {
		return true
	}

	member, err := s.GuildMember(m.GuildID, m.Author.ID)
	if err != nil || member == nil {
		utils.Warn("Cannot get member information for %s: %v", m.Author.Username, err)
		return false
	}

	for _, roleID := range member.Roles {
		role, err := s.State.Role(m.GuildID, roleID)
		if err != nil {
			utils.Warn("Cannot get role %s: %v", roleID, err)
			continue
		}

		if role.Permissions&discordgo.PermissionAdministrator != 0 {
			return true
		}
	}

	return false
}
