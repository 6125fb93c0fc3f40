package utils

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/ellielalafontaine/trackmaniabottime/constants"
	"github.com/ellielalafontaine/trackmaniabottime/errors"
)

// ValidationErrorHelper reports invalid command input back to the channel.
type ValidationErrorHelper struct {
	session   *discordgo.Session
	channelID string
}

// NewValidationErrorHelper creates a ValidationErrorHelper.
func NewValidationErrorHelper(session *discordgo.Session, channelID string) *ValidationErrorHelper {
	return &ValidationErrorHelper{
		session:   session,
		channelID: channelID,
	}
}

// HandleInvalidParams reports a malformed command invocation.
func (v *ValidationErrorHelper) HandleInvalidParams(code, message, userMsg string) {
	err := errors.NewValidationError(code, message, userMsg)
	errors.HandleDiscordError(v.session, v.channelID, err)
}

// HandleInvalidTimeFormat reports an unparseable lap time.
func (v *ValidationErrorHelper) HandleInvalidTimeFormat(raw string) {
	err := errors.NewValidationError("TIME_INVALID_FORMAT",
		fmt.Sprintf("could not parse time text %q", raw),
		constants.MsgTimeInvalidFormat)
	errors.HandleDiscordError(v.session, v.channelID, err)
}

// HandleTimeOutOfRange reports a parseable but implausible lap time.
func (v *ValidationErrorHelper) HandleTimeOutOfRange(ms int) {
	err := errors.NewValidationError("TIME_OUT_OF_RANGE",
		fmt.Sprintf("time %dms is outside the accepted range", ms),
		constants.MsgTimeOutOfRange)
	errors.HandleDiscordError(v.session, v.channelID, err)
}

// HandleInvalidMapNumber reports a map number outside the weekly campaign.
func (v *ValidationErrorHelper) HandleInvalidMapNumber(raw string) {
	err := errors.NewValidationError("INVALID_MAP_NUMBER",
		fmt.Sprintf("map number %q is not in the campaign", raw),
		constants.MsgTimeInvalidMap)
	errors.HandleDiscordError(v.session, v.channelID, err)
}

// HandleInsufficientPermissions reports a missing admin role.
func (v *ValidationErrorHelper) HandleInsufficientPermissions() {
	err := errors.NewPermissionError("INSUFFICIENT_PERMISSIONS",
		"user does not hold the administrator permission")
	errors.HandleDiscordError(v.session, v.channelID, err)
}

// DataErrorHelper reports competition-state problems back to the channel.
type DataErrorHelper struct {
	session   *discordgo.Session
	channelID string
}

// NewDataErrorHelper creates a DataErrorHelper.
func NewDataErrorHelper(session *discordgo.Session, channelID string) *DataErrorHelper {
	return &DataErrorHelper{
		session:   session,
		channelID: channelID,
	}
}

// HandleNotRegistered reports a submission from an unregistered player.
func (d *DataErrorHelper) HandleNotRegistered(playerID string) {
	err := errors.NewNotFoundError("TIME_NOT_REGISTERED",
		fmt.Sprintf("player %s has no registration", playerID),
		constants.MsgTimeNotRegistered)
	errors.HandleDiscordError(d.session, d.channelID, err)
}

// HandleNoTimeRecorded reports a deletion with nothing to delete.
func (d *DataErrorHelper) HandleNoTimeRecorded(playerID string, mapNum int) {
	err := errors.NewNotFoundError("DELETE_NO_TIME",
		fmt.Sprintf("player %s has no time on map %d", playerID, mapNum),
		fmt.Sprintf(constants.MsgDeleteNoTime, mapNum))
	errors.HandleDiscordError(d.session, d.channelID, err)
}

// SystemErrorHelper reports internal failures back to the channel.
type SystemErrorHelper struct {
	session   *discordgo.Session
	channelID string
}

// NewSystemErrorHelper creates a SystemErrorHelper.
func NewSystemErrorHelper(session *discordgo.Session, channelID string) *SystemErrorHelper {
	return &SystemErrorHelper{
		session:   session,
		channelID: channelID,
	}
}

// HandleSystemError reports an internal failure with a custom user message.
func (s *SystemErrorHelper) HandleSystemError(code, message, userMsg string, err error) {
	botErr := errors.NewSystemError(code, message, err)
	botErr.UserMsg = userMsg
	errors.HandleDiscordError(s.session, s.channelID, botErr)
}

// HandleExportFailed reports a failed spreadsheet export.
func (s *SystemErrorHelper) HandleExportFailed(err error) {
	botErr := errors.NewSystemError("EXPORT_FAILED",
		"leaderboard export failed", err)
	botErr.UserMsg = "Could not export the leaderboard. Please try again later."
	errors.HandleDiscordError(s.session, s.channelID, botErr)
}

// ErrorHandlerFactory creates the per-message error helpers.
type ErrorHandlerFactory struct {
	session   *discordgo.Session
	channelID string
}

// NewErrorHandlerFactory creates an ErrorHandlerFactory.
func NewErrorHandlerFactory(session *discordgo.Session, channelID string) *ErrorHandlerFactory {
	return &ErrorHandlerFactory{
		session:   session,
		channelID: channelID,
	}
}

// Validation returns a ValidationErrorHelper.
func (f *ErrorHandlerFactory) Validation() *ValidationErrorHelper {
	return NewValidationErrorHelper(f.session, f.channelID)
}

// Data returns a DataErrorHelper.
func (f *ErrorHandlerFactory) Data() *DataErrorHelper {
	return NewDataErrorHelper(f.session, f.channelID)
}

// System returns a SystemErrorHelper.
func (f *ErrorHandlerFactory) System() *SystemErrorHelper {
	return NewSystemErrorHelper(f.session, f.channelID)
}
