// Package errors defines the structured error type surfaced to Discord
// users and the helpers that deliver it. Validation problems never become
// faults: they are rendered as channel messages with a human-readable
// reason.
package errors

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/ellielalafontaine/trackmaniabottime/constants"
)

// ErrorType classifies an application error.
type ErrorType int

const (
	TypeValidation ErrorType = iota
	TypeNotFound
	TypePermission
	TypeStorage
	TypeSystem
)

// AppError is a structured application error with a separate user-facing
// message.
type AppError struct {
	Type     ErrorType
	Code     string
	Message  string
	UserMsg  string
	Internal error
}

func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Internal)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// GetUserMessage returns the message shown to the Discord user.
func (e *AppError) GetUserMessage() string {
	if e.UserMsg != "" {
		return e.UserMsg
	}
	return e.Message
}

// NewValidationError creates an input validation error.
func NewValidationError(code, message, userMsg string) *AppError {
	return &AppError{
		Type:    TypeValidation,
		Code:    code,
		Message: message,
		UserMsg: userMsg,
	}
}

// NewNotFoundError creates a missing-resource error.
func NewNotFoundError(code, message, userMsg string) *AppError {
	return &AppError{
		Type:    TypeNotFound,
		Code:    code,
		Message: message,
		UserMsg: userMsg,
	}
}

// NewPermissionError creates a permission error.
func NewPermissionError(code, message string) *AppError {
	return &AppError{
		Type:    TypePermission,
		Code:    code,
		Message: message,
		UserMsg: constants.MsgInsufficientPermissions,
	}
}

// NewStorageError creates a persistence error.
func NewStorageError(code, message string, err error) *AppError {
	return &AppError{
		Type:     TypeStorage,
		Code:     code,
		Message:  message,
		UserMsg:  "Could not save the competition data. Your change is recorded in memory and will be retried on the next update.",
		Internal: err,
	}
}

// NewSystemError creates an internal error.
func NewSystemError(code, message string, err error) *AppError {
	return &AppError{
		Type:     TypeSystem,
		Code:     code,
		Message:  message,
		UserMsg:  "An internal error occurred. Please ping an admin.",
		Internal: err,
	}
}

// Discord message helpers

// HandleDiscordError logs an error and reports it to the channel.
func HandleDiscordError(s *discordgo.Session, channelID string, err error) {
	if appErr, ok := err.(*AppError); ok {
		if appErr.Internal != nil {
			fmt.Printf("ERROR: %s - %s: %v\n", appErr.Code, appErr.Message, appErr.Internal)
		} else {
			fmt.Printf("ERROR: %s - %s\n", appErr.Code, appErr.Message)
		}

		if discordErr := SendDiscordMessageWithRetry(s, channelID, constants.EmojiError+" "+appErr.GetUserMessage()); discordErr != nil {
			fmt.Printf("DISCORD API ERROR: Failed to send error message after retries: %v\n", discordErr)
		}
		return
	}

	fmt.Printf("UNEXPECTED ERROR: %v\n", err)
	if discordErr := SendDiscordMessageWithRetry(s, channelID, constants.EmojiError+" An unexpected error occurred."); discordErr != nil {
		fmt.Printf("DISCORD API ERROR: Failed to send error message after retries: %v\n", discordErr)
	}
}

// SendDiscordSuccess sends a success message to a channel.
func SendDiscordSuccess(s *discordgo.Session, channelID, message string) error {
	return SendDiscordMessageWithRetry(s, channelID, constants.EmojiSuccess+" "+message)
}

// SendDiscordInfo sends an informational message to a channel.
func SendDiscordInfo(s *discordgo.Session, channelID, message string) error {
	return SendDiscordMessageWithRetry(s, channelID, constants.EmojiInfo+" "+message)
}

// SendDiscordWarning sends a warning message to a channel.
func SendDiscordWarning(s *discordgo.Session, channelID, message string) error {
	return SendDiscordMessageWithRetry(s, channelID, constants.EmojiWarning+" "+message)
}

// SendDiscordMessageWithRetry sends a channel message with exponential
// backoff.
func SendDiscordMessageWithRetry(s *discordgo.Session, channelID, message string) error {
	const maxRetries = constants.MaxDiscordRetries
	const baseDelay = constants.BaseRetryDelay

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := s.ChannelMessageSend(channelID, message)
		if err == nil {
			if attempt > 0 {
				fmt.Printf("Discord message sent successfully after %d retries\n", attempt)
			}
			return nil
		}

		lastErr = err
		if attempt < maxRetries-1 {
			delay := time.Duration(1<<attempt) * baseDelay // 1s, 2s, 4s
			fmt.Printf("Discord API call failed (attempt %d/%d): %v. Retrying in %v...\n",
				attempt+1, maxRetries, err, delay)
			time.Sleep(delay)
		}
	}

	return lastErr
}
