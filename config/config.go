package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/ellielalafontaine/trackmaniabottime/constants"
)

// Config holds the full application configuration.
type Config struct {
	Discord   DiscordConfig
	Storage   StorageConfig
	Logging   LoggingConfig
	Telemetry TelemetryConfig
	Export    ExportConfig
}

type DiscordConfig struct {
	Token     string
	ChannelID string
}

type StorageConfig struct {
	Backend  string
	DataFile string
}

type LoggingConfig struct {
	Level     string
	DebugMode bool
}

type TelemetryConfig struct {
	Enabled   bool
	ProjectID string
}

type ExportConfig struct {
	SpreadsheetID string
}

// Load reads the configuration from environment variables.
func Load() *Config {
	return &Config{
		Discord: DiscordConfig{
			Token:     getEnv(constants.EnvDiscordToken, ""),
			ChannelID: getEnv(constants.EnvChannelID, ""),
		},
		Storage: StorageConfig{
			Backend:  getEnv(constants.EnvStorageBackend, constants.StorageBackendFile),
			DataFile: getEnv(constants.EnvDataFile, constants.DefaultDataFile),
		},
		Logging: LoggingConfig{
			Level:     getEnv(constants.EnvLogLevel, constants.LogLevelInfo),
			DebugMode: getEnvBool(constants.EnvDebugMode, false),
		},
		Telemetry: TelemetryConfig{
			Enabled:   getEnvBool(constants.EnvTelemetryFlag, false),
			ProjectID: getEnv(constants.EnvGCloudProjectID, ""),
		},
		Export: ExportConfig{
			SpreadsheetID: getEnv(constants.EnvExportSheetID, ""),
		},
	}
}

// Validate checks the configuration for startup-blocking problems.
func (c *Config) Validate() error {
	if c.Discord.Token == "" {
		return &ConfigError{
			Field:   "Discord.Token",
			Message: "Discord bot token is required",
		}
	}

	validLogLevels := map[string]bool{
		constants.LogLevelDebug: true,
		constants.LogLevelInfo:  true,
		constants.LogLevelWarn:  true,
		constants.LogLevelError: true,
	}
	if !validLogLevels[strings.ToUpper(c.Logging.Level)] {
		return &ConfigError{
			Field:   "Logging.Level",
			Message: "LOG_LEVEL must be one of: DEBUG, INFO, WARN, ERROR (got: " + c.Logging.Level + ")",
		}
	}

	switch c.Storage.Backend {
	case constants.StorageBackendFile, constants.StorageBackendFirestore:
	default:
		return &ConfigError{
			Field:   "Storage.Backend",
			Message: "STORAGE_BACKEND must be 'file' or 'firestore' (got: " + c.Storage.Backend + ")",
		}
	}

	if c.Storage.Backend == constants.StorageBackendFile && c.Storage.DataFile == "" {
		return &ConfigError{
			Field:   "Storage.DataFile",
			Message: "COMPETITION_DATA_FILE must not be empty for the file backend",
		}
	}

	return nil
}

// AnnouncementsEnabled reports whether week-reset announcements can be sent.
func (c *Config) AnnouncementsEnabled() bool {
	return c.Discord.ChannelID != ""
}

// IsDebugMode reports whether debug logging is requested.
func (c *Config) IsDebugMode() bool {
	return c.Logging.DebugMode || strings.ToUpper(c.Logging.Level) == constants.LogLevelDebug
}

// ConfigError describes a configuration problem.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in " + e.Field + ": " + e.Message
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
