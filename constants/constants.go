package constants

import "time"

// Discord command surface
const (
	CommandPrefix = "!tm"
)

// Scheduler settings
const (
	// ResetCheckInterval keeps drift from the weekly anchor small.
	ResetCheckInterval = 5 * time.Minute
)

// Discord API retry settings
const (
	MaxDiscordRetries = 3
	BaseRetryDelay    = 1 * time.Second
)

// Emoji constants
const (
	EmojiSuccess  = "✅"
	EmojiError    = "❌"
	EmojiInfo     = "ℹ️"
	EmojiWarning  = "⚠️"
	EmojiTrophy   = "🏁"
	EmojiMap      = "🗺️"
	EmojiMedal    = "🏅"
	EmojiStats    = "📊"
	EmojiCalendar = "📅"
	EmojiClock    = "⏱️"
	EmojiNew      = "🆕"
	EmojiMissing  = "❌"
)

// Date formats
const (
	DateFormat     = "2006-01-02"
	DateTimeFormat = "2006-01-02 15:04:05"
)

// Log level names
const (
	LogLevelDebug = "DEBUG"
	LogLevelInfo  = "INFO"
	LogLevelWarn  = "WARN"
	LogLevelError = "ERROR"
)

// Environment variable keys
const (
	EnvDiscordToken    = "DISCORD_BOT_TOKEN"
	EnvChannelID       = "LEADERBOARD_CHANNEL_ID"
	EnvLogLevel        = "LOG_LEVEL"
	EnvDebugMode       = "DEBUG_MODE"
	EnvDataFile        = "COMPETITION_DATA_FILE"
	EnvStorageBackend  = "STORAGE_BACKEND"
	EnvFirebaseCreds   = "FIREBASE_CREDENTIALS_JSON"
	EnvExportSheetID   = "EXPORT_SPREADSHEET_ID"
	EnvTelemetryFlag   = "TELEMETRY_ENABLED"
	EnvGCloudProjectID = "GOOGLE_CLOUD_PROJECT"
)

// Storage backend names
const (
	StorageBackendFile      = "file"
	StorageBackendFirestore = "firestore"
	DefaultDataFile         = "competition_data.json"
)

// Telemetry settings
const (
	TelemetryNamespace       = "trackmania-bot"
	TelemetryJobName         = "weekly-shorts-bot"
	TelemetryTaskID          = "main"
	TelemetryCredentialsFile = "trackmania-bot-gcloud-credentials.json"
	TelemetryFilePermissions = 0600
)

// System settings
const (
	BotVersion       = "0.3.0"
	BotStatusMessage = "!tm help | Weekly Shorts"
	DefaultHTTPPort  = "8080"
	BytesToMB        = 1024 * 1024

	HealthStatusHealthy = "healthy"
)

// Google Sheets export settings
const (
	ExportSheetRange       = "A1"
	ExportValueInputOption = "RAW"
)

// Embed colors
const (
	ColorSuccess = 0x57F287 // green, time accepted
	ColorGold    = 0xE09E37 // author time set
	ColorOverall = 0x57F287
	ColorMap     = 0xE67E22 // orange, per-map boards
	ColorTotals  = 0x3498DB
	ColorNewWeek = 0x3498DB
	ColorNeutral = 0x95A5A6
)
