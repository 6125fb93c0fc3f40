package constants

// User interface messages
const (
	// Registration
	MsgRegisterSuccess = "Registered `%s` for %s!"
	MsgRegisterUsage   = "Usage: `!tm register <trackmania_username>`"
	MsgRegisterTooLong = "Username too long! Please use a shorter name."

	// Time submission
	MsgTimeUsage         = "Usage: `!tm time <map> <time>` (formats: `1:23.456`, `83.456`, or `83456` ms)"
	MsgTimeNotRegistered = "Please register first with `!tm register <your_trackmania_username>`"
	MsgTimeInvalidFormat = "Invalid time format! Use formats like: `1:23.456`, `83.456`, or `83456` (ms)"
	MsgTimeOutOfRange    = "Time seems unreasonable (must be between 1 second and 10 minutes)"
	MsgTimeInvalidMap    = "Map number must be between 1 and 5!"

	// Author times
	MsgAuthorUsage = "Usage: `!tm author <map> <time>`"

	// Leaderboards
	MsgLeaderboardEmpty = "No times submitted yet this week!"
	MsgMapEmpty         = "No times submitted for Map %d yet!"
	MsgTotalsEmpty      = "No player has completed all 5 maps yet!"

	// Deletion
	MsgDeleteUsage   = "Usage: `!tm delete <map>`"
	MsgDeleteSuccess = "Removed your time for Map %d."
	MsgDeleteNoTime  = "You have no recorded time for Map %d."

	// Week status
	MsgWeekStatus = "%s **Current week:** %s\n%s Registered players: %d"

	// Export
	MsgExportSuccess  = "Leaderboard exported to the results spreadsheet."
	MsgExportDisabled = "Export is not configured (no spreadsheet ID set)."

	// Permissions
	MsgInsufficientPermissions = "Administrator permissions are required for this command."

	// Basic responses
	MsgPong = "Pong! 🏓"
)

// Week rollover announcement
const (
	MsgNewWeekTitle = "🆕 New Week Started - %s"
	MsgNewWeekDesc  = "Time for new Weekly Shorts! Register and submit your times."
)

// Help message
const HelpMessage = `🏁 **Weekly Shorts Bot Commands**

**Player commands:**
• ` + "`!tm register <username>`" + ` - register your Trackmania username
• ` + "`!tm time <map> <time>`" + ` - submit a time (formats: ` + "`1:23.456`, `83.456`, `83456`" + `)
• ` + "`!tm delete <map>`" + ` - remove your time for one map
• ` + "`!tm map <map>`" + ` - per-map leaderboard with splits
• ` + "`!tm leaderboard`" + ` - overall standings across the 5 maps
• ` + "`!tm totals`" + ` - total-time ranking (all 5 maps required)
• ` + "`!tm week`" + ` - current competition week

**Admin commands:**
• ` + "`!tm author <map> <time>`" + ` - set the author medal time for a map
• ` + "`!tm export`" + ` - export the leaderboard to the results spreadsheet

**Misc:**
• ` + "`!tm ping`" + ` - check the bot is alive
• ` + "`!tm help`" + ` - show this help`

// Error code to message mapping
var ErrorMessages = map[string]string{
	"REGISTER_INVALID_PARAMS":  MsgRegisterUsage,
	"REGISTER_NAME_TOO_LONG":   MsgRegisterTooLong,
	"TIME_INVALID_PARAMS":      MsgTimeUsage,
	"TIME_NOT_REGISTERED":      MsgTimeNotRegistered,
	"TIME_INVALID_FORMAT":      MsgTimeInvalidFormat,
	"TIME_OUT_OF_RANGE":        MsgTimeOutOfRange,
	"INVALID_MAP_NUMBER":       MsgTimeInvalidMap,
	"AUTHOR_INVALID_PARAMS":    MsgAuthorUsage,
	"DELETE_INVALID_PARAMS":    MsgDeleteUsage,
	"INSUFFICIENT_PERMISSIONS": MsgInsufficientPermissions,
}
