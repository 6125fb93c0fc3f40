package constants

// Competition bounds
const (
	// Map numbers run 1..MapCount for every weekly campaign.
	MinMapNumber = 1
	MaxMapNumber = 5
	MapCount     = 5

	// Submitted times must land between 1 second and 10 minutes.
	MinTimeMs = 1000
	MaxTimeMs = 600000

	// Display name limits
	MinDisplayNameLength = 1
	MaxDisplayNameLength = 50
)

// Weekly anchor parameters. Campaigns roll over on Sunday 18:15 in the
// Trackmania release timezone; a Sunday timestamp before 18:15 still
// belongs to the previous campaign.
const (
	WeekAnchorHour   = 18
	WeekAnchorMinute = 15
	WeekAnchorZone   = "Europe/Paris"
)
