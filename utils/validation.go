package utils

import (
	"strings"

	"github.com/ellielalafontaine/trackmaniabottime/constants"
)

// IsValidDisplayName checks the length and content bounds for a Trackmania
// username. Names are free text up to 50 characters.
func IsValidDisplayName(name string) bool {
	if len(name) < constants.MinDisplayNameLength || len(name) > constants.MaxDisplayNameLength {
		return false
	}
	return len(strings.TrimSpace(name)) > 0
}

// IsValidMapNumber reports whether a map number belongs to the weekly
// campaign.
func IsValidMapNumber(mapNum int) bool {
	return mapNum >= constants.MinMapNumber && mapNum <= constants.MaxMapNumber
}

// IsValidTimeMs reports whether a millisecond count is plausible for a
// weekly short: between 1 second and 10 minutes.
func IsValidTimeMs(ms int) bool {
	return ms >= constants.MinTimeMs && ms <= constants.MaxTimeMs
}

// TruncateString shortens a string to maxLen runes for fixed-width output.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}
