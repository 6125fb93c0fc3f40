// Package timefmt converts between human race-time strings and millisecond
// counts. Three surface forms are accepted: "M:SS.mmm" (also with a colon
// before the fraction), "SS.mmm", and a bare millisecond count.
package timefmt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	minSecFracPattern = regexp.MustCompile(`^(\d+):(\d{1,2})[:.](\d{1,3})$`)
	secFracPattern    = regexp.MustCompile(`^(\d+)\.(\d{1,3})$`)
	bareMsPattern     = regexp.MustCompile(`^(\d+)$`)
)

// ParseTime converts a time string to milliseconds. The fraction is
// right-padded with zeros to three digits, so "1:23.4" reads as 1:23.400.
// A decimal comma is accepted in place of a dot. ok is false when the text
// matches none of the accepted forms.
func ParseTime(text string) (ms int, ok bool) {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, ",", ".")

	if m := minSecFracPattern.FindStringSubmatch(text); m != nil {
		minutes, _ := strconv.Atoi(m[1])
		seconds, _ := strconv.Atoi(m[2])
		frac, _ := strconv.Atoi(padFraction(m[3]))
		return minutes*60000 + seconds*1000 + frac, true
	}

	if m := secFracPattern.FindStringSubmatch(text); m != nil {
		seconds, _ := strconv.Atoi(m[1])
		frac, _ := strconv.Atoi(padFraction(m[2]))
		return seconds*1000 + frac, true
	}

	if bareMsPattern.MatchString(text) {
		value, err := strconv.Atoi(text)
		if err != nil {
			return 0, false
		}
		return value, true
	}

	return 0, false
}

// FormatTime renders milliseconds as a zero-padded "MM:SS.mmm" string.
// Non-positive input renders as "00:00.000".
func FormatTime(ms int) string {
	if ms <= 0 {
		return "00:00.000"
	}

	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	millis := ms % 1000

	return fmt.Sprintf("%02d:%02d.%03d", minutes, seconds, millis)
}

// padFraction right-pads a 1-3 digit fraction to exactly three digits.
func padFraction(frac string) string {
	for len(frac) < 3 {
		frac += "0"
	}
	return frac[:3]
}
