package competition

import (
	"sync"
	"time"

	"github.com/ellielalafontaine/trackmaniabottime/constants"
	"github.com/ellielalafontaine/trackmaniabottime/utils"
)

var (
	anchorLoc     *time.Location
	anchorLocOnce sync.Once
)

// anchorLocation returns the timezone the weekly anchor is defined in.
func anchorLocation() *time.Location {
	anchorLocOnce.Do(func() {
		loc, err := time.LoadLocation(constants.WeekAnchorZone)
		if err != nil {
			utils.Warn("Failed to load timezone %s, falling back to fixed CET: %v", constants.WeekAnchorZone, err)
			loc = time.FixedZone("CET", 60*60)
		}
		anchorLoc = loc
	})
	return anchorLoc
}

// WeekKey derives the competition week identifier for a point in time: the
// date of the most recent Sunday 18:15 in the anchor timezone. A Sunday
// timestamp before 18:15 still belongs to the previous week.
func WeekKey(now time.Time) string {
	t := now.In(anchorLocation())

	anchor := time.Date(t.Year(), t.Month(), t.Day(),
		constants.WeekAnchorHour, constants.WeekAnchorMinute, 0, 0, anchorLocation())
	anchor = anchor.AddDate(0, 0, -int(t.Weekday()))

	if t.Before(anchor) {
		anchor = anchor.AddDate(0, 0, -7)
	}

	return anchor.Format(constants.DateFormat)
}
