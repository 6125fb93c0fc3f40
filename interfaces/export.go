package interfaces

import "github.com/ellielalafontaine/trackmaniabottime/models"

// LeaderboardExporter writes the overall standings to an external results
// store.
type LeaderboardExporter interface {
	ExportOverall(week string, entries []models.OverallEntry) error
}
