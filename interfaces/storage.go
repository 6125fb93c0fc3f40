package interfaces

import "github.com/ellielalafontaine/trackmaniabottime/models"

// StorageRepository persists whole competition snapshots. The store mutates
// in memory first and hands the full state to the repository after every
// mutating call; partial writes are never issued.
type StorageRepository interface {
	// Load returns the stored snapshot, or an empty snapshot if nothing has
	// been persisted yet.
	Load() (*models.Snapshot, error)

	// Save overwrites the stored snapshot.
	Save(snapshot *models.Snapshot) error

	// Close releases backend resources.
	Close() error
}
