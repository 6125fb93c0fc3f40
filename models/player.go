package models

import "time"

// Player is a registered competitor. The ID is the Discord user ID and is
// stable across week resets; the display name is the Trackmania username.
type Player struct {
	ID          string
	DisplayName string
}

// Snapshot is the full persistable state of one competition week. Player IDs
// and map numbers are typed here; string conversion for serialized map keys
// happens only at the storage boundary.
type Snapshot struct {
	CurrentWeek string
	PlayerNames map[string]string
	PlayerTimes map[string]map[int]int
	AuthorTimes map[int]int
	LastUpdated time.Time
}

// EmptySnapshot returns a snapshot with all maps allocated, suitable as the
// fallback initial state when no stored data exists.
func EmptySnapshot() *Snapshot {
	return &Snapshot{
		PlayerNames: make(map[string]string),
		PlayerTimes: make(map[string]map[int]int),
		AuthorTimes: make(map[int]int),
	}
}
