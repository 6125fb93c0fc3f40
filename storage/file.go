package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ellielalafontaine/trackmaniabottime/models"
	"github.com/ellielalafontaine/trackmaniabottime/utils"
)

// FileStorage persists snapshots to a single JSON file. Writes go to a
// temporary file in the same directory followed by a rename, so a crash
// mid-write leaves the previous state intact.
type FileStorage struct {
	path string
}

// fileSnapshot is the on-disk layout. Map keys are strings by JSON
// convention and converted at this boundary.
type fileSnapshot struct {
	CurrentWeek string                    `json:"current_week"`
	PlayerNames map[string]string         `json:"player_names"`
	PlayerTimes map[string]map[string]int `json:"player_times"`
	AuthorTimes map[string]int            `json:"author_times"`
	LastUpdated string                    `json:"last_updated"`
}

// NewFileStorage creates a file-backed repository at the given path.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Load reads the stored snapshot. A missing file is not an error: it yields
// an empty snapshot so a fresh deployment starts clean.
func (f *FileStorage) Load() (*models.Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			utils.Info("No existing data file found, starting fresh")
			return models.EmptySnapshot(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", f.path, err)
	}

	var stored fileSnapshot
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", f.path, err)
	}

	snapshot := models.EmptySnapshot()
	snapshot.CurrentWeek = stored.CurrentWeek
	for id, name := range stored.PlayerNames {
		snapshot.PlayerNames[id] = name
	}
	for id, times := range stored.PlayerTimes {
		snapshot.PlayerTimes[id] = decodeMapTimes(times)
	}
	snapshot.AuthorTimes = decodeMapTimes(stored.AuthorTimes)
	if stored.LastUpdated != "" {
		if ts, err := time.Parse(time.RFC3339, stored.LastUpdated); err == nil {
			snapshot.LastUpdated = ts
		}
	}

	return snapshot, nil
}

// Save overwrites the stored snapshot atomically.
func (f *FileStorage) Save(snapshot *models.Snapshot) error {
	stored := fileSnapshot{
		CurrentWeek: snapshot.CurrentWeek,
		PlayerNames: make(map[string]string, len(snapshot.PlayerNames)),
		PlayerTimes: make(map[string]map[string]int, len(snapshot.PlayerTimes)),
		AuthorTimes: encodeMapTimes(snapshot.AuthorTimes),
		LastUpdated: snapshot.LastUpdated.Format(time.RFC3339),
	}
	for id, name := range snapshot.PlayerNames {
		stored.PlayerNames[id] = name
	}
	for id, times := range snapshot.PlayerTimes {
		stored.PlayerTimes[id] = encodeMapTimes(times)
	}

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".competition-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", f.path, err)
	}

	return nil
}

// Close is a no-op; the file handle is not held between operations.
func (f *FileStorage) Close() error { return nil }
