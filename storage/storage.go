// Package storage provides the persistence backends for competition
// snapshots: a JSON flat file (the default) and Firestore. Map-number keys
// are integers everywhere in memory; the string conversion required by both
// serialized forms happens only here.
package storage

import (
	"fmt"
	"strconv"

	"github.com/ellielalafontaine/trackmaniabottime/config"
	"github.com/ellielalafontaine/trackmaniabottime/constants"
	"github.com/ellielalafontaine/trackmaniabottime/interfaces"
	"github.com/ellielalafontaine/trackmaniabottime/utils"
)

// NewStorage selects a backend from the configuration.
func NewStorage(cfg *config.Config) (interfaces.StorageRepository, error) {
	switch cfg.Storage.Backend {
	case constants.StorageBackendFirestore:
		return NewFirestoreStorage()
	case constants.StorageBackendFile:
		return NewFileStorage(cfg.Storage.DataFile), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
}

// encodeMapTimes converts integer map-number keys to strings for
// serialization.
func encodeMapTimes(times map[int]int) map[string]int {
	encoded := make(map[string]int, len(times))
	for mapNum, ms := range times {
		encoded[strconv.Itoa(mapNum)] = ms
	}
	return encoded
}

// decodeMapTimes parses string map-number keys back to integers. Entries
// with unparsable keys are dropped with a warning rather than failing the
// whole load.
func decodeMapTimes(times map[string]int) map[int]int {
	decoded := make(map[int]int, len(times))
	for key, ms := range times {
		mapNum, err := strconv.Atoi(key)
		if err != nil {
			utils.Warn("Dropping stored time with bad map key %q", key)
			continue
		}
		decoded[mapNum] = ms
	}
	return decoded
}
