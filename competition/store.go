// Package competition owns the weekly time-trial state: registered players,
// per-map times, author times and the active week key. All mutations are
// synchronous and followed by a whole-state persist through the injected
// storage repository.
package competition

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ellielalafontaine/trackmaniabottime/constants"
	"github.com/ellielalafontaine/trackmaniabottime/interfaces"
	"github.com/ellielalafontaine/trackmaniabottime/models"
	"github.com/ellielalafontaine/trackmaniabottime/utils"
)

// Store is the single mutator of competition state. discordgo dispatches
// handlers on separate goroutines, so every operation takes the lock around
// mutate-then-persist.
type Store struct {
	mu    sync.Mutex
	repo  interfaces.StorageRepository
	clock func() time.Time

	currentWeek string
	playerNames map[string]string
	playerTimes map[string]map[int]int
	authorTimes map[int]int
}

// NewStore builds a store backed by the given repository and loads the
// persisted state. A failed load falls back to an empty current week rather
// than aborting startup.
func NewStore(repo interfaces.StorageRepository) *Store {
	return NewStoreWithClock(repo, time.Now)
}

// NewStoreWithClock is NewStore with an injectable clock for tests.
func NewStoreWithClock(repo interfaces.StorageRepository, clock func() time.Time) *Store {
	s := &Store{
		repo:        repo,
		clock:       clock,
		playerNames: make(map[string]string),
		playerTimes: make(map[string]map[int]int),
		authorTimes: make(map[int]int),
	}
	s.load()
	return s
}

// load pulls the stored snapshot and reconciles it with the current week.
// Times from a stale week are discarded; player names always survive.
func (s *Store) load() {
	s.currentWeek = WeekKey(s.clock())

	snapshot, err := s.repo.Load()
	if err != nil {
		utils.Warn("Error loading competition data, starting fresh: %v", err)
		return
	}

	for id, name := range snapshot.PlayerNames {
		s.playerNames[id] = name
	}

	if snapshot.CurrentWeek == s.currentWeek {
		for id, times := range snapshot.PlayerTimes {
			s.playerTimes[id] = make(map[int]int, len(times))
			for mapNum, ms := range times {
				s.playerTimes[id][mapNum] = ms
			}
		}
		for mapNum, ms := range snapshot.AuthorTimes {
			s.authorTimes[mapNum] = ms
		}
		utils.Info("Loaded existing data for week %s (%d players)", s.currentWeek, len(s.playerNames))
		return
	}

	if snapshot.CurrentWeek != "" {
		utils.Info("New week detected! Reset times, kept %d registered players", len(s.playerNames))
		s.persist()
	}
}

// Register upserts a player's display name and ensures a time map exists.
// Display name length is checked at the command boundary. Idempotent.
func (s *Store) Register(playerID, displayName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.playerNames[playerID] = displayName
	if _, ok := s.playerTimes[playerID]; !ok {
		s.playerTimes[playerID] = make(map[int]int)
	}
	s.persist()
}

// SubmitTime records a time for one map, overwriting any earlier submission.
// Returns false for unregistered players and out-of-range map numbers.
// Millisecond range validation happens at the command boundary.
func (s *Store) SubmitTime(playerID string, mapNum, ms int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, registered := s.playerNames[playerID]; !registered {
		return false
	}
	if !validMapNumber(mapNum) {
		return false
	}

	if _, ok := s.playerTimes[playerID]; !ok {
		s.playerTimes[playerID] = make(map[int]int)
	}
	s.playerTimes[playerID][mapNum] = ms
	s.persist()
	return true
}

// SetAuthorTime overwrites the reference time for a map.
func (s *Store) SetAuthorTime(mapNum, ms int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !validMapNumber(mapNum) {
		return false
	}

	s.authorTimes[mapNum] = ms
	s.persist()
	return true
}

// DeleteTime removes a player's time for one map. Returns false when no such
// time is recorded.
func (s *Store) DeleteTime(playerID string, mapNum int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	times, ok := s.playerTimes[playerID]
	if !ok {
		return false
	}
	if _, ok := times[mapNum]; !ok {
		return false
	}

	delete(times, mapNum)
	s.persist()
	return true
}

// MapLeaderboard returns every player with a time on the given map, fastest
// first. Exact-millisecond ties order by player ID for determinism. The
// fastest entry carries a nil split; every other entry carries its gap to
// the fastest time.
func (s *Store) MapLeaderboard(mapNum int) []models.MapEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !validMapNumber(mapNum) {
		return nil
	}

	var entries []models.MapEntry
	for playerID, times := range s.playerTimes {
		ms, ok := times[mapNum]
		if !ok {
			continue
		}
		entries = append(entries, models.MapEntry{
			PlayerID:    playerID,
			DisplayName: s.displayName(playerID),
			TimeMs:      ms,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TimeMs != entries[j].TimeMs {
			return entries[i].TimeMs < entries[j].TimeMs
		}
		return entries[i].PlayerID < entries[j].PlayerID
	})

	applySplits(entries)
	return entries
}

// OverallLeaderboard returns every player with at least one recorded time,
// ordered by maps completed, then author medals, then display name
// (case-insensitive).
func (s *Store) OverallLeaderboard() []models.OverallEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entries []models.OverallEntry
	for playerID, times := range s.playerTimes {
		if len(times) == 0 {
			continue
		}

		medals := 0
		copied := make(map[int]int, len(times))
		for mapNum, ms := range times {
			copied[mapNum] = ms
			if authorMs, ok := s.authorTimes[mapNum]; ok && ms <= authorMs {
				medals++
			}
		}

		entries = append(entries, models.OverallEntry{
			PlayerID:     playerID,
			DisplayName:  s.displayName(playerID),
			MapsDone:     len(times),
			Times:        copied,
			AuthorMedals: medals,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].MapsDone != entries[j].MapsDone {
			return entries[i].MapsDone > entries[j].MapsDone
		}
		if entries[i].AuthorMedals != entries[j].AuthorMedals {
			return entries[i].AuthorMedals > entries[j].AuthorMedals
		}
		return strings.ToLower(entries[i].DisplayName) < strings.ToLower(entries[j].DisplayName)
	})

	return entries
}

// TotalsLeaderboard ranks players who completed all five maps by the sum of
// their times, ascending, with the same split convention as MapLeaderboard.
func (s *Store) TotalsLeaderboard() []models.TotalEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entries []models.TotalEntry
	for playerID, times := range s.playerTimes {
		if len(times) < constants.MapCount {
			continue
		}

		total := 0
		for _, ms := range times {
			total += ms
		}

		entries = append(entries, models.TotalEntry{
			PlayerID:    playerID,
			DisplayName: s.displayName(playerID),
			TotalMs:     total,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalMs != entries[j].TotalMs {
			return entries[i].TotalMs < entries[j].TotalMs
		}
		return entries[i].PlayerID < entries[j].PlayerID
	})

	if len(entries) > 0 {
		first := entries[0].TotalMs
		for i := 1; i < len(entries); i++ {
			split := entries[i].TotalMs - first
			entries[i].Split = &split
		}
	}

	return entries
}

// CheckAndReset compares the stored week key with a freshly derived one and
// clears all time data on rollover. Player names survive. Returns the old
// and new keys and whether a reset happened.
func (s *Store) CheckAndReset() (oldWeek, newWeek string, reset bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	newWeek = WeekKey(s.clock())
	if newWeek == s.currentWeek {
		return s.currentWeek, newWeek, false
	}

	oldWeek = s.currentWeek
	s.currentWeek = newWeek
	s.playerTimes = make(map[string]map[int]int)
	s.authorTimes = make(map[int]int)
	s.persist()

	utils.Info("Week reset from %s to %s", oldWeek, newWeek)
	return oldWeek, newWeek, true
}

// Week returns the active week key.
func (s *Store) Week() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentWeek
}

// PlayerCount returns the number of registered players.
func (s *Store) PlayerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.playerNames)
}

// IsRegistered reports whether a player has registered a display name.
func (s *Store) IsRegistered(playerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.playerNames[playerID]
	return ok
}

// PlayerName returns a player's display name.
func (s *Store) PlayerName(playerID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name, ok := s.playerNames[playerID]
	return name, ok
}

// AuthorTime returns the reference time for a map, if one is set.
func (s *Store) AuthorTime(mapNum int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ms, ok := s.authorTimes[mapNum]
	return ms, ok
}

// Snapshot returns a deep copy of the current state for persistence or export.
func (s *Store) Snapshot() *models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() *models.Snapshot {
	snapshot := models.EmptySnapshot()
	snapshot.CurrentWeek = s.currentWeek
	snapshot.LastUpdated = s.clock()

	for id, name := range s.playerNames {
		snapshot.PlayerNames[id] = name
	}
	for id, times := range s.playerTimes {
		copied := make(map[int]int, len(times))
		for mapNum, ms := range times {
			copied[mapNum] = ms
		}
		snapshot.PlayerTimes[id] = copied
	}
	for mapNum, ms := range s.authorTimes {
		snapshot.AuthorTimes[mapNum] = ms
	}

	return snapshot
}

// persist hands the full state to the repository. Failures are logged and
// swallowed: the in-memory state stays authoritative and the next successful
// save reconciles the backend. Callers must hold the lock.
func (s *Store) persist() {
	if err := s.repo.Save(s.snapshotLocked()); err != nil {
		utils.Error("Error saving competition data: %v", err)
	}
}

func (s *Store) displayName(playerID string) string {
	if name, ok := s.playerNames[playerID]; ok {
		return name
	}
	return "Unknown"
}

func validMapNumber(mapNum int) bool {
	return mapNum >= constants.MinMapNumber && mapNum <= constants.MaxMapNumber
}

// applySplits sets nil on the fastest entry and the gap to the fastest time
// on every other entry. Exact ties get a zero split, not nil.
func applySplits(entries []models.MapEntry) {
	if len(entries) == 0 {
		return
	}
	first := entries[0].TimeMs
	for i := 1; i < len(entries); i++ {
		split := entries[i].TimeMs - first
		entries[i].Split = &split
	}
}
