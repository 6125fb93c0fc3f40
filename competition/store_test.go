package competition

import (
	"errors"
	"testing"
	"time"

	"github.com/ellielalafontaine/trackmaniabottime/models"
)

// fakeRepository records saves and serves a canned snapshot.
type fakeRepository struct {
	snapshot  *models.Snapshot
	loadErr   error
	saveErr   error
	saveCount int
	lastSaved *models.Snapshot
}

func (f *fakeRepository) Load() (*models.Snapshot, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.snapshot == nil {
		return models.EmptySnapshot(), nil
	}
	return f.snapshot, nil
}

func (f *fakeRepository) Save(snapshot *models.Snapshot) error {
	f.saveCount++
	f.lastSaved = snapshot
	return f.saveErr
}

func (f *fakeRepository) Close() error { return nil }

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// midweek timestamp inside the 2025-03-09 competition week
var testNow = time.Date(2025, time.March, 12, 10, 0, 0, 0, time.UTC)

func newTestStore() (*Store, *fakeRepository) {
	repo := &fakeRepository{}
	return NewStoreWithClock(repo, fixedClock(testNow)), repo
}

func TestRegisterAndSubmit(t *testing.T) {
	store, repo := newTestStore()

	store.Register("100", "SpeedyGonzales")
	if !store.IsRegistered("100") {
		t.Fatal("player should be registered")
	}
	if repo.saveCount != 1 {
		t.Errorf("register should persist once, got %d saves", repo.saveCount)
	}

	if !store.SubmitTime("100", 1, 83456) {
		t.Fatal("submit for registered player should succeed")
	}
	if store.SubmitTime("999", 1, 83456) {
		t.Error("submit for unregistered player should fail")
	}
	if store.SubmitTime("100", 0, 83456) || store.SubmitTime("100", 6, 83456) {
		t.Error("submit with out-of-range map number should fail")
	}

	// overwrite
	if !store.SubmitTime("100", 1, 90000) {
		t.Fatal("overwriting submit should succeed")
	}

	board := store.MapLeaderboard(1)
	if len(board) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(board))
	}
	if board[0].TimeMs != 90000 {
		t.Errorf("expected overwritten time 90000, got %d", board[0].TimeMs)
	}
	if board[0].Split != nil {
		t.Errorf("fastest entry should have nil split, got %d", *board[0].Split)
	}
}

func TestMapLeaderboardOrderAndSplits(t *testing.T) {
	store, _ := newTestStore()

	store.Register("1", "Alpha")
	store.Register("2", "Beta")
	store.Register("3", "Gamma")
	store.SubmitTime("1", 2, 85000)
	store.SubmitTime("2", 2, 83456)
	store.SubmitTime("3", 2, 90000)

	board := store.MapLeaderboard(2)
	if len(board) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(board))
	}

	if board[0].PlayerID != "2" || board[1].PlayerID != "1" || board[2].PlayerID != "3" {
		t.Errorf("wrong order: %s, %s, %s", board[0].PlayerID, board[1].PlayerID, board[2].PlayerID)
	}
	if board[0].Split != nil {
		t.Error("fastest entry should have nil split")
	}
	if board[1].Split == nil || *board[1].Split != 85000-83456 {
		t.Errorf("second entry split wrong: %v", board[1].Split)
	}
	if board[2].Split == nil || *board[2].Split != 90000-83456 {
		t.Errorf("third entry split wrong: %v", board[2].Split)
	}
}

func TestMapLeaderboardTieBreaksByPlayerID(t *testing.T) {
	store, _ := newTestStore()

	store.Register("20", "Later")
	store.Register("10", "Earlier")
	store.SubmitTime("20", 1, 70000)
	store.SubmitTime("10", 1, 70000)

	board := store.MapLeaderboard(1)
	if len(board) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(board))
	}
	if board[0].PlayerID != "10" {
		t.Errorf("tie should order by player ID, got %s first", board[0].PlayerID)
	}
	if board[1].Split == nil || *board[1].Split != 0 {
		t.Errorf("exact tie should carry a zero split, got %v", board[1].Split)
	}
}

func TestMapLeaderboardEmptyCases(t *testing.T) {
	store, _ := newTestStore()
	if got := store.MapLeaderboard(3); len(got) != 0 {
		t.Errorf("empty map should return no entries, got %d", len(got))
	}
	if got := store.MapLeaderboard(9); len(got) != 0 {
		t.Errorf("invalid map number should return no entries, got %d", len(got))
	}
}

func TestOverallLeaderboardOrdering(t *testing.T) {
	store, _ := newTestStore()

	store.SetAuthorTime(1, 80000)

	store.Register("1", "zoe")
	store.Register("2", "Adam")
	store.Register("3", "mika")

	// zoe and Adam: 2 maps each, 1 medal each -> name decides, case-insensitive
	store.SubmitTime("1", 1, 79000)
	store.SubmitTime("1", 2, 90000)
	store.SubmitTime("2", 1, 80000) // equal to author time still earns the medal
	store.SubmitTime("2", 2, 95000)
	// mika: 3 maps, no medals -> most maps wins regardless of medals
	store.SubmitTime("3", 1, 81000)
	store.SubmitTime("3", 2, 91000)
	store.SubmitTime("3", 3, 92000)

	board := store.OverallLeaderboard()
	if len(board) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(board))
	}
	if board[0].DisplayName != "mika" {
		t.Errorf("most maps completed should rank first, got %s", board[0].DisplayName)
	}
	if board[1].DisplayName != "Adam" || board[2].DisplayName != "zoe" {
		t.Errorf("equal maps and medals should order case-insensitively by name: got %s, %s",
			board[1].DisplayName, board[2].DisplayName)
	}
	if board[1].AuthorMedals != 1 {
		t.Errorf("time equal to author time should earn a medal, got %d", board[1].AuthorMedals)
	}
	if board[0].AuthorMedals != 0 {
		t.Errorf("expected no medals for mika, got %d", board[0].AuthorMedals)
	}
}

func TestOverallLeaderboardMedalsBeatName(t *testing.T) {
	store, _ := newTestStore()

	store.SetAuthorTime(1, 80000)
	store.Register("1", "Aaa")
	store.Register("2", "Zzz")
	store.SubmitTime("1", 1, 85000) // no medal
	store.SubmitTime("2", 1, 75000) // medal

	board := store.OverallLeaderboard()
	if board[0].DisplayName != "Zzz" {
		t.Errorf("more medals should rank first, got %s", board[0].DisplayName)
	}
}

func TestTotalsLeaderboardRequiresAllMaps(t *testing.T) {
	store, _ := newTestStore()

	store.Register("1", "Complete")
	store.Register("2", "Partial")

	for mapNum := 1; mapNum <= 5; mapNum++ {
		store.SubmitTime("1", mapNum, 80000+mapNum)
	}
	// Partial has the fastest time on every map they submitted, but only 4 maps.
	for mapNum := 1; mapNum <= 4; mapNum++ {
		store.SubmitTime("2", mapNum, 60000)
	}

	board := store.TotalsLeaderboard()
	if len(board) != 1 {
		t.Fatalf("only 5/5 players belong in totals, got %d entries", len(board))
	}
	if board[0].PlayerID != "1" {
		t.Errorf("expected player 1, got %s", board[0].PlayerID)
	}
	expected := 80001 + 80002 + 80003 + 80004 + 80005
	if board[0].TotalMs != expected {
		t.Errorf("expected total %d, got %d", expected, board[0].TotalMs)
	}
	if board[0].Split != nil {
		t.Error("first place should have nil split")
	}
}

func TestTotalsLeaderboardSplits(t *testing.T) {
	store, _ := newTestStore()

	store.Register("1", "First")
	store.Register("2", "Second")
	for mapNum := 1; mapNum <= 5; mapNum++ {
		store.SubmitTime("1", mapNum, 80000)
		store.SubmitTime("2", mapNum, 81000)
	}

	board := store.TotalsLeaderboard()
	if len(board) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(board))
	}
	if board[1].Split == nil || *board[1].Split != 5000 {
		t.Errorf("expected split 5000, got %v", board[1].Split)
	}
}

func TestDeleteTime(t *testing.T) {
	store, _ := newTestStore()

	store.Register("1", "Player")
	store.SubmitTime("1", 3, 85000)

	if !store.DeleteTime("1", 3) {
		t.Fatal("deleting an existing time should succeed")
	}
	if store.DeleteTime("1", 3) {
		t.Error("deleting twice should fail")
	}
	if store.DeleteTime("999", 3) {
		t.Error("deleting for unknown player should fail")
	}
	if got := store.MapLeaderboard(3); len(got) != 0 {
		t.Errorf("time should be gone, got %d entries", len(got))
	}
}

func TestCheckAndReset(t *testing.T) {
	repo := &fakeRepository{}
	now := time.Date(2025, time.March, 9, 17, 0, 0, 0, time.UTC) // before anchor
	clock := func() time.Time { return now }
	store := NewStoreWithClock(repo, clock)

	store.Register("1", "Keeper")
	store.SubmitTime("1", 1, 85000)
	store.SetAuthorTime(1, 80000)

	// Still before the anchor: no-op.
	if _, _, reset := store.CheckAndReset(); reset {
		t.Fatal("reset should not fire before the anchor")
	}

	// Cross the anchor (18:15 Paris = 17:15 UTC in March).
	now = time.Date(2025, time.March, 9, 17, 20, 0, 0, time.UTC)
	oldWeek, newWeek, reset := store.CheckAndReset()
	if !reset {
		t.Fatal("reset should fire after the anchor")
	}
	if oldWeek != "2025-03-02" || newWeek != "2025-03-09" {
		t.Errorf("unexpected week transition %s -> %s", oldWeek, newWeek)
	}

	if !store.IsRegistered("1") {
		t.Error("registered players must survive a reset")
	}
	if got := store.MapLeaderboard(1); len(got) != 0 {
		t.Error("times must be cleared by a reset")
	}
	if _, ok := store.AuthorTime(1); ok {
		t.Error("author times must be cleared by a reset")
	}

	// Second check in the same week is idempotent.
	if _, _, again := store.CheckAndReset(); again {
		t.Error("reset must fire exactly once per rollover")
	}
}

func TestLoadDiscardsStaleWeek(t *testing.T) {
	stale := models.EmptySnapshot()
	stale.CurrentWeek = "2025-02-23"
	stale.PlayerNames["1"] = "Veteran"
	stale.PlayerTimes["1"] = map[int]int{1: 85000}
	stale.AuthorTimes[1] = 80000

	repo := &fakeRepository{snapshot: stale}
	store := NewStoreWithClock(repo, fixedClock(testNow))

	if !store.IsRegistered("1") {
		t.Error("player names must survive a stale-week load")
	}
	if got := store.MapLeaderboard(1); len(got) != 0 {
		t.Error("stale times must be discarded on load")
	}
	if _, ok := store.AuthorTime(1); ok {
		t.Error("stale author times must be discarded on load")
	}
	if store.Week() != "2025-03-09" {
		t.Errorf("store should adopt the fresh week, got %s", store.Week())
	}
	if repo.saveCount == 0 {
		t.Error("stale-week load must rewrite the stored state immediately")
	}
}

func TestLoadKeepsCurrentWeek(t *testing.T) {
	current := models.EmptySnapshot()
	current.CurrentWeek = "2025-03-09"
	current.PlayerNames["1"] = "Steady"
	current.PlayerTimes["1"] = map[int]int{2: 91000}

	repo := &fakeRepository{snapshot: current}
	store := NewStoreWithClock(repo, fixedClock(testNow))

	board := store.MapLeaderboard(2)
	if len(board) != 1 || board[0].TimeMs != 91000 {
		t.Errorf("current-week times must be kept, got %v", board)
	}
}

func TestLoadFailureFallsBackToEmptyState(t *testing.T) {
	repo := &fakeRepository{loadErr: errors.New("disk unavailable")}
	store := NewStoreWithClock(repo, fixedClock(testNow))

	if store.PlayerCount() != 0 {
		t.Error("failed load should start with no players")
	}
	if store.Week() != "2025-03-09" {
		t.Errorf("failed load should still derive the week, got %s", store.Week())
	}
}

func TestPersistFailureKeepsMemoryAuthoritative(t *testing.T) {
	repo := &fakeRepository{saveErr: errors.New("disk full")}
	store := NewStoreWithClock(repo, fixedClock(testNow))

	store.Register("1", "Survivor")
	if !store.SubmitTime("1", 1, 85000) {
		t.Fatal("submit should succeed even when the persist fails")
	}
	if got := store.MapLeaderboard(1); len(got) != 1 {
		t.Error("in-memory state must remain authoritative after a failed save")
	}
}

func TestEndToEndSubmitParseScenario(t *testing.T) {
	store, _ := newTestStore()

	store.Register("A", "PlayerA")
	store.SubmitTime("A", 1, 83456) // "1:23.456"
	store.SubmitTime("A", 1, 90000) // "90000" overwrite

	board := store.MapLeaderboard(1)
	if len(board) != 1 {
		t.Fatalf("expected a single entry, got %d", len(board))
	}
	if board[0].TimeMs != 90000 || board[0].Split != nil {
		t.Errorf("expected {90000, nil split}, got {%d, %v}", board[0].TimeMs, board[0].Split)
	}
}
