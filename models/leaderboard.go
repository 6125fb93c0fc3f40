package models

// MapEntry is one row of a per-map leaderboard. Split is nil for the fastest
// entry and the millisecond gap to the fastest entry otherwise.
type MapEntry struct {
	PlayerID    string
	DisplayName string
	TimeMs      int
	Split       *int
}

// OverallEntry is one row of the overall leaderboard.
type OverallEntry struct {
	PlayerID     string
	DisplayName  string
	MapsDone     int
	Times        map[int]int
	AuthorMedals int
}

// TotalEntry is one row of the total-time ranking. Only players with a time
// on every map appear; Split follows the MapEntry convention.
type TotalEntry struct {
	PlayerID    string
	DisplayName string
	TotalMs     int
	Split       *int
}
