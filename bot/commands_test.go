package bot

import (
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/ellielalafontaine/trackmaniabottime/competition"
	"github.com/ellielalafontaine/trackmaniabottime/models"
)

type stubRepository struct{}

func (r *stubRepository) Load() (*models.Snapshot, error)  { return models.EmptySnapshot(), nil }
func (r *stubRepository) Save(_ *models.Snapshot) error    { return nil }
func (r *stubRepository) Close() error                     { return nil }

func newTestStore() *competition.Store {
	return competition.NewStore(&stubRepository{})
}

func TestNewCommandHandler(t *testing.T) {
	store := newTestStore()
	deps := NewCommandDependencies(store, NewLeaderboardRenderer(store), nil, nil, nil)

	ch := NewCommandHandler(deps)
	if ch == nil {
		t.Fatal("NewCommandHandler returned nil")
	}
	if ch.deps != deps {
		t.Error("CommandHandler dependencies were not set correctly")
	}
}

func TestParseMessage(t *testing.T) {
	ch := &CommandHandler{}

	tests := []struct {
		content        string
		expectedCmd    string
		expectedParams []string
	}{
		{
			content:        "!tm help",
			expectedCmd:    "help",
			expectedParams: []string{},
		},
		{
			content:        "!tm time 3 1:23.456",
			expectedCmd:    "time",
			expectedParams: []string{"3", "1:23.456"},
		},
		{
			content:        "!tm register Speedy McRacer",
			expectedCmd:    "register",
			expectedParams: []string{"Speedy", "McRacer"},
		},
		{
			content:        "!tm LEADERBOARD",
			expectedCmd:    "leaderboard",
			expectedParams: []string{},
		},
		{
			// Bare prefix shows help
			content:        "!tm",
			expectedCmd:    "help",
			expectedParams: []string{},
		},
		{
			// Prefix must be its own token
			content:        "!tmtime 3 83456",
			expectedCmd:    "",
			expectedParams: nil,
		},
		{
			content:        "hello world",
			expectedCmd:    "",
			expectedParams: nil,
		},
		{
			content:        "",
			expectedCmd:    "",
			expectedParams: nil,
		},
	}

	for _, test := range tests {
		m := &discordgo.MessageCreate{
			Message: &discordgo.Message{
				Content: test.content,
				GuildID: "guild123",
			},
		}

		command, params, isDM := ch.parseMessage(m)

		if command != test.expectedCmd {
			t.Errorf("parseMessage(%q) command = %q, want %q",
				test.content, command, test.expectedCmd)
		}

		if len(params) != len(test.expectedParams) {
			t.Errorf("parseMessage(%q) param count = %d, want %d",
				test.content, len(params), len(test.expectedParams))
			continue
		}

		for i, param := range params {
			if param != test.expectedParams[i] {
				t.Errorf("parseMessage(%q) params[%d] = %q, want %q",
					test.content, i, param, test.expectedParams[i])
			}
		}

		if isDM && command != "" {
			t.Errorf("parseMessage(%q) flagged guild message as DM", test.content)
		}
	}

	dmMessage := &discordgo.MessageCreate{
		Message: &discordgo.Message{
			Content: "!tm help",
			GuildID: "",
		},
	}

	_, _, isDM := ch.parseMessage(dmMessage)
	if !isDM {
		t.Error("parseMessage should detect DM when GuildID is empty")
	}
}

func TestShouldIgnoreMessage(t *testing.T) {
	ch := &CommandHandler{}

	session := &discordgo.Session{
		State: discordgo.NewState(),
	}
	session.State.User = &discordgo.User{ID: "bot123"}

	botMessage := &discordgo.MessageCreate{
		Message: &discordgo.Message{
			Author: &discordgo.User{ID: "bot123"},
		},
	}
	if !ch.shouldIgnoreMessage(session, botMessage) {
		t.Error("shouldIgnoreMessage should return true for the bot's own message")
	}

	userMessage := &discordgo.MessageCreate{
		Message: &discordgo.Message{
			Author:  &discordgo.User{ID: "user123"},
			GuildID: "guild123",
		},
	}
	if ch.shouldIgnoreMessage(session, userMessage) {
		t.Error("shouldIgnoreMessage should return false for a user message")
	}
}

func TestMapBoardEmbed(t *testing.T) {
	store := newTestStore()
	store.Register("p1", "Speedy")
	store.Register("p2", "Slowpoke")
	store.SubmitTime("p1", 1, 83456)
	store.SubmitTime("p2", 1, 90000)
	store.SetAuthorTime(1, 85000)

	renderer := NewLeaderboardRenderer(store)
	embed := renderer.MapBoard(1, store.MapLeaderboard(1))

	if !strings.Contains(embed.Title, models.MapName(1)) {
		t.Errorf("map board title missing map name: %q", embed.Title)
	}
	if !strings.Contains(embed.Description, "01:23.456") {
		t.Errorf("map board missing fastest time: %q", embed.Description)
	}
	if !strings.Contains(embed.Description, "+00:06.544") {
		t.Errorf("map board missing split for second place: %q", embed.Description)
	}
	if !strings.Contains(embed.Description, "00:01:25") && !strings.Contains(embed.Description, "01:25.000") {
		t.Errorf("map board missing author time: %q", embed.Description)
	}
	if embed.Footer == nil || !strings.Contains(embed.Footer.Text, store.Week()) {
		t.Error("map board footer should carry the week key")
	}
}

func TestOverallEmbedShowsMissingMaps(t *testing.T) {
	store := newTestStore()
	store.Register("p1", "Speedy")
	store.SubmitTime("p1", 1, 83456)
	store.SubmitTime("p1", 3, 91000)

	renderer := NewLeaderboardRenderer(store)
	embed := renderer.Overall(store.OverallLeaderboard())

	if !strings.Contains(embed.Description, "Speedy") {
		t.Errorf("overall board missing player: %q", embed.Description)
	}
	if !strings.Contains(embed.Description, "2/5 maps") {
		t.Errorf("overall board missing completion count: %q", embed.Description)
	}
	if !strings.Contains(embed.Description, "❌") {
		t.Errorf("overall board should mark missing maps: %q", embed.Description)
	}
}

func TestTotalsEmbed(t *testing.T) {
	store := newTestStore()
	store.Register("p1", "Speedy")
	for mapNum := 1; mapNum <= 5; mapNum++ {
		store.SubmitTime("p1", mapNum, 60000)
	}

	renderer := NewLeaderboardRenderer(store)
	embed := renderer.Totals(store.TotalsLeaderboard())

	if !strings.Contains(embed.Description, "05:00.000") {
		t.Errorf("totals board missing summed time: %q", embed.Description)
	}
}

func TestSubmissionEmbedRankAndMedal(t *testing.T) {
	store := newTestStore()
	store.Register("p1", "Speedy")
	store.Register("p2", "Slowpoke")
	store.SubmitTime("p1", 2, 83456)
	store.SubmitTime("p2", 2, 90000)
	store.SetAuthorTime(2, 84000)

	renderer := NewLeaderboardRenderer(store)

	embed := renderer.SubmissionEmbed("p1", 2, 83456)
	if !strings.Contains(embed.Description, "#1") {
		t.Errorf("submission embed missing rank: %q", embed.Description)
	}
	if !strings.Contains(embed.Description, "Author medal") {
		t.Errorf("submission embed missing medal note: %q", embed.Description)
	}

	embed = renderer.SubmissionEmbed("p2", 2, 90000)
	if !strings.Contains(embed.Description, "#2") {
		t.Errorf("submission embed missing rank for second place: %q", embed.Description)
	}
	if strings.Contains(embed.Description, "Author medal") {
		t.Errorf("submission embed should not award a medal above the author time: %q", embed.Description)
	}
}

func TestNewWeekEmbed(t *testing.T) {
	store := newTestStore()
	renderer := NewLeaderboardRenderer(store)

	embed := renderer.NewWeekEmbed("2025-03-09")
	if !strings.Contains(embed.Title, "2025-03-09") {
		t.Errorf("new week embed title missing week key: %q", embed.Title)
	}
}
