package health

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/ellielalafontaine/trackmaniabottime/competition"
	"github.com/ellielalafontaine/trackmaniabottime/constants"
	"github.com/ellielalafontaine/trackmaniabottime/models"
)

type stubRepository struct{}

func (r *stubRepository) Load() (*models.Snapshot, error) { return models.EmptySnapshot(), nil }
func (r *stubRepository) Save(_ *models.Snapshot) error   { return nil }
func (r *stubRepository) Close() error                    { return nil }

func TestHealthHandler(t *testing.T) {
	store := competition.NewStore(&stubRepository{})
	store.Register("p1", "Speedy")

	handler := makeHealthHandler(store)
	recorder := httptest.NewRecorder()
	handler(recorder, httptest.NewRequest("GET", "/health", nil))

	if recorder.Code != 200 {
		t.Fatalf("status = %d, want 200", recorder.Code)
	}

	var status HealthStatus
	if err := json.Unmarshal(recorder.Body.Bytes(), &status); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}

	if status.Status != constants.HealthStatusHealthy {
		t.Errorf("status = %q, want %q", status.Status, constants.HealthStatusHealthy)
	}
	if status.CurrentWeek != store.Week() {
		t.Errorf("current week = %q, want %q", status.CurrentWeek, store.Week())
	}
	if status.PlayerCount != 1 {
		t.Errorf("player count = %d, want 1", status.PlayerCount)
	}
	if status.Version != constants.BotVersion {
		t.Errorf("version = %q, want %q", status.Version, constants.BotVersion)
	}
}
