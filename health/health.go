// Package health serves the liveness endpoint used by the hosting platform.
package health

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/ellielalafontaine/trackmaniabottime/competition"
	"github.com/ellielalafontaine/trackmaniabottime/constants"
	"github.com/ellielalafontaine/trackmaniabottime/utils"
)

// HealthStatus is the health check response body.
type HealthStatus struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Uptime      string    `json:"uptime"`
	Version     string    `json:"version"`
	GoVersion   string    `json:"go_version"`
	Memory      string    `json:"memory_usage"`
	CurrentWeek string    `json:"current_week"`
	PlayerCount int       `json:"player_count"`
}

var startTime = time.Now()

// StartHealthServer starts the health check HTTP server on its own
// goroutine.
func StartHealthServer(port string, store *competition.Store) {
	if port == "" {
		port = constants.DefaultHTTPPort
	}

	handler := makeHealthHandler(store)
	http.HandleFunc("/health", handler)
	http.HandleFunc("/", handler) // platform default health check path

	go func() {
		utils.Info("Health check server starting on port %s", port)
		if err := http.ListenAndServe(":"+port, nil); err != nil {
			utils.Error("Health server error: %v", err)
		}
	}()
}

func makeHealthHandler(store *competition.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		status := HealthStatus{
			Status:      constants.HealthStatusHealthy,
			Timestamp:   time.Now(),
			Uptime:      time.Since(startTime).String(),
			Version:     constants.BotVersion,
			GoVersion:   runtime.Version(),
			Memory:      fmt.Sprintf("%.2f MB", float64(memStats.Alloc)/constants.BytesToMB),
			CurrentWeek: store.Week(),
			PlayerCount: store.PlayerCount(),
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(status)
	}
}
