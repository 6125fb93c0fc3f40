package bot

import (
	"github.com/ellielalafontaine/trackmaniabottime/competition"
	"github.com/ellielalafontaine/trackmaniabottime/config"
	"github.com/ellielalafontaine/trackmaniabottime/interfaces"
)

// CommandDependencies bundles everything the command handlers need.
type CommandDependencies struct {
	Store         *competition.Store
	Renderer      *LeaderboardRenderer
	MetricsClient interfaces.MetricsRecorder
	SheetsClient  interfaces.LeaderboardExporter
	Config        *config.Config
}

// NewCommandDependencies creates a new CommandDependencies instance.
// MetricsClient and SheetsClient may be nil when their features are not
// configured.
func NewCommandDependencies(
	store *competition.Store,
	renderer *LeaderboardRenderer,
	metricsClient interfaces.MetricsRecorder,
	sheetsClient interfaces.LeaderboardExporter,
	cfg *config.Config,
) *CommandDependencies {
	return &CommandDependencies{
		Store:         store,
		Renderer:      renderer,
		MetricsClient: metricsClient,
		SheetsClient:  sheetsClient,
		Config:        cfg,
	}
}
