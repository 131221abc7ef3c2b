package notifier

import (
	"github.com/mauv0809/soccer-analysis/internal/dashboard"
	"github.com/mauv0809/soccer-analysis/internal/pubsub"
	"github.com/mauv0809/soccer-analysis/internal/statistics"
)

// LeagueSummary is what gets announced once a league has been ingested and its statistics computed.
type LeagueSummary struct {
	Run        pubsub.LeagueLoaded
	Statistics *statistics.Statistics
	Leaders    *dashboard.PlayerLeaders
}

// Notifier defines a high-level interface for sending notifications about ingestion events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	SendLeagueSummary(summary *LeagueSummary, dryRun bool) error
}
