package loader

import (
	"database/sql"
	"sync"
	"time"

	"github.com/mauv0809/soccer-analysis/internal/league"
	"github.com/mauv0809/soccer-analysis/internal/metrics"
	"github.com/mauv0809/soccer-analysis/internal/pubsub"
	"github.com/mauv0809/soccer-analysis/internal/rawdata"
)

// loader handles ingestion and remembers which leagues are already in the store.
type loader struct {
	db        *sql.DB
	source    rawdata.Source
	metrics   metrics.Metrics
	publisher pubsub.PubSubClient

	// loadMu serializes ingestions; mu guards the loaded set.
	loadMu sync.Mutex
	mu     sync.RWMutex
	loaded map[league.League]struct{}
}

// Run is one recorded ingestion with the table sizes observed right after it.
type Run struct {
	ID         string        `json:"id"`
	League     league.League `json:"league"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Teams      int           `json:"teams"`
	Events     int           `json:"events"`
	Players    int           `json:"players"`
}
