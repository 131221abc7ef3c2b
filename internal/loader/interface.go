package loader

import "github.com/mauv0809/soccer-analysis/internal/league"

// Loader ingests raw league datasets into the relational store.
type Loader interface {
	// Load reads the league's datasets and the player roster and upserts them.
	// It always ingests, even when the league was loaded before.
	Load(l league.League) error
	// EnsureLoaded loads the league unless it was already loaded in this process.
	EnsureLoaded(l league.League) error
	IsLoaded(l league.League) bool
	Loaded() []league.League
	// Reset forgets which leagues were loaded. Stored rows are kept.
	Reset()
	Runs(l league.League) ([]Run, error)
}
