package statistics

import "github.com/mauv0809/soccer-analysis/internal/league"

// Collector computes the derived statistic sets of a league and memoizes them.
type Collector interface {
	// Collect returns the league's statistics, querying the store only on the first call.
	// The league must have been ingested beforehand.
	Collect(l league.League) (*Statistics, error)
	Cached(l league.League) (*Statistics, bool)
	// TeamName resolves a team id. found is false when the league has no such team.
	TeamName(l league.League, teamID int64) (name string, found bool, err error)
}
