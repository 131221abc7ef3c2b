package statistics

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
	"github.com/mauv0809/soccer-analysis/internal/database"
	"github.com/mauv0809/soccer-analysis/internal/league"
	"github.com/mauv0809/soccer-analysis/internal/metrics"
)

// ErrNotLoaded is returned by Collect when the league's tables have not been created yet.
var ErrNotLoaded = errors.New("league has not been loaded")

// New creates a Collector reading from db. driverName selects the bind style for sqlx.
func New(db *sql.DB, driverName string, metrics metrics.Metrics) Collector {
	return &collector{
		db:      sqlx.NewDb(db, driverName),
		metrics: metrics,
		cache:   make(map[league.League]*Statistics),
	}
}

func (c *collector) Collect(l league.League) (*Statistics, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %q", league.ErrUnknownLeague, string(l))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if stats, ok := c.cache[l]; ok {
		c.metrics.IncStatisticsCacheHits(l.String())
		log.Debug("Serving statistics from cache", "league", l)
		return stats, nil
	}
	c.metrics.IncStatisticsCacheMisses(l.String())

	startTime := time.Now()
	log.Info("Computing statistics", "league", l)
	stats, err := c.compute(l)
	if err != nil {
		log.Error("Failed to compute statistics", "league", l, "error", err)
		return nil, err
	}
	c.cache[l] = stats
	c.metrics.ObserveCollectDuration(time.Since(startTime).Seconds())
	log.Info("Statistics computed", "league", l, "duration_ms", time.Since(startTime).Milliseconds())
	return stats, nil
}

func (c *collector) Cached(l league.League) (*Statistics, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	stats, ok := c.cache[l]
	return stats, ok
}

func (c *collector) compute(l league.League) (*Statistics, error) {
	for _, table := range []string{l.TeamsTable(), l.EventsTable(), database.PlayersTable} {
		exists, err := database.TableExists(c.db, table)
		if err != nil {
			return nil, fmt.Errorf("failed to check table %s: %w", table, err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: %s (missing %s)", ErrNotLoaded, l, table)
		}
	}

	ranking, err := c.teamRanking(l)
	if err != nil {
		return nil, err
	}
	passing, err := c.passingStats(l)
	if err != nil {
		return nil, err
	}
	shooting, err := c.shootingStats(l)
	if err != nil {
		return nil, err
	}
	scorers, err := c.topScorers(l)
	if err != nil {
		return nil, err
	}
	assistants, err := c.topAssistants(l)
	if err != nil {
		return nil, err
	}

	return &Statistics{
		League:        l,
		TeamRanking:   ranking,
		Passing:       passing,
		Shooting:      shooting,
		TopScorers:    scorers,
		TopAssistants: assistants,
		ComputedAt:    time.Now().UTC(),
	}, nil
}

func (c *collector) teamRanking(l league.League) ([]TeamStanding, error) {
	ranking := []TeamStanding{}
	if err := c.db.Select(&ranking, teamRankingQuery(l)); err != nil {
		return nil, fmt.Errorf("failed to query team ranking: %w", err)
	}
	return ranking, nil
}

func (c *collector) teamAccuracy(l league.League, eventName string) ([]teamAccuracyRow, error) {
	var rows []teamAccuracyRow
	if err := c.db.Select(&rows, teamAccuracyQuery(l), eventName); err != nil {
		return nil, fmt.Errorf("failed to query accurate %s events: %w", eventName, err)
	}
	return rows, nil
}

func (c *collector) passingStats(l league.League) ([]PassingStat, error) {
	rows, err := c.teamAccuracy(l, eventPass)
	if err != nil {
		return nil, err
	}
	out := make([]PassingStat, 0, len(rows))
	for _, r := range rows {
		out = append(out, PassingStat{
			TeamID:                 r.TeamID,
			Position:               r.Position,
			Points:                 r.Points,
			Goals:                  r.Goals,
			TeamName:               r.TeamName,
			AccuratePassAmount:     r.AccurateAmount,
			MatchAmount:            r.MatchAmount,
			AccuratePassesPerMatch: PerMatch(r.AccurateAmount, r.MatchAmount),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AccuratePassesPerMatch < out[j].AccuratePassesPerMatch
	})
	return out, nil
}

func (c *collector) shootingStats(l league.League) ([]ShootingStat, error) {
	rows, err := c.teamAccuracy(l, eventShot)
	if err != nil {
		return nil, err
	}
	out := make([]ShootingStat, 0, len(rows))
	for _, r := range rows {
		out = append(out, ShootingStat{
			TeamID:                r.TeamID,
			Position:              r.Position,
			Points:                r.Points,
			Goals:                 r.Goals,
			TeamName:              r.TeamName,
			AccurateShotsAmount:   r.AccurateAmount,
			MatchAmount:           r.MatchAmount,
			AccurateShotsPerMatch: PerMatch(r.AccurateAmount, r.MatchAmount),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AccurateShotsPerMatch < out[j].AccurateShotsPerMatch
	})
	return out, nil
}

func (c *collector) playerCounts(l league.League, eventName, flag string) ([]playerCountRow, error) {
	var rows []playerCountRow
	if err := c.db.Select(&rows, playerCountQuery(l, flag), eventName, TopN); err != nil {
		return nil, fmt.Errorf("failed to query %s counts: %w", flag, err)
	}
	return rows, nil
}

func (c *collector) topScorers(l league.League) ([]Scorer, error) {
	rows, err := c.playerCounts(l, eventShot, "goal")
	if err != nil {
		return nil, err
	}
	out := make([]Scorer, 0, len(rows))
	for _, r := range rows {
		out = append(out, Scorer{PlayerID: r.PlayerID, PlayerName: r.PlayerName, GoalsAmount: r.Amount, TeamID: r.TeamID})
	}
	return out, nil
}

func (c *collector) topAssistants(l league.League) ([]Assistant, error) {
	rows, err := c.playerCounts(l, eventPass, "assist")
	if err != nil {
		return nil, err
	}
	out := make([]Assistant, 0, len(rows))
	for _, r := range rows {
		out = append(out, Assistant{PlayerID: r.PlayerID, PlayerName: r.PlayerName, AssistAmount: r.Amount, TeamID: r.TeamID})
	}
	return out, nil
}

// PerMatch is the per-match rate rounded to a whole number, half to even.
func PerMatch(amount, matches int) float64 {
	if matches == 0 {
		return 0
	}
	return math.RoundToEven(float64(amount) / float64(matches))
}

func (c *collector) TeamName(l league.League, teamID int64) (string, bool, error) {
	if !l.Valid() {
		return "", false, fmt.Errorf("%w: %q", league.ErrUnknownLeague, string(l))
	}
	exists, err := database.TableExists(c.db, l.TeamsTable())
	if err != nil {
		return "", false, fmt.Errorf("failed to check table %s: %w", l.TeamsTable(), err)
	}
	if !exists {
		return "", false, nil
	}

	var name string
	if err := c.db.Get(&name, teamNameQuery(l), teamID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("Team not found", "league", l, "team_id", teamID)
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to look up team %d: %w", teamID, err)
	}
	return name, true, nil
}
