package loader

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/soccer-analysis/internal/database"
	"github.com/mauv0809/soccer-analysis/internal/league"
	"github.com/mauv0809/soccer-analysis/internal/metrics"
	"github.com/mauv0809/soccer-analysis/internal/pubsub"
	"github.com/mauv0809/soccer-analysis/internal/rawdata"
)

// New creates a Loader. publisher may be nil, in which case no league-loaded events are sent.
func New(db *sql.DB, source rawdata.Source, metrics metrics.Metrics, publisher pubsub.PubSubClient) Loader {
	return &loader{
		db:        db,
		source:    source,
		metrics:   metrics,
		publisher: publisher,
		loaded:    make(map[league.League]struct{}),
	}
}

func (l *loader) Load(lg league.League) error {
	l.loadMu.Lock()
	defer l.loadMu.Unlock()
	return l.load(lg)
}

func (l *loader) EnsureLoaded(lg league.League) error {
	l.loadMu.Lock()
	defer l.loadMu.Unlock()
	if l.IsLoaded(lg) {
		log.Debug("League already loaded, skipping ingestion", "league", lg)
		return nil
	}
	return l.load(lg)
}

func (l *loader) IsLoaded(lg league.League) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.loaded[lg]
	return ok
}

func (l *loader) Loaded() []league.League {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []league.League
	for _, lg := range league.All() {
		if _, ok := l.loaded[lg]; ok {
			out = append(out, lg)
		}
	}
	return out
}

func (l *loader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loaded = make(map[league.League]struct{})
}

func (l *loader) load(lg league.League) error {
	if !lg.Valid() {
		return fmt.Errorf("%w: %q", league.ErrUnknownLeague, string(lg))
	}
	startedAt := time.Now()
	log.Info("Starting league ingestion", "league", lg)

	run, err := l.ingest(lg, startedAt)
	if err != nil {
		l.metrics.IncLeagueLoadFailures(lg.String())
		log.Error("League ingestion failed", "league", lg, "error", err)
		return err
	}

	l.mu.Lock()
	l.loaded[lg] = struct{}{}
	l.mu.Unlock()

	l.metrics.IncLeagueLoads(lg.String())
	l.metrics.ObserveLoadDuration(time.Since(startedAt).Seconds())
	l.metrics.SetStoredRows(lg.TeamsTable(), run.Teams)
	l.metrics.SetStoredRows(lg.EventsTable(), run.Events)
	l.metrics.SetStoredRows(database.PlayersTable, run.Players)

	log.Info("League ingestion finished", "league", lg, "teams", run.Teams, "events", run.Events, "players", run.Players, "duration_ms", time.Since(startedAt).Milliseconds())
	l.publish(run)
	return nil
}

func (l *loader) ingest(lg league.League, startedAt time.Time) (*Run, error) {
	teams, err := l.source.Teams(lg)
	if err != nil {
		return nil, fmt.Errorf("failed to read teams for %s: %w", lg, err)
	}
	events, err := l.source.Events(lg)
	if err != nil {
		return nil, fmt.Errorf("failed to read events for %s: %w", lg, err)
	}
	players, err := l.source.Players()
	if err != nil {
		return nil, fmt.Errorf("failed to read players: %w", err)
	}
	log.Debug("Read raw datasets", "league", lg, "teams", len(teams), "events", len(events), "players", len(players))

	if err := database.EnsureLeagueTables(l.db, lg); err != nil {
		return nil, err
	}
	if err := database.EnsurePlayersTable(l.db); err != nil {
		return nil, err
	}

	if err := l.upsertTeams(lg, teams); err != nil {
		return nil, err
	}
	if err := l.upsertEvents(lg, events); err != nil {
		return nil, err
	}
	if err := l.upsertPlayers(players); err != nil {
		return nil, err
	}

	run := &Run{
		ID:        uuid.NewString(),
		League:    lg,
		StartedAt: startedAt,
	}
	if run.Teams, err = database.CountRows(l.db, lg.TeamsTable()); err != nil {
		return nil, err
	}
	if run.Events, err = database.CountRows(l.db, lg.EventsTable()); err != nil {
		return nil, err
	}
	if run.Players, err = database.CountRows(l.db, database.PlayersTable); err != nil {
		return nil, err
	}
	run.FinishedAt = time.Now()

	if err := l.recordRun(run); err != nil {
		return nil, err
	}
	return run, nil
}

// upsertTeams inserts the league table. Existing ids are left untouched.
func (l *loader) upsertTeams(lg league.League, rows []rawdata.TeamRow) error {
	query := fmt.Sprintf(`INSERT OR IGNORE INTO %s (id, team_name, position, goals, points, goalsDiff) VALUES (?, ?, ?, ?, ?, ?)`, lg.TeamsTable())
	return l.inTx(lg.TeamsTable(), query, len(rows), func(stmt *sql.Stmt, i int) error {
		r := rows[i]
		_, err := stmt.Exec(r.TeamID, r.TeamName, r.Position, r.Goals, r.Points, r.GoalsDiff)
		if err != nil {
			return fmt.Errorf("team %d: %w", r.TeamID, err)
		}
		return nil
	})
}

func (l *loader) upsertEvents(lg league.League, rows []rawdata.EventRow) error {
	query := fmt.Sprintf(`INSERT OR IGNORE INTO %s (id, matchId, eventSec, eventName, teamId, playerId, playerName, accurate, goal, assist, keyPass) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, lg.EventsTable())
	return l.inTx(lg.EventsTable(), query, len(rows), func(stmt *sql.Stmt, i int) error {
		r := rows[i]
		playerID := sql.NullInt64{}
		if r.PlayerID != nil {
			playerID = sql.NullInt64{Int64: *r.PlayerID, Valid: true}
		}
		_, err := stmt.Exec(r.ID, r.MatchID, r.EventSec, r.EventName, r.TeamID, playerID, r.PlayerName, r.Accurate, r.Goal, r.Assist, r.KeyPass)
		if err != nil {
			return fmt.Errorf("event %d: %w", r.ID, err)
		}
		return nil
	})
}

func (l *loader) upsertPlayers(rows []rawdata.PlayerRow) error {
	query := `INSERT OR IGNORE INTO players (id, strong_foot, player_name, player_position) VALUES (?, ?, ?, ?)`
	return l.inTx(database.PlayersTable, query, len(rows), func(stmt *sql.Stmt, i int) error {
		r := rows[i]
		_, err := stmt.Exec(r.PlayerID, r.StrongFoot, r.PlayerName, r.PlayerPosition)
		if err != nil {
			return fmt.Errorf("player %d: %w", r.PlayerID, err)
		}
		return nil
	})
}

// inTx runs one prepared statement n times inside a single transaction, so a table's
// batch is either fully applied or not at all.
func (l *loader) inTx(table, query string, n int, exec func(stmt *sql.Stmt, i int) error) error {
	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for %s: %w", table, err)
	}
	stmt, err := tx.Prepare(query)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert into %s: %w", table, err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if err := exec(stmt, i); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", table, err)
	}
	log.Debug("Upserted rows", "table", table, "rows", n)
	return nil
}

func (l *loader) recordRun(run *Run) error {
	_, err := l.db.Exec(`
		INSERT INTO ingestion_runs (id, league, started_at, finished_at, teams, events, players)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.League.String(), run.StartedAt.UnixMilli(), run.FinishedAt.UnixMilli(), run.Teams, run.Events, run.Players)
	if err != nil {
		return fmt.Errorf("failed to record ingestion run: %w", err)
	}
	return nil
}

func (l *loader) publish(run *Run) {
	if l.publisher == nil {
		return
	}
	msg := pubsub.LeagueLoaded{
		RunID:    run.ID,
		League:   run.League.String(),
		Teams:    run.Teams,
		Events:   run.Events,
		Players:  run.Players,
		LoadedAt: run.FinishedAt.Unix(),
	}
	if err := l.publisher.SendMessage(pubsub.EventLeagueLoaded, msg); err != nil {
		log.Error("Failed to publish league-loaded event", "error", err, "league", run.League)
	}
}

// Runs lists recorded ingestions for a league, newest first.
func (l *loader) Runs(lg league.League) ([]Run, error) {
	rows, err := l.db.Query(`
		SELECT id, league, started_at, finished_at, teams, events, players
		FROM ingestion_runs
		WHERE league = ?
		ORDER BY started_at DESC, rowid DESC
	`, lg.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query ingestion runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run               Run
			leagueName        string
			started, finished int64
		)
		if err := rows.Scan(&run.ID, &leagueName, &started, &finished, &run.Teams, &run.Events, &run.Players); err != nil {
			return nil, err
		}
		run.League = league.League(leagueName)
		run.StartedAt = time.UnixMilli(started)
		run.FinishedAt = time.UnixMilli(finished)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
