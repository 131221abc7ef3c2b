package database

import (
	"database/sql"
	"fmt"

	"github.com/mauv0809/soccer-analysis/internal/league"
)

// PlayersTable holds the roster shared by every league.
const PlayersTable = "players"

const createTeamsTable = `
    CREATE TABLE IF NOT EXISTS %s (
        id INTEGER UNIQUE NOT NULL PRIMARY KEY,
        team_name TEXT NOT NULL,
        position INTEGER,
        goals INTEGER,
        points INTEGER,
        goalsDiff INTEGER
    );`

const createEventsTable = `
    CREATE TABLE IF NOT EXISTS %s (
        id INTEGER UNIQUE NOT NULL PRIMARY KEY,
        matchId INTEGER NOT NULL,
        eventSec REAL,
        eventName TEXT NOT NULL,
        teamId INTEGER NOT NULL,
        playerId INTEGER,
        playerName TEXT NOT NULL,
        accurate BOOLEAN,
        goal BOOLEAN,
        assist BOOLEAN,
        keyPass BOOLEAN,
        FOREIGN KEY (teamId) REFERENCES %s(id)
    );`

const createPlayersTable = `
    CREATE TABLE IF NOT EXISTS players (
        id INTEGER UNIQUE NOT NULL PRIMARY KEY,
        strong_foot TEXT NOT NULL,
        player_name TEXT NOT NULL,
        player_position TEXT NOT NULL
    );`

// Execer is satisfied by *sql.DB and *sql.Tx.
type Execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// Querier is satisfied by *sql.DB and *sql.Tx.
type Querier interface {
	QueryRow(query string, args ...any) *sql.Row
}

// EnsureLeagueTables creates the league's teams and events tables if they do not exist yet.
func EnsureLeagueTables(db Execer, l league.League) error {
	if !l.Valid() {
		return fmt.Errorf("%w: %q", league.ErrUnknownLeague, string(l))
	}
	if _, err := db.Exec(fmt.Sprintf(createTeamsTable, l.TeamsTable())); err != nil {
		return fmt.Errorf("failed to create %s: %w", l.TeamsTable(), err)
	}
	if _, err := db.Exec(fmt.Sprintf(createEventsTable, l.EventsTable(), l.TeamsTable())); err != nil {
		return fmt.Errorf("failed to create %s: %w", l.EventsTable(), err)
	}
	return nil
}

// EnsurePlayersTable creates the global players table if it does not exist yet.
func EnsurePlayersTable(db Execer) error {
	if _, err := db.Exec(createPlayersTable); err != nil {
		return fmt.Errorf("failed to create %s: %w", PlayersTable, err)
	}
	return nil
}

// TableExists reports whether a table with the given name is present in the schema.
func TableExists(db Querier, table string) (bool, error) {
	var n int
	err := db.QueryRow("SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CountRows returns the number of rows in table, or 0 when the table has not been created.
// Callers pass names produced by league.League or PlayersTable only.
func CountRows(db Querier, table string) (int, error) {
	exists, err := TableExists(db, table)
	if err != nil {
		return 0, fmt.Errorf("failed to check table %s: %w", table, err)
	}
	if !exists {
		return 0, nil
	}
	var n int
	if err := db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", table, err)
	}
	return n, nil
}
