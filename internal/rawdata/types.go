package rawdata

import "github.com/mauv0809/soccer-analysis/internal/league"

// TeamRow is one line of a league's final table.
type TeamRow struct {
	TeamID    int64  `parquet:"teamId"`
	TeamName  string `parquet:"teamName"`
	Position  int64  `parquet:"position"`
	Goals     int64  `parquet:"goals"`
	Points    int64  `parquet:"points"`
	GoalsDiff int64  `parquet:"goalsDiff"`
}

// EventRow is a single logged on-ball action.
type EventRow struct {
	ID         int64   `parquet:"id"`
	MatchID    int64   `parquet:"matchId"`
	EventSec   float64 `parquet:"eventSec"`
	EventName  string  `parquet:"eventName"`
	TeamID     int64   `parquet:"teamId"`
	PlayerID   *int64  `parquet:"playerId,optional"`
	PlayerName string  `parquet:"playerName"`
	Accurate   bool    `parquet:"accurate"`
	Goal       bool    `parquet:"goal"`
	Assist     bool    `parquet:"assist"`
	KeyPass    bool    `parquet:"keyPass"`
}

// PlayerRow is one entry of the global roster.
type PlayerRow struct {
	PlayerID       int64  `parquet:"playerId"`
	StrongFoot     string `parquet:"playerStrongFoot"`
	PlayerName     string `parquet:"playerName"`
	PlayerPosition string `parquet:"playerPosition"`
}

var (
	teamColumns   = []string{"teamId", "teamName", "position", "goals", "points", "goalsDiff"}
	eventColumns  = []string{"id", "matchId", "eventSec", "eventName", "teamId", "playerId", "playerName", "accurate", "goal", "assist", "keyPass"}
	playerColumns = []string{"playerId", "playerStrongFoot", "playerName", "playerPosition"}
)

// Source produces the raw rows the loader persists.
type Source interface {
	Teams(l league.League) ([]TeamRow, error)
	Events(l league.League) ([]EventRow, error)
	Players() ([]PlayerRow, error)
}
