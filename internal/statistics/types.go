package statistics

import (
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mauv0809/soccer-analysis/internal/league"
	"github.com/mauv0809/soccer-analysis/internal/metrics"
)

// TopN bounds the scorer and assistant tables.
const TopN = 20

// collector runs the aggregate queries and owns the per-league cache.
type collector struct {
	db      *sqlx.DB
	metrics metrics.Metrics

	mu    sync.Mutex
	cache map[league.League]*Statistics
}

// Statistics bundles the five result sets computed for a league.
type Statistics struct {
	League        league.League  `json:"league" msgpack:"league"`
	TeamRanking   []TeamStanding `json:"team_ranking" msgpack:"team_ranking"`
	Passing       []PassingStat  `json:"passing" msgpack:"passing"`
	Shooting      []ShootingStat `json:"shooting" msgpack:"shooting"`
	TopScorers    []Scorer       `json:"top_scorers" msgpack:"top_scorers"`
	TopAssistants []Assistant    `json:"top_assistants" msgpack:"top_assistants"`
	ComputedAt    time.Time      `json:"computed_at" msgpack:"computed_at"`
}

// TeamStanding is one row of the final league table.
type TeamStanding struct {
	TeamName string `db:"team_name" json:"team_name" msgpack:"team_name"`
	Position int    `db:"position" json:"position" msgpack:"position"`
	Points   int    `db:"points" json:"points" msgpack:"points"`
	Goals    int    `db:"goals" json:"goals" msgpack:"goals"`
}

// PassingStat is a team's accurate passing volume.
type PassingStat struct {
	TeamID                 int64   `json:"id" msgpack:"id"`
	Position               int     `json:"position" msgpack:"position"`
	Points                 int     `json:"points" msgpack:"points"`
	Goals                  int     `json:"goals" msgpack:"goals"`
	TeamName               string  `json:"team_name" msgpack:"team_name"`
	AccuratePassAmount     int     `json:"accurate_pass_amount" msgpack:"accurate_pass_amount"`
	MatchAmount            int     `json:"match_amount" msgpack:"match_amount"`
	AccuratePassesPerMatch float64 `json:"accurate_passes_per_match" msgpack:"accurate_passes_per_match"`
}

// ShootingStat is a team's accurate shooting volume.
type ShootingStat struct {
	TeamID                int64   `json:"id" msgpack:"id"`
	Position              int     `json:"position" msgpack:"position"`
	Points                int     `json:"points" msgpack:"points"`
	Goals                 int     `json:"goals" msgpack:"goals"`
	TeamName              string  `json:"team_name" msgpack:"team_name"`
	AccurateShotsAmount   int     `json:"accurate_shots_amount" msgpack:"accurate_shots_amount"`
	MatchAmount           int     `json:"match_amount" msgpack:"match_amount"`
	AccurateShotsPerMatch float64 `json:"accurate_shots_per_match" msgpack:"accurate_shots_per_match"`
}

// Scorer is a row of the top scorers table.
type Scorer struct {
	PlayerID    int64  `json:"player_id" msgpack:"player_id"`
	PlayerName  string `json:"player_name" msgpack:"player_name"`
	GoalsAmount int    `json:"goals_amount" msgpack:"goals_amount"`
	TeamID      int64  `json:"team_id" msgpack:"team_id"`
}

// Assistant is a row of the top assistants table.
type Assistant struct {
	PlayerID     int64  `json:"player_id" msgpack:"player_id"`
	PlayerName   string `json:"player_name" msgpack:"player_name"`
	AssistAmount int    `json:"assist_amount" msgpack:"assist_amount"`
	TeamID       int64  `json:"team_id" msgpack:"team_id"`
}

// teamAccuracyRow is the shape shared by the passing and shooting queries.
type teamAccuracyRow struct {
	TeamID         int64  `db:"team_id"`
	Position       int    `db:"position"`
	Points         int    `db:"points"`
	Goals          int    `db:"goals"`
	TeamName       string `db:"team_name"`
	AccurateAmount int    `db:"accurate_amount"`
	MatchAmount    int    `db:"match_amount"`
}

// playerCountRow is the shape shared by the scorer and assistant queries.
type playerCountRow struct {
	PlayerID   int64  `db:"player_id"`
	PlayerName string `db:"player_name"`
	Amount     int    `db:"amount"`
	TeamID     int64  `db:"team_id"`
}
