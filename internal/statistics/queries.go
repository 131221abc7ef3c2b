package statistics

import (
	"fmt"

	"github.com/mauv0809/soccer-analysis/internal/league"
)

const (
	eventPass = "Pass"
	eventShot = "Shot"
)

func teamRankingQuery(l league.League) string {
	return fmt.Sprintf(`
		SELECT
			team_name,
			COALESCE(position, 0) AS position,
			COALESCE(points, 0) AS points,
			COALESCE(goals, 0) AS goals
		FROM %s
		ORDER BY position ASC, id ASC;
	`, l.TeamsTable())
}

// teamAccuracyQuery counts a team's accurate events of one type and the matches they span.
// Takes the event name as its only argument.
func teamAccuracyQuery(l league.League) string {
	return fmt.Sprintf(`
		SELECT
			e.teamId AS team_id,
			COALESCE(t.position, 0) AS position,
			COALESCE(t.points, 0) AS points,
			COALESCE(t.goals, 0) AS goals,
			t.team_name AS team_name,
			COUNT(e.accurate) AS accurate_amount,
			COUNT(DISTINCT e.matchId) AS match_amount
		FROM %[1]s e
		JOIN %[2]s t ON t.id = e.teamId
		WHERE e.accurate = 1 AND e.eventName = ?
		GROUP BY e.teamId, t.position, t.points, t.goals, t.team_name
		ORDER BY e.teamId;
	`, l.EventsTable(), l.TeamsTable())
}

// playerCountQuery ranks players by events of one type with the given flag column set.
// Takes the event name and the row limit as arguments.
func playerCountQuery(l league.League, flag string) string {
	return fmt.Sprintf(`
		SELECT
			p.id AS player_id,
			p.player_name AS player_name,
			COUNT(e.eventName) AS amount,
			MAX(e.teamId) AS team_id
		FROM %s e
		JOIN players p ON e.playerId = p.id
		WHERE e.eventName = ? AND e.%s = 1
		GROUP BY p.id, p.player_name
		ORDER BY amount DESC, p.id ASC
		LIMIT ?;
	`, l.EventsTable(), flag)
}

func teamNameQuery(l league.League) string {
	return fmt.Sprintf(`SELECT team_name FROM %s WHERE id = ?;`, l.TeamsTable())
}
