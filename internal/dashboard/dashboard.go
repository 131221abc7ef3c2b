// Package dashboard is the entry point the presentation layers use: it makes sure a league
// is ingested before its statistics are computed.
package dashboard

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/soccer-analysis/internal/league"
	"github.com/mauv0809/soccer-analysis/internal/loader"
	"github.com/mauv0809/soccer-analysis/internal/statistics"
)

// Service wires the loader and the statistics collector together.
type Service struct {
	loader    loader.Loader
	collector statistics.Collector
}

// LeagueStatus reports what the process currently holds for a league.
type LeagueStatus struct {
	League league.League `json:"league"`
	Loaded bool          `json:"loaded"`
	Cached bool          `json:"cached"`
}

// ScorerRow is a top scorer with the team name resolved for display.
type ScorerRow struct {
	statistics.Scorer
	TeamName string `json:"team_name" msgpack:"team_name"`
}

// AssistantRow is a top assistant with the team name resolved for display.
type AssistantRow struct {
	statistics.Assistant
	TeamName string `json:"team_name" msgpack:"team_name"`
}

// PlayerLeaders holds the player tables of a league.
type PlayerLeaders struct {
	League     league.League  `json:"league" msgpack:"league"`
	Scorers    []ScorerRow    `json:"top_scorers" msgpack:"top_scorers"`
	Assistants []AssistantRow `json:"top_assistants" msgpack:"top_assistants"`
}

func New(loader loader.Loader, collector statistics.Collector) *Service {
	return &Service{loader: loader, collector: collector}
}

// Load forces a fresh ingestion of the league.
func (s *Service) Load(l league.League) error {
	return s.loader.Load(l)
}

// LeagueStatistics loads the league on first use and returns its statistics.
func (s *Service) LeagueStatistics(l league.League) (*statistics.Statistics, error) {
	if err := s.loader.EnsureLoaded(l); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", l, err)
	}
	return s.collector.Collect(l)
}

// PlayerLeaders returns the scorer and assistant tables with team names.
// Teams that cannot be resolved are shown by id.
func (s *Service) PlayerLeaders(l league.League) (*PlayerLeaders, error) {
	stats, err := s.LeagueStatistics(l)
	if err != nil {
		return nil, err
	}

	names := make(map[int64]string)
	resolve := func(teamID int64) (string, error) {
		if name, ok := names[teamID]; ok {
			return name, nil
		}
		name, found, err := s.collector.TeamName(l, teamID)
		if err != nil {
			return "", err
		}
		if !found {
			log.Warn("Team referenced by player table not found", "league", l, "team_id", teamID)
			name = fmt.Sprintf("#%d", teamID)
		}
		names[teamID] = name
		return name, nil
	}

	leaders := &PlayerLeaders{
		League:     l,
		Scorers:    make([]ScorerRow, 0, len(stats.TopScorers)),
		Assistants: make([]AssistantRow, 0, len(stats.TopAssistants)),
	}
	for _, sc := range stats.TopScorers {
		name, err := resolve(sc.TeamID)
		if err != nil {
			return nil, err
		}
		leaders.Scorers = append(leaders.Scorers, ScorerRow{Scorer: sc, TeamName: name})
	}
	for _, a := range stats.TopAssistants {
		name, err := resolve(a.TeamID)
		if err != nil {
			return nil, err
		}
		leaders.Assistants = append(leaders.Assistants, AssistantRow{Assistant: a, TeamName: name})
	}
	return leaders, nil
}

// TeamName resolves a team id within a league.
func (s *Service) TeamName(l league.League, teamID int64) (string, bool, error) {
	return s.collector.TeamName(l, teamID)
}

// Leagues lists every supported league with its load and cache state.
func (s *Service) Leagues() []LeagueStatus {
	out := make([]LeagueStatus, 0, len(league.All()))
	for _, l := range league.All() {
		_, cached := s.collector.Cached(l)
		out = append(out, LeagueStatus{League: l, Loaded: s.loader.IsLoaded(l), Cached: cached})
	}
	return out
}

// Runs lists the recorded ingestions of a league.
func (s *Service) Runs(l league.League) ([]loader.Run, error) {
	return s.loader.Runs(l)
}
