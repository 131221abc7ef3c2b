package http

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mauv0809/soccer-analysis/internal/config"
	"github.com/mauv0809/soccer-analysis/internal/dashboard"
	"github.com/mauv0809/soccer-analysis/internal/http/handlers"
	"github.com/mauv0809/soccer-analysis/internal/league"
	"github.com/mauv0809/soccer-analysis/internal/loader"
	"github.com/mauv0809/soccer-analysis/internal/metrics"
	"github.com/mauv0809/soccer-analysis/internal/notifier"
	"github.com/mauv0809/soccer-analysis/internal/pubsub"
	"github.com/mauv0809/soccer-analysis/internal/rawdata"
	"github.com/mauv0809/soccer-analysis/internal/statistics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

// setupTestServer builds a server over mock loader and collector implementations.
func setupTestServer(t *testing.T) (*Server, *loader.MockLoader, *statistics.MockCollector) {
	s, ld, col, _ := setupTestServerWithNotifier(t)
	return s, ld, col
}

func setupTestServerWithNotifier(t *testing.T) (*Server, *loader.MockLoader, *statistics.MockCollector, *notifier.Mock) {
	t.Helper()

	ld := loader.NewMock()
	col := statistics.NewMock()
	col.CollectFunc = func(l league.League) (*statistics.Statistics, error) {
		return &statistics.Statistics{
			League:      l,
			TeamRanking: []statistics.TeamStanding{{TeamName: "Arsenal", Position: 1, Points: 80, Goals: 70}},
			TopScorers:  []statistics.Scorer{{PlayerID: 9, PlayerName: "Striker", GoalsAmount: 20, TeamID: 1}},
			TopAssistants: []statistics.Assistant{
				{PlayerID: 10, PlayerName: "Playmaker", AssistAmount: 12, TeamID: 2},
			},
		}, nil
	}
	col.TeamNameFunc = func(l league.League, teamID int64) (string, bool, error) {
		if teamID == 1 {
			return "Arsenal", true, nil
		}
		return "", false, nil
	}

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	n := notifier.NewMock()
	server := NewServer(dashboard.New(ld, col), metricsSvc, metrics.NewMetricsHandler(reg), config.Config{}, n)
	return server, ld, col, n
}

func doRequest(t *testing.T, s *Server, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)
	return rr
}

func TestHealthCheck(t *testing.T) {
	s, _, _ := setupTestServer(t)
	rr := doRequest(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK!", rr.Body.String())
}

func TestStatisticsHandler(t *testing.T) {
	t.Run("loads the league once then serves statistics", func(t *testing.T) {
		s, ld, col := setupTestServer(t)

		rr := doRequest(t, s, http.MethodGet, "/leagues/england/statistics", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, handlers.ContentTypeJSON, rr.Header().Get("Content-Type"))

		var got statistics.Statistics
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, league.England, got.League)
		require.Len(t, got.TeamRanking, 1)
		assert.Equal(t, "Arsenal", got.TeamRanking[0].TeamName)

		rr = doRequest(t, s, http.MethodGet, "/leagues/england/statistics", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, []league.League{league.England}, ld.LoadCalls)
		assert.Len(t, col.CollectCalls, 2)
	})

	t.Run("league names are case insensitive", func(t *testing.T) {
		s, _, _ := setupTestServer(t)
		rr := doRequest(t, s, http.MethodGet, "/leagues/Spain/statistics", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("unknown league is a 404", func(t *testing.T) {
		s, ld, _ := setupTestServer(t)
		rr := doRequest(t, s, http.MethodGet, "/leagues/portugal/statistics", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Empty(t, ld.LoadCalls)
	})

	t.Run("msgpack is served when asked for", func(t *testing.T) {
		s, _, _ := setupTestServer(t)
		req := httptest.NewRequest(http.MethodGet, "/leagues/italy/statistics", nil)
		req.Header.Set("Accept", handlers.ContentTypeMsgpack)
		rr := httptest.NewRecorder()
		s.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, handlers.ContentTypeMsgpack, rr.Header().Get("Content-Type"))
		var got statistics.Statistics
		require.NoError(t, msgpack.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, league.Italy, got.League)
	})

	t.Run("missing columns surface as 422", func(t *testing.T) {
		s, ld, _ := setupTestServer(t)
		ld.LoadFunc = func(l league.League) error {
			return fmt.Errorf("teams_france.parquet: %w", rawdata.ErrMissingColumns)
		}
		rr := doRequest(t, s, http.MethodGet, "/leagues/france/statistics", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})
}

func TestLoadLeagueHandler(t *testing.T) {
	t.Run("reports the latest run", func(t *testing.T) {
		s, ld, _ := setupTestServer(t)
		ld.RunsFunc = func(l league.League) ([]loader.Run, error) {
			return []loader.Run{{ID: "run-2", League: l, Teams: 20, Events: 1000, Players: 500}}, nil
		}
		rr := doRequest(t, s, http.MethodPost, "/leagues/germany/load", nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var run loader.Run
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &run))
		assert.Equal(t, "run-2", run.ID)
		assert.Equal(t, 20, run.Teams)
		assert.True(t, ld.IsLoaded(league.Germany))
	})

	t.Run("load failure is a 500", func(t *testing.T) {
		s, ld, _ := setupTestServer(t)
		ld.LoadFunc = func(l league.League) error { return errors.New("disk full") }
		rr := doRequest(t, s, http.MethodPost, "/leagues/germany/load", nil)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), "disk full")
	})

	t.Run("GET is not allowed", func(t *testing.T) {
		s, _, _ := setupTestServer(t)
		rr := doRequest(t, s, http.MethodGet, "/leagues/germany/load", nil)
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	})
}

func TestListLeaguesHandler(t *testing.T) {
	s, _, _ := setupTestServer(t)
	doRequest(t, s, http.MethodGet, "/leagues/spain/statistics", nil)

	rr := doRequest(t, s, http.MethodGet, "/leagues", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var got []dashboard.LeagueStatus
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, len(league.All()))
	for _, status := range got {
		want := status.League == league.Spain
		assert.Equal(t, want, status.Loaded, status.League)
		assert.Equal(t, want, status.Cached, status.League)
	}
}

func TestTeamNameHandler(t *testing.T) {
	s, _, _ := setupTestServer(t)

	rr := doRequest(t, s, http.MethodGet, "/leagues/england/teams/1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"team_name":"Arsenal"`)

	rr = doRequest(t, s, http.MethodGet, "/leagues/england/teams/99", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doRequest(t, s, http.MethodGet, "/leagues/england/teams/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPlayerLeadersHandler(t *testing.T) {
	s, _, _ := setupTestServer(t)
	rr := doRequest(t, s, http.MethodGet, "/leagues/england/players", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var got dashboard.PlayerLeaders
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got.Scorers, 1)
	assert.Equal(t, "Arsenal", got.Scorers[0].TeamName)
	require.Len(t, got.Assistants, 1)
	assert.Equal(t, "#2", got.Assistants[0].TeamName)
}

func TestIngestionRunsHandler(t *testing.T) {
	s, _, _ := setupTestServer(t)
	rr := doRequest(t, s, http.MethodGet, "/leagues/england/runs", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func pushBody(t *testing.T, msg any) []byte {
	t.Helper()
	data, err := msgpack.Marshal(msg)
	require.NoError(t, err)
	var envelope pubsub.PushEnvelope
	envelope.Subscription = "projects/test/subscriptions/league-loaded"
	envelope.Message.Data = base64.StdEncoding.EncodeToString(data)
	envelope.Message.MessageID = "1"
	body, err := json.Marshal(envelope)
	require.NoError(t, err)
	return body
}

func TestLeagueLoadedPushHandler(t *testing.T) {
	t.Run("warms the statistics cache", func(t *testing.T) {
		s, _, col := setupTestServer(t)
		body := pushBody(t, pubsub.LeagueLoaded{RunID: "abc", League: "france", Teams: 20})

		rr := doRequest(t, s, http.MethodPost, "/pubsub/league-loaded", body)
		require.Equal(t, http.StatusOK, rr.Code)
		_, cached := col.Cached(league.France)
		assert.True(t, cached)
	})

	t.Run("announces the league summary", func(t *testing.T) {
		s, _, _, n := setupTestServerWithNotifier(t)
		body := pushBody(t, pubsub.LeagueLoaded{RunID: "abc", League: "england", Teams: 20})

		rr := doRequest(t, s, http.MethodPost, "/pubsub/league-loaded?dry_run=true", body)
		require.Equal(t, http.StatusOK, rr.Code)

		calls := n.Calls()
		require.Len(t, calls, 1)
		assert.True(t, calls[0].DryRun)
		assert.Equal(t, "abc", calls[0].Summary.Run.RunID)
		require.NotNil(t, calls[0].Summary.Leaders)
		assert.Equal(t, "Arsenal", calls[0].Summary.Leaders.Scorers[0].TeamName)
	})

	t.Run("notification failure still acknowledges", func(t *testing.T) {
		s, _, _, n := setupTestServerWithNotifier(t)
		n.SendLeagueSummaryFunc = func(*notifier.LeagueSummary, bool) error { return errors.New("slack down") }
		body := pushBody(t, pubsub.LeagueLoaded{League: "spain"})

		rr := doRequest(t, s, http.MethodPost, "/pubsub/league-loaded", body)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("unknown league is acknowledged", func(t *testing.T) {
		s, ld, _ := setupTestServer(t)
		body := pushBody(t, pubsub.LeagueLoaded{League: "mars"})

		rr := doRequest(t, s, http.MethodPost, "/pubsub/league-loaded", body)
		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, ld.LoadCalls)
	})

	t.Run("invalid envelope", func(t *testing.T) {
		s, _, _ := setupTestServer(t)
		rr := doRequest(t, s, http.MethodPost, "/pubsub/league-loaded", []byte("{not json"))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("invalid base64", func(t *testing.T) {
		s, _, _ := setupTestServer(t)
		rr := doRequest(t, s, http.MethodPost, "/pubsub/league-loaded", []byte(`{"message":{"data":"***"}}`))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	s, _, _ := setupTestServer(t)
	s.Metrics.SetStartupTime(1.5)
	rr := doRequest(t, s, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "soccer_")
}
