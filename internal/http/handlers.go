package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/soccer-analysis/internal/http/handlers"
	"github.com/mauv0809/soccer-analysis/internal/league"
	"github.com/mauv0809/soccer-analysis/internal/loader"
	"github.com/mauv0809/soccer-analysis/internal/notifier"
	"github.com/mauv0809/soccer-analysis/internal/pubsub"
	"github.com/mauv0809/soccer-analysis/internal/rawdata"
	"github.com/mauv0809/soccer-analysis/internal/statistics"
)

// statusFor maps core errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, league.ErrUnknownLeague):
		return http.StatusNotFound
	case errors.Is(err, rawdata.ErrMissingColumns):
		return http.StatusUnprocessableEntity
	case errors.Is(err, statistics.ErrNotLoaded):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// leagueFromPath parses the {league} path segment, writing a 404 when it is unknown.
func leagueFromPath(w http.ResponseWriter, r *http.Request) (league.League, bool) {
	l, err := league.Parse(r.PathValue("league"))
	if err != nil {
		handlers.WriteError(w, http.StatusNotFound, "%s", err.Error())
		return "", false
	}
	return l, true
}

func (s *Server) ListLeaguesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteResponse(w, r, http.StatusOK, s.Dashboard.Leagues())
	}
}

func (s *Server) LoadLeagueHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, ok := leagueFromPath(w, r)
		if !ok {
			return
		}
		if err := s.Dashboard.Load(l); err != nil {
			log.Error("Failed to load league", "league", l, "error", err)
			handlers.WriteError(w, statusFor(err), "failed to load %s: %v", l, err)
			return
		}
		runs, err := s.Dashboard.Runs(l)
		if err != nil || len(runs) == 0 {
			if err != nil {
				log.Error("Failed to read ingestion runs", "league", l, "error", err)
			}
			handlers.WriteResponse(w, r, http.StatusOK, map[string]any{"league": l, "loaded": true})
			return
		}
		handlers.WriteResponse(w, r, http.StatusOK, runs[0])
	}
}

func (s *Server) StatisticsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, ok := leagueFromPath(w, r)
		if !ok {
			return
		}
		stats, err := s.Dashboard.LeagueStatistics(l)
		if err != nil {
			log.Error("Failed to get league statistics", "league", l, "error", err)
			handlers.WriteError(w, statusFor(err), "failed to compute statistics for %s: %v", l, err)
			return
		}
		handlers.WriteResponse(w, r, http.StatusOK, stats)
	}
}

func (s *Server) PlayerLeadersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, ok := leagueFromPath(w, r)
		if !ok {
			return
		}
		leaders, err := s.Dashboard.PlayerLeaders(l)
		if err != nil {
			log.Error("Failed to get player leaders", "league", l, "error", err)
			handlers.WriteError(w, statusFor(err), "failed to compute player tables for %s: %v", l, err)
			return
		}
		handlers.WriteResponse(w, r, http.StatusOK, leaders)
	}
}

func (s *Server) TeamNameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, ok := leagueFromPath(w, r)
		if !ok {
			return
		}
		teamID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			handlers.WriteError(w, http.StatusBadRequest, "invalid team id %q", r.PathValue("id"))
			return
		}
		name, found, err := s.Dashboard.TeamName(l, teamID)
		if err != nil {
			log.Error("Failed to look up team", "league", l, "team_id", teamID, "error", err)
			handlers.WriteError(w, statusFor(err), "failed to look up team %d: %v", teamID, err)
			return
		}
		if !found {
			handlers.WriteError(w, http.StatusNotFound, "team %d not found in %s", teamID, l)
			return
		}
		handlers.WriteResponse(w, r, http.StatusOK, map[string]any{"league": l, "id": teamID, "team_name": name})
	}
}

func (s *Server) IngestionRunsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, ok := leagueFromPath(w, r)
		if !ok {
			return
		}
		runs, err := s.Dashboard.Runs(l)
		if err != nil {
			log.Error("Failed to list ingestion runs", "league", l, "error", err)
			handlers.WriteError(w, http.StatusInternalServerError, "failed to list ingestion runs")
			return
		}
		if runs == nil {
			runs = []loader.Run{}
		}
		handlers.WriteResponse(w, r, http.StatusOK, runs)
	}
}

// LeagueLoadedPushHandler receives league-loaded events from a Pub/Sub push subscription
// and computes the league's statistics so the first dashboard request hits the cache.
func (s *Server) LeagueLoadedPushHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received league-loaded message", "body", string(bodyBytes))

		var envelope pubsub.PushEnvelope
		if err := json.Unmarshal(bodyBytes, &envelope); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		rawData, err := base64.StdEncoding.DecodeString(envelope.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}
		var msg pubsub.LeagueLoaded
		if err := pubsub.Decode(rawData, &msg); err != nil {
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}
		l, err := league.Parse(msg.League)
		if err != nil {
			// Acknowledge so Pub/Sub does not redeliver a message we can never handle.
			log.Warn("Ignoring league-loaded event for unknown league", "league", msg.League)
			w.WriteHeader(http.StatusNoContent)
			return
		}
		stats, err := s.Dashboard.LeagueStatistics(l)
		if err != nil {
			log.Error("Failed to warm statistics cache", "league", l, "error", err)
			http.Error(w, "Failed to compute statistics", http.StatusInternalServerError)
			return
		}
		log.Info("Statistics cache warmed", "league", l, "run_id", msg.RunID)
		s.announce(l, msg, stats, handlers.IsDryRunFromContext(r))
		w.Write([]byte("OK"))
	}
}

// announce posts the league summary. Failures are logged only so Pub/Sub does not redeliver.
func (s *Server) announce(l league.League, msg pubsub.LeagueLoaded, stats *statistics.Statistics, dryRun bool) {
	if s.Notifier == nil {
		return
	}
	leaders, err := s.Dashboard.PlayerLeaders(l)
	if err != nil {
		log.Error("Failed to resolve player leaders for summary", "league", l, "error", err)
	}
	summary := &notifier.LeagueSummary{Run: msg, Statistics: stats, Leaders: leaders}
	if err := s.Notifier.SendLeagueSummary(summary, dryRun); err != nil {
		log.Error("Failed to send league summary", "league", l, "error", err)
	}
}
