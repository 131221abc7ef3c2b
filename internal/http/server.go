package http

import (
	"net/http"

	"github.com/mauv0809/soccer-analysis/internal/config"
	"github.com/mauv0809/soccer-analysis/internal/dashboard"
	"github.com/mauv0809/soccer-analysis/internal/http/handlers"
	"github.com/mauv0809/soccer-analysis/internal/metrics"
	"github.com/mauv0809/soccer-analysis/internal/notifier"
)

func NewServer(dash *dashboard.Service, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, n notifier.Notifier) *Server {
	server := &Server{
		Dashboard:      dash,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
		Notifier:       n,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(handlers.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("GET /leagues", Chain(s.ListLeaguesHandler(), paramsMiddleware))
	s.Router.Handle("POST /leagues/{league}/load", Chain(s.LoadLeagueHandler(), paramsMiddleware))
	s.Router.Handle("GET /leagues/{league}/statistics", Chain(s.StatisticsHandler(), paramsMiddleware))
	s.Router.Handle("GET /leagues/{league}/players", Chain(s.PlayerLeadersHandler(), paramsMiddleware))
	s.Router.Handle("GET /leagues/{league}/teams/{id}", Chain(s.TeamNameHandler(), paramsMiddleware))
	s.Router.Handle("GET /leagues/{league}/runs", Chain(s.IngestionRunsHandler(), paramsMiddleware))
	s.Router.Handle("POST /pubsub/league-loaded", Chain(s.LeagueLoadedPushHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
