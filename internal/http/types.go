package http

import (
	"net/http"

	"github.com/mauv0809/soccer-analysis/internal/config"
	"github.com/mauv0809/soccer-analysis/internal/dashboard"
	"github.com/mauv0809/soccer-analysis/internal/metrics"
	"github.com/mauv0809/soccer-analysis/internal/notifier"
)

type Server struct {
	Dashboard      *dashboard.Service
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
	// Notifier is optional; league summaries are skipped when it is nil.
	Notifier notifier.Notifier
}
