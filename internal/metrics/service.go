package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		LeagueLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "soccer_league_loads_total",
			Help: "The total number of completed league ingestions.",
		}, []string{"league"}),
		LeagueLoadFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "soccer_league_load_failures_total",
			Help: "The total number of league ingestions that returned an error.",
		}, []string{"league"}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "soccer_league_load_duration_seconds",
			Help:    "The duration of a full league ingestion.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		StoredRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "soccer_stored_rows",
			Help: "Row count of each table after the last ingestion touching it.",
		}, []string{"table"}),
		StatisticsCacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "soccer_statistics_cache_hits_total",
			Help: "Statistics requests answered from the in-process cache.",
		}, []string{"league"}),
		StatisticsCacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "soccer_statistics_cache_misses_total",
			Help: "Statistics requests that had to query the store.",
		}, []string{"league"}),
		CollectDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "soccer_statistics_collect_duration_seconds",
			Help:    "The duration of computing all statistic sets for a league.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "soccer_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
		NotificationsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "soccer_slack_notifications_sent_total",
			Help: "The total number of league summaries posted to Slack.",
		}),
		NotificationsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "soccer_slack_notifications_failed_total",
			Help: "The total number of league summaries that could not be posted to Slack.",
		}),
	}

	reg.MustRegister(
		s.LeagueLoads,
		s.LeagueLoadFailures,
		s.LoadDuration,
		s.StoredRows,
		s.StatisticsCacheHits,
		s.StatisticsCacheMisses,
		s.CollectDuration,
		s.StartupTimeSeconds,
		s.NotificationsSent,
		s.NotificationsFailed,
	)

	return s
}

func (s *Service) IncLeagueLoads(league string) {
	s.LeagueLoads.WithLabelValues(league).Inc()
}

func (s *Service) IncLeagueLoadFailures(league string) {
	s.LeagueLoadFailures.WithLabelValues(league).Inc()
}

func (s *Service) ObserveLoadDuration(duration float64) {
	s.LoadDuration.Observe(duration)
}

func (s *Service) SetStoredRows(table string, rows int) {
	s.StoredRows.WithLabelValues(table).Set(float64(rows))
}

func (s *Service) IncStatisticsCacheHits(league string) {
	s.StatisticsCacheHits.WithLabelValues(league).Inc()
}

func (s *Service) IncStatisticsCacheMisses(league string) {
	s.StatisticsCacheMisses.WithLabelValues(league).Inc()
}

func (s *Service) ObserveCollectDuration(duration float64) {
	s.CollectDuration.Observe(duration)
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}

func (s *Service) IncNotificationsSent() {
	s.NotificationsSent.Inc()
}

func (s *Service) IncNotificationsFailed() {
	s.NotificationsFailed.Inc()
}
