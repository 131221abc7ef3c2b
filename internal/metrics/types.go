package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	LeagueLoads           *prometheus.CounterVec
	LeagueLoadFailures    *prometheus.CounterVec
	LoadDuration          prometheus.Histogram
	StoredRows            *prometheus.GaugeVec
	StatisticsCacheHits   *prometheus.CounterVec
	StatisticsCacheMisses *prometheus.CounterVec
	CollectDuration       prometheus.Histogram
	StartupTimeSeconds    prometheus.Gauge
	NotificationsSent     prometheus.Counter
	NotificationsFailed   prometheus.Counter
}
