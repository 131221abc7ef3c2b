package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncLeagueLoads(league string)
	IncLeagueLoadFailures(league string)
	ObserveLoadDuration(duration float64)
	SetStoredRows(table string, rows int)
	IncStatisticsCacheHits(league string)
	IncStatisticsCacheMisses(league string)
	ObserveCollectDuration(duration float64)
	SetStartupTime(duration float64)
	IncNotificationsSent()
	IncNotificationsFailed()
}
