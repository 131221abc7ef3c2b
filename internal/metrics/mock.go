package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                 sync.Mutex
	leagueLoads        map[string]int
	leagueLoadFailures map[string]int
	loadDurations      []float64
	storedRows         map[string]int
	cacheHits          map[string]int
	cacheMisses        map[string]int
	collectDurations   []float64
	startupTime        float64
	notificationsSent  int
	notifFailed        int
}

var _ Metrics = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		leagueLoads:        make(map[string]int),
		leagueLoadFailures: make(map[string]int),
		storedRows:         make(map[string]int),
		cacheHits:          make(map[string]int),
		cacheMisses:        make(map[string]int),
	}
}

func (m *Mock) IncLeagueLoads(league string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leagueLoads[league]++
}

func (m *Mock) IncLeagueLoadFailures(league string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leagueLoadFailures[league]++
}

func (m *Mock) ObserveLoadDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadDurations = append(m.loadDurations, duration)
}

func (m *Mock) SetStoredRows(table string, rows int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storedRows[table] = rows
}

func (m *Mock) IncStatisticsCacheHits(league string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheHits[league]++
}

func (m *Mock) IncStatisticsCacheMisses(league string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheMisses[league]++
}

func (m *Mock) ObserveCollectDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collectDurations = append(m.collectDurations, duration)
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

func (m *Mock) IncNotificationsSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notificationsSent++
}

func (m *Mock) IncNotificationsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifFailed++
}

// NotificationsSent returns how often IncNotificationsSent was called.
func (m *Mock) NotificationsSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notificationsSent
}

// NotificationsFailed returns how often IncNotificationsFailed was called.
func (m *Mock) NotificationsFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifFailed
}

// LeagueLoads returns how often IncLeagueLoads was called for league.
func (m *Mock) LeagueLoads(league string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.leagueLoads[league]
}

// LeagueLoadFailures returns how often IncLeagueLoadFailures was called for league.
func (m *Mock) LeagueLoadFailures(league string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.leagueLoadFailures[league]
}

// StoredRows returns the last value set for table.
func (m *Mock) StoredRows(table string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.storedRows[table]
}

// CacheHits returns how often IncStatisticsCacheHits was called for league.
func (m *Mock) CacheHits(league string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cacheHits[league]
}

// CacheMisses returns how often IncStatisticsCacheMisses was called for league.
func (m *Mock) CacheMisses(league string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cacheMisses[league]
}
