package statistics

import (
	"sync"

	"github.com/mauv0809/soccer-analysis/internal/league"
)

// MockCollector is a mock implementation of Collector for testing.
type MockCollector struct {
	mu sync.Mutex

	CollectFunc  func(l league.League) (*Statistics, error)
	TeamNameFunc func(l league.League, teamID int64) (string, bool, error)

	CollectCalls  []league.League
	TeamNameCalls []TeamNameCall
	cache         map[league.League]*Statistics
}

// TeamNameCall holds the arguments for a call to TeamName.
type TeamNameCall struct {
	League league.League
	TeamID int64
}

var _ Collector = (*MockCollector)(nil)

func NewMock() *MockCollector {
	return &MockCollector{cache: make(map[league.League]*Statistics)}
}

func (m *MockCollector) Collect(l league.League) (*Statistics, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CollectCalls = append(m.CollectCalls, l)
	if stats, ok := m.cache[l]; ok {
		return stats, nil
	}
	stats := &Statistics{League: l}
	if m.CollectFunc != nil {
		var err error
		if stats, err = m.CollectFunc(l); err != nil {
			return nil, err
		}
	}
	m.cache[l] = stats
	return stats, nil
}

func (m *MockCollector) Cached(l league.League) (*Statistics, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats, ok := m.cache[l]
	return stats, ok
}

func (m *MockCollector) TeamName(l league.League, teamID int64) (string, bool, error) {
	m.mu.Lock()
	m.TeamNameCalls = append(m.TeamNameCalls, TeamNameCall{League: l, TeamID: teamID})
	m.mu.Unlock()
	if m.TeamNameFunc != nil {
		return m.TeamNameFunc(l, teamID)
	}
	return "", false, nil
}
