package loader

import (
	"sync"

	"github.com/mauv0809/soccer-analysis/internal/league"
)

// MockLoader is a mock implementation of Loader for testing.
// Without LoadFunc it simply marks leagues as loaded.
type MockLoader struct {
	mu sync.Mutex

	LoadFunc func(l league.League) error
	RunsFunc func(l league.League) ([]Run, error)

	LoadCalls []league.League
	loaded    map[league.League]bool
}

var _ Loader = (*MockLoader)(nil)

func NewMock() *MockLoader {
	return &MockLoader{loaded: make(map[league.League]bool)}
}

func (m *MockLoader) Load(l league.League) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadLocked(l)
}

func (m *MockLoader) loadLocked(l league.League) error {
	m.LoadCalls = append(m.LoadCalls, l)
	if m.LoadFunc != nil {
		if err := m.LoadFunc(l); err != nil {
			return err
		}
	}
	m.loaded[l] = true
	return nil
}

func (m *MockLoader) EnsureLoaded(l league.League) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loaded[l] {
		return nil
	}
	return m.loadLocked(l)
}

func (m *MockLoader) IsLoaded(l league.League) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaded[l]
}

func (m *MockLoader) Loaded() []league.League {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []league.League
	for _, l := range league.All() {
		if m.loaded[l] {
			out = append(out, l)
		}
	}
	return out
}

func (m *MockLoader) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaded = make(map[league.League]bool)
}

func (m *MockLoader) Runs(l league.League) ([]Run, error) {
	if m.RunsFunc != nil {
		return m.RunsFunc(l)
	}
	return nil, nil
}
