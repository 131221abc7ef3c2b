package rawdata

import (
	"sync"

	"github.com/mauv0809/soccer-analysis/internal/league"
)

// MockSource is an in-memory Source for testing. It records how often each dataset is read.
type MockSource struct {
	mu sync.Mutex

	TeamsByLeague  map[league.League][]TeamRow
	EventsByLeague map[league.League][]EventRow
	PlayerRows     []PlayerRow

	TeamsErr   error
	EventsErr  error
	PlayersErr error

	TeamsCalls   []league.League
	EventsCalls  []league.League
	PlayersCalls int
}

var _ Source = (*MockSource)(nil)

// NewMock creates an empty MockSource.
func NewMock() *MockSource {
	return &MockSource{
		TeamsByLeague:  make(map[league.League][]TeamRow),
		EventsByLeague: make(map[league.League][]EventRow),
	}
}

func (m *MockSource) Teams(l league.League) ([]TeamRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TeamsCalls = append(m.TeamsCalls, l)
	if m.TeamsErr != nil {
		return nil, m.TeamsErr
	}
	return m.TeamsByLeague[l], nil
}

func (m *MockSource) Events(l league.League) ([]EventRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EventsCalls = append(m.EventsCalls, l)
	if m.EventsErr != nil {
		return nil, m.EventsErr
	}
	return m.EventsByLeague[l], nil
}

func (m *MockSource) Players() ([]PlayerRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PlayersCalls++
	if m.PlayersErr != nil {
		return nil, m.PlayersErr
	}
	return m.PlayerRows, nil
}
