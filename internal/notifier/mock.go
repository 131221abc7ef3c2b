package notifier

import "sync"

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	SendLeagueSummaryFunc  func(summary *LeagueSummary, dryRun bool) error
	SendLeagueSummaryCalls []SendLeagueSummaryCall
}

// SendLeagueSummaryCall holds the arguments for a call to SendLeagueSummary.
type SendLeagueSummaryCall struct {
	Summary *LeagueSummary
	DryRun  bool
}

var _ Notifier = (*Mock)(nil)

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SendLeagueSummary(summary *LeagueSummary, dryRun bool) error {
	m.mu.Lock()
	m.SendLeagueSummaryCalls = append(m.SendLeagueSummaryCalls, SendLeagueSummaryCall{Summary: summary, DryRun: dryRun})
	m.mu.Unlock()
	if m.SendLeagueSummaryFunc != nil {
		return m.SendLeagueSummaryFunc(summary, dryRun)
	}
	return nil
}

// Calls returns a copy of the recorded SendLeagueSummary calls.
func (m *Mock) Calls() []SendLeagueSummaryCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SendLeagueSummaryCall, len(m.SendLeagueSummaryCalls))
	copy(out, m.SendLeagueSummaryCalls)
	return out
}
