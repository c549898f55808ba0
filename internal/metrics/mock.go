package metrics

import "sync"

// MockMetrics is a no-op Metrics implementation recording call counts for tests.
type MockMetrics struct {
	mu sync.Mutex

	ApplyRunsCalls          int
	AssignmentsAppliedTotal int
	AssignmentsSkippedTotal int
	ApplyDurations          []float64
	SlotsGeneratedCalls     []int
	NotificationsSent       int
	NotificationsFailed     int
}

var _ Metrics = (*MockMetrics)(nil)

// NewMock creates a new mock instance.
func NewMock() *MockMetrics {
	return &MockMetrics{}
}

func (m *MockMetrics) IncApplyRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ApplyRunsCalls++
}

func (m *MockMetrics) IncAssignmentsApplied(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AssignmentsAppliedTotal += n
}

func (m *MockMetrics) IncAssignmentsSkipped(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AssignmentsSkippedTotal += n
}

func (m *MockMetrics) ObserveApplyDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ApplyDurations = append(m.ApplyDurations, seconds)
}

func (m *MockMetrics) ObserveSlotsGenerated(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SlotsGeneratedCalls = append(m.SlotsGeneratedCalls, n)
}

func (m *MockMetrics) IncNotificationsSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotificationsSent++
}

func (m *MockMetrics) IncNotificationsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotificationsFailed++
}

func (m *MockMetrics) SetStartupTime(seconds float64) {}
