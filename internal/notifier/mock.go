package notifier

import (
	"sync"

	"github.com/rwalker123/draco-sub018/internal/schedule"
)

// MockNotifier is a mock implementation of the Notifier interface for testing.
type MockNotifier struct {
	mu sync.Mutex

	SendApplySummaryFunc func(result *schedule.ApplyResult, dryRun bool) (string, error)

	SendApplySummaryCalls []struct {
		Result *schedule.ApplyResult
		DryRun bool
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) SendApplySummary(result *schedule.ApplyResult, dryRun bool) (string, error) {
	m.mu.Lock()
	m.SendApplySummaryCalls = append(m.SendApplySummaryCalls, struct {
		Result *schedule.ApplyResult
		DryRun bool
	}{result, dryRun})
	m.mu.Unlock()
	if m.SendApplySummaryFunc != nil {
		return m.SendApplySummaryFunc(result, dryRun)
	}
	return "mock-ts", nil
}
