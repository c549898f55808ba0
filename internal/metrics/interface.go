package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the engine from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncApplyRuns()
	IncAssignmentsApplied(n int)
	IncAssignmentsSkipped(n int)
	ObserveApplyDuration(seconds float64)
	ObserveSlotsGenerated(n int)
	IncNotificationsSent()
	IncNotificationsFailed()
	SetStartupTime(seconds float64)
}
