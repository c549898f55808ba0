package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service is the Prometheus-backed Metrics implementation.
type Service struct {
	ApplyRuns          prometheus.Counter
	AssignmentsApplied prometheus.Counter
	AssignmentsSkipped prometheus.Counter
	ApplyDuration      prometheus.Histogram
	SlotsGenerated     prometheus.Histogram
	NotifSent          prometheus.Counter
	NotifFailed        prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
