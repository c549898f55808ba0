package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		ApplyRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_apply_runs_total",
			Help: "The total number of schedule apply runs.",
		}),
		AssignmentsApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_assignments_applied_total",
			Help: "The total number of game assignments successfully applied.",
		}),
		AssignmentsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_assignments_skipped_total",
			Help: "The total number of game assignments skipped by constraint checks.",
		}),
		ApplyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "league_apply_duration_seconds",
			Help:    "The duration of individual apply runs.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		SlotsGenerated: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "league_slots_generated",
			Help:    "The number of field slots generated per problem spec build.",
			Buckets: prometheus.ExponentialBuckets(10, 4, 8),
		}),
		NotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_notifications_sent_total",
			Help: "The total number of apply-run notifications successfully sent.",
		}),
		NotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_notifications_failed_total",
			Help: "The total number of apply-run notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "league_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.ApplyRuns,
		s.AssignmentsApplied,
		s.AssignmentsSkipped,
		s.ApplyDuration,
		s.SlotsGenerated,
		s.NotifSent,
		s.NotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncApplyRuns() {
	s.ApplyRuns.Inc()
}

func (s *Service) IncAssignmentsApplied(n int) {
	s.AssignmentsApplied.Add(float64(n))
}

func (s *Service) IncAssignmentsSkipped(n int) {
	s.AssignmentsSkipped.Add(float64(n))
}

func (s *Service) ObserveApplyDuration(seconds float64) {
	s.ApplyDuration.Observe(seconds)
}

func (s *Service) ObserveSlotsGenerated(n int) {
	s.SlotsGenerated.Observe(float64(n))
}

func (s *Service) IncNotificationsSent() {
	s.NotifSent.Inc()
}

func (s *Service) IncNotificationsFailed() {
	s.NotifFailed.Inc()
}

func (s *Service) SetStartupTime(seconds float64) {
	s.StartupTimeSeconds.Set(seconds)
}
