package http

import (
	"net/http"

	"github.com/rwalker123/draco-sub018/internal/config"
	"github.com/rwalker123/draco-sub018/internal/league"
	"github.com/rwalker123/draco-sub018/internal/metrics"
	"github.com/rwalker123/draco-sub018/internal/notifier"
	"github.com/rwalker123/draco-sub018/internal/pubsub"
	"github.com/rwalker123/draco-sub018/internal/schedule"
)

func NewServer(leagues league.LeagueStore, engine *schedule.Engine, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Leagues:        leagues,
		Engine:         engine,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper, which
	// makes it easy to add more later, like an authentication middleware.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/schedule/preview", Chain(s.PreviewHandler(), paramsMiddleware))
	s.Router.Handle("/schedule/problem-spec", Chain(s.ProblemSpecHandler(), paramsMiddleware))
	s.Router.Handle("/schedule/apply", Chain(s.ApplyHandler(), paramsMiddleware))
	s.Router.Handle("/schedule/rules", Chain(s.RulesHandler(), paramsMiddleware))
	s.Router.Handle("/pubsub/schedule-applied", Chain(s.ScheduleAppliedHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
