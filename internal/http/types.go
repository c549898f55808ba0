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

type Server struct {
	Leagues        league.LeagueStore
	Engine         *schedule.Engine
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}

// solveSpecRequest is the body of POST /schedule/problem-spec.
type solveSpecRequest struct {
	AccountID string `json:"accountId"`
	SeasonID  string `json:"seasonId"`
	schedule.SolveRequest
}

// applyProposalRequest is the body of POST /schedule/apply.
type applyProposalRequest struct {
	AccountID string `json:"accountId"`
	schedule.ApplyRequest
}

type errorResponse struct {
	Error string `json:"error"`
}
