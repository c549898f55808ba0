package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/rwalker123/draco-sub018/internal/pubsub"
	"github.com/rwalker123/draco-sub018/internal/schedule"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// PreviewHandler serves the read-only problem spec projection for the UI.
func (s *Server) PreviewHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := r.URL.Query().Get("accountId")
		seasonID := r.URL.Query().Get("seasonId")
		if accountID == "" || seasonID == "" {
			writeJSONError(w, http.StatusBadRequest, "accountId and seasonId are required")
			return
		}

		preview, err := s.Engine.BuildPreview(accountID, seasonID)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, preview)
	}
}

// ProblemSpecHandler builds the full spec handed to the solver.
func (s *Server) ProblemSpecHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSONError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		var req solveSpecRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.AccountID == "" || req.SeasonID == "" {
			writeJSONError(w, http.StatusBadRequest, "accountId and seasonId are required")
			return
		}

		spec, err := s.Engine.BuildProblemSpec(req.AccountID, req.SeasonID, req.SolveRequest)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, spec)
	}
}

// ApplyHandler validates and persists proposed assignments. A real run
// publishes the result; the operator summary is sent when the event comes
// back through the push subscription. A dry run publishes nothing, so its
// summary is sent directly.
func (s *Server) ApplyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSONError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		var req applyProposalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.AccountID == "" {
			writeJSONError(w, http.StatusBadRequest, "accountId is required")
			return
		}
		dryRun := isDryRunFromContext(r)

		result, err := s.Engine.ApplyProposal(req.AccountID, req.ApplyRequest, dryRun)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		if dryRun {
			if _, err := s.Notifier.SendApplySummary(result, true); err != nil {
				log.Error("Failed to send apply summary", "error", err, "runID", result.RunID)
			}
		} else if err := s.pubsub.SendMessage(s.applyTopic(), result); err != nil {
			log.Error("Failed to publish apply result", "error", err, "runID", result.RunID)
		}
		writeJSON(w, result)
	}
}

// ScheduleAppliedHandler consumes applied-schedule events delivered by the
// pubsub push subscription and sends the operator summary for each run.
func (s *Server) ScheduleAppliedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received schedule applied message", "body", string(bodyBytes))

		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"`
			} `json:"message"`
		}

		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		var result schedule.ApplyResult
		if err := s.pubsub.ProcessMessage(rawData, &result); err != nil {
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}
		if _, err := s.Notifier.SendApplySummary(&result, isDryRunFromContext(r)); err != nil {
			log.Error("Failed to send apply summary", "error", err, "runID", result.RunID)
			http.Error(w, "Failed to send apply summary", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// applyTopic returns the configured topic for applied-schedule events.
func (s *Server) applyTopic() string {
	if s.Cfg.ApplyTopic != "" {
		return s.Cfg.ApplyTopic
	}
	return string(pubsub.EventScheduleApplied)
}

// RulesHandler lists the raw availability rules for a season.
func (s *Server) RulesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seasonID := r.URL.Query().Get("seasonId")
		if seasonID == "" {
			writeJSONError(w, http.StatusBadRequest, "seasonId is required")
			return
		}
		rules, err := s.Leagues.ListAvailabilityRules(seasonID)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to list availability rules")
			log.Error("Failed to list availability rules", "error", err, "seasonID", seasonID)
			return
		}
		writeJSON(w, rules)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorResponse{Error: msg}); err != nil {
		log.Error("Failed to write error response", "error", err)
	}
}

// writeEngineError maps the engine's error taxonomy onto HTTP statuses.
func writeEngineError(w http.ResponseWriter, err error) {
	var validation *schedule.ValidationError
	var notFound *schedule.NotFoundError
	switch {
	case errors.As(err, &validation):
		writeJSONError(w, http.StatusBadRequest, validation.Reason)
	case errors.As(err, &notFound):
		writeJSONError(w, http.StatusNotFound, notFound.Error())
	default:
		log.Error("Scheduling request failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "internal error")
	}
}
