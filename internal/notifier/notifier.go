package notifier

import "github.com/rwalker123/draco-sub018/internal/schedule"

// Notifier defines a high-level interface for telling league operators about
// scheduling events. This decouples the rest of the application from the
// specific notification provider (e.g., Slack).
type Notifier interface {
	// SendApplySummary reports the outcome of one apply run, including every
	// skipped game and its reason. Returns the message timestamp.
	SendApplySummary(result *schedule.ApplyResult, dryRun bool) (string, error)
}
