package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/rwalker123/draco-sub018/internal/metrics"
	"github.com/rwalker123/draco-sub018/internal/notifier"
	"github.com/rwalker123/draco-sub018/internal/schedule"
	"github.com/slack-go/slack"
)

// maxSkipLines caps how many skip reasons one message lists before
// summarizing the remainder.
const maxSkipLines = 20

// slackClient is an interface that contains the methods from the slack.Client
// that we use. This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// SendApplySummary posts the outcome of one apply run to the ops channel.
func (s *Notifier) SendApplySummary(result *schedule.ApplyResult, dryRun bool) (string, error) {
	message := buildApplySummaryMessage(result)
	return s.sendMessage(message, dryRun)
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", nil
	}

	_, ts, err := s.api.PostMessageContext(context.Background(), s.channelID, slack.MsgOptionBlocks(message.Blocks.BlockSet...))
	if err != nil {
		s.metrics.IncNotificationsFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", err
	}
	s.metrics.IncNotificationsSent()
	return ts, nil
}

func buildApplySummaryMessage(result *schedule.ApplyResult) slack.Message {
	var icon string
	switch result.Status {
	case schedule.StatusApplied:
		icon = ":white_check_mark:"
	case schedule.StatusPartial:
		icon = ":warning:"
	default:
		icon = ":x:"
	}

	header := slack.NewHeaderBlock(slack.NewTextBlockObject(
		slack.PlainTextType, fmt.Sprintf("%s Schedule apply run %s", icon, result.Status), true, false))
	summary := slack.NewSectionBlock(slack.NewTextBlockObject(
		slack.MarkdownType,
		fmt.Sprintf("*Run:* `%s`\n*Applied:* %d\n*Skipped:* %d", result.RunID, len(result.Applied), len(result.Skipped)),
		false, false), nil, nil)

	blocks := []slack.Block{header, summary}
	if len(result.Skipped) > 0 {
		var lines []string
		for i, skip := range result.Skipped {
			if i == maxSkipLines {
				lines = append(lines, fmt.Sprintf("…and %d more", len(result.Skipped)-maxSkipLines))
				break
			}
			lines = append(lines, fmt.Sprintf("• `%s`: %s", skip.GameID, skip.Reason))
		}
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject(
			slack.MarkdownType, strings.Join(lines, "\n"), false, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}
