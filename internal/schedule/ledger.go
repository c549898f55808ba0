package schedule

import (
	"fmt"
	"time"
)

// ledger tracks resource usage accepted earlier in the same apply call.
// Durable storage alone cannot catch two assignments in one batch claiming
// the same resource at the same instant; the ledger closes that gap. It is
// built fresh per call and discarded when the call returns, which keeps the
// engine safely callable across unrelated requests.
type ledger struct {
	counts map[string]int
}

func newLedger() *ledger {
	return &ledger{counts: make(map[string]int)}
}

// instantKey buckets a resource at an exact start instant within one league.
func instantKey(kind, resourceID string, at time.Time, leagueSeasonID string) string {
	return fmt.Sprintf("%s:%s|%d|%s", kind, resourceID, at.Unix(), leagueSeasonID)
}

// dayKey buckets a resource on the UTC calendar day within one league.
func dayKey(kind, resourceID string, at time.Time, leagueSeasonID string) string {
	return fmt.Sprintf("%s:%s|%s|%s", kind, resourceID, at.UTC().Format(dateLayout), leagueSeasonID)
}

func (l *ledger) count(key string) int {
	return l.counts[key]
}

func (l *ledger) add(key string) {
	l.counts[key]++
}
