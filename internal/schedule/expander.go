package schedule

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/rwalker123/draco-sub018/internal/league"
)

// weekdayMaskBits keeps the seven meaningful bits of a rule's weekday mask.
// Higher bits carry no weekday and are masked off.
const weekdayMaskBits = 0x7F

// Expand converts every enabled availability rule into concrete field slots,
// resolving local wall-clock windows through timeZoneID. Slot ids are derived
// from rule id, date and start instant, so expanding unchanged rules always
// yields an identical slot set. A malformed rule fails the whole expansion,
// never a silent skip.
func Expand(rules []league.AvailabilityRule, timeZoneID string) ([]FieldSlot, error) {
	loc, err := time.LoadLocation(timeZoneID)
	if err != nil {
		return nil, validationErrorf("unresolvable timezone %q", timeZoneID)
	}

	var slots []FieldSlot
	for _, rule := range rules {
		if !rule.Enabled {
			continue
		}
		ruleSlots, err := expandRule(rule, loc)
		if err != nil {
			return nil, err
		}
		slots = append(slots, ruleSlots...)
	}
	log.Debug("Expanded availability rules", "rules", len(rules), "slots", len(slots), "timezone", timeZoneID)
	return slots, nil
}

func expandRule(rule league.AvailabilityRule, loc *time.Location) ([]FieldSlot, error) {
	startMin, err := parseClock(rule.StartTimeLocal)
	if err != nil {
		return nil, validationErrorf("availability rule %s has malformed start time %q", rule.ID, rule.StartTimeLocal)
	}
	endMin, err := parseClock(rule.EndTimeLocal)
	if err != nil {
		return nil, validationErrorf("availability rule %s has malformed end time %q", rule.ID, rule.EndTimeLocal)
	}
	startDate, err := parseDate(rule.StartDate)
	if err != nil {
		return nil, validationErrorf("availability rule %s has malformed start date %q", rule.ID, rule.StartDate)
	}
	endDate, err := parseDate(rule.EndDate)
	if err != nil {
		return nil, validationErrorf("availability rule %s has malformed end date %q", rule.ID, rule.EndDate)
	}
	if startDate.after(endDate) {
		return nil, validationErrorf("availability rule %s: end date %s precedes start date %s", rule.ID, rule.EndDate, rule.StartDate)
	}
	increment := rule.StartIncrementMinutes
	if increment <= 0 {
		return nil, validationErrorf("availability rule %s has non-positive start increment %d", rule.ID, increment)
	}
	mask := rule.DaysOfWeekMask & weekdayMaskBits

	// Upper bound on slots per date; exceeding it means the rule is malformed
	// and generation would otherwise run away.
	maxPerDate := 1
	if endMin > startMin {
		maxPerDate = (endMin-startMin+increment-1)/increment + 1
	}

	var slots []FieldSlot
	for date := startDate; !date.after(endDate); date = date.next() {
		if mask&(1<<weekdayMonZero(date, loc)) == 0 {
			continue
		}
		windowStart := atLocalClock(date, startMin, loc)
		windowEnd := atLocalClock(date, endMin, loc)

		generated := 0
		for at := windowStart; at.Before(windowEnd); at = at.Add(time.Duration(increment) * time.Minute) {
			generated++
			if generated > maxPerDate {
				return nil, validationErrorf("availability rule %s generated more than %d slots on %s", rule.ID, maxPerDate, date)
			}
			slots = append(slots, FieldSlot{
				ID:        fmt.Sprintf("%s-%s-%d", rule.ID, date, at.Unix()),
				FieldID:   rule.FieldID,
				StartTime: at.UTC(),
				EndTime:   windowEnd.UTC(),
			})
		}
	}
	return slots, nil
}

// deriveSeasonRange computes the season's planning horizon as the earliest
// start date and latest end date across enabled rules. ISO dates compare
// correctly as strings.
func deriveSeasonRange(rules []league.AvailabilityRule) (string, string, error) {
	var start, end string
	for _, rule := range rules {
		if !rule.Enabled {
			continue
		}
		if start == "" || rule.StartDate < start {
			start = rule.StartDate
		}
		if end == "" || rule.EndDate > end {
			end = rule.EndDate
		}
	}
	if start == "" {
		return "", "", validationErrorf("season has no enabled availability rules")
	}
	return start, end, nil
}
