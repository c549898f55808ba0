package schedule

import (
	"time"
)

// Timezone-aware local-time arithmetic lives here so the constraint logic
// never touches UTC offsets directly.

const dateLayout = "2006-01-02"

// civilDate is a calendar date with no time component.
type civilDate struct {
	year  int
	month time.Month
	day   int
}

func parseDate(s string) (civilDate, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return civilDate{}, err
	}
	return civilDate{year: t.Year(), month: t.Month(), day: t.Day()}, nil
}

func (d civilDate) String() string {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC).Format(dateLayout)
}

func (d civilDate) next() civilDate {
	t := time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	return civilDate{year: t.Year(), month: t.Month(), day: t.Day()}
}

func (d civilDate) after(o civilDate) bool {
	if d.year != o.year {
		return d.year > o.year
	}
	if d.month != o.month {
		return d.month > o.month
	}
	return d.day > o.day
}

// parseClock parses a strict "HH:mm" wall-clock string into minutes since
// midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// weekdayMonZero returns the weekday index (Monday = 0) of the date as
// observed in loc at local midnight.
func weekdayMonZero(d civilDate, loc *time.Location) int {
	t := time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
	return (int(t.Weekday()) + 6) % 7
}

// atLocalClock resolves a date plus local wall-clock minutes through loc into
// an absolute instant. The same wall-clock time on different dates may carry
// different UTC offsets across a DST transition.
func atLocalClock(d civilDate, minutes int, loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, minutes/60, minutes%60, 0, 0, loc)
}

// utcDayBounds returns the half-open UTC calendar day [start, end) containing t.
// Daily game caps bucket on the UTC day, matching the durable count queries.
func utcDayBounds(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}
