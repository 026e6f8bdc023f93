package scheduler

import (
	"time"

	"github.com/alexanderramin/fabline/internal/domain"
)

const dateLayout = "2006-01-02"

// Calendar answers working-day questions against one immutable holiday
// snapshot. Weekends and holiday dates are non-working; everything else is
// working. Holiday matching is by calendar date only; time of day is
// ignored, and duplicate dates in the snapshot collapse into one entry.
type Calendar struct {
	holidays map[string]struct{}
}

// NewCalendar builds a Calendar from the given holiday snapshot.
func NewCalendar(holidays []domain.Holiday) *Calendar {
	set := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		set[h.Date.Format(dateLayout)] = struct{}{}
	}
	return &Calendar{holidays: set}
}

// IsWorkingDay reports whether t falls on neither a weekend nor a holiday.
func (c *Calendar) IsWorkingDay(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	_, holiday := c.holidays[t.Format(dateLayout)]
	return !holiday
}

// SubtractWorkingDays steps backward from t one calendar day at a time,
// counting a step only when it lands on a working day, until n working-day
// steps have been consumed. For n >= 1 the result is always a working day
// strictly before t. n = 0 returns t unchanged, whether or not t is a
// working day.
func (c *Calendar) SubtractWorkingDays(t time.Time, n int) time.Time {
	cur := t
	for remaining := n; remaining > 0; {
		cur = cur.AddDate(0, 0, -1)
		if c.IsWorkingDay(cur) {
			remaining--
		}
	}
	return cur
}
