package scheduler

import (
	"math/rand"
	"testing"
	"time"

	"github.com/alexanderramin/fabline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func makeHoliday(year int, month time.Month, d int, name string) domain.Holiday {
	return domain.Holiday{Date: day(year, month, d), Name: name, IsPublic: true}
}

// workingDaysBetween counts working days in the inclusive range [from, to].
func workingDaysBetween(cal *Calendar, from, to time.Time) int {
	count := 0
	for cur := from; !cur.After(to); cur = cur.AddDate(0, 0, 1) {
		if cal.IsWorkingDay(cur) {
			count++
		}
	}
	return count
}

func TestIsWorkingDay_Weekdays(t *testing.T) {
	cal := NewCalendar(nil)

	// Mon 2026-03-16 through Fri 2026-03-20.
	for d := 16; d <= 20; d++ {
		assert.True(t, cal.IsWorkingDay(day(2026, time.March, d)), "2026-03-%02d should be a working day", d)
	}
}

func TestIsWorkingDay_Weekends(t *testing.T) {
	cal := NewCalendar(nil)

	assert.False(t, cal.IsWorkingDay(day(2026, time.March, 21)), "Saturday should not be a working day")
	assert.False(t, cal.IsWorkingDay(day(2026, time.March, 22)), "Sunday should not be a working day")
}

func TestIsWorkingDay_Holiday(t *testing.T) {
	cal := NewCalendar([]domain.Holiday{
		makeHoliday(2026, time.March, 18, "Foundry Maintenance"),
	})

	assert.False(t, cal.IsWorkingDay(day(2026, time.March, 18)), "holiday Wednesday should not be a working day")
	assert.True(t, cal.IsWorkingDay(day(2026, time.March, 17)), "day before the holiday stays working")
	assert.True(t, cal.IsWorkingDay(day(2026, time.March, 19)), "day after the holiday stays working")
}

func TestIsWorkingDay_MatchesByCalendarDateOnly(t *testing.T) {
	cal := NewCalendar([]domain.Holiday{
		makeHoliday(2026, time.March, 18, "Foundry Maintenance"),
	})

	afternoon := time.Date(2026, time.March, 18, 15, 30, 0, 0, time.UTC)
	assert.False(t, cal.IsWorkingDay(afternoon), "time of day must not defeat holiday matching")
}

func TestSubtractWorkingDays_ZeroReturnsInput(t *testing.T) {
	cal := NewCalendar(nil)

	monday := day(2026, time.March, 16)
	assert.Equal(t, monday, cal.SubtractWorkingDays(monday, 0))

	saturday := day(2026, time.March, 21)
	assert.Equal(t, saturday, cal.SubtractWorkingDays(saturday, 0), "zero offset returns the input even on a weekend")
}

func TestSubtractWorkingDays_MidWeek(t *testing.T) {
	cal := NewCalendar(nil)

	// Thu 2026-03-19 minus 2 working days: Wed 18, Tue 17.
	got := cal.SubtractWorkingDays(day(2026, time.March, 19), 2)
	assert.Equal(t, day(2026, time.March, 17), got)
}

func TestSubtractWorkingDays_SkipsWeekend(t *testing.T) {
	cal := NewCalendar(nil)

	// Mon 2026-03-23 minus 1 working day lands on Fri 2026-03-20.
	got := cal.SubtractWorkingDays(day(2026, time.March, 23), 1)
	assert.Equal(t, day(2026, time.March, 20), got)
}

func TestSubtractWorkingDays_SkipsHoliday(t *testing.T) {
	cal := NewCalendar([]domain.Holiday{
		makeHoliday(2026, time.March, 20, "Plant Shutdown"),
	})

	// Mon 2026-03-23 minus 1: Fri 20 is a holiday, so Thu 19.
	got := cal.SubtractWorkingDays(day(2026, time.March, 23), 1)
	assert.Equal(t, day(2026, time.March, 19), got)
}

func TestSubtractWorkingDays_HolidayBlockAroundWeekend(t *testing.T) {
	cal := NewCalendar([]domain.Holiday{
		makeHoliday(2026, time.December, 24, "Christmas Eve"),
		makeHoliday(2026, time.December, 25, "Christmas Day"),
	})

	// Mon 2026-12-28 minus 1: Sun 27, Sat 26, Fri 25 and Thu 24 are all
	// skipped, landing on Wed 23.
	got := cal.SubtractWorkingDays(day(2026, time.December, 28), 1)
	assert.Equal(t, day(2026, time.December, 23), got)
}

func TestSubtractWorkingDays_FromNonWorkingStart(t *testing.T) {
	cal := NewCalendar(nil)

	// Sat 2026-03-21 minus 1 working day is Fri 2026-03-20: the starting
	// date is never counted, whether working or not.
	got := cal.SubtractWorkingDays(day(2026, time.March, 21), 1)
	assert.Equal(t, day(2026, time.March, 20), got)
}

// TestSubtractWorkingDays_Invariants property-tests the backward step
// against random starts, offsets and holiday sets: the result is a working
// day strictly before the start, and walking forward from it crosses
// exactly n working days.
func TestSubtractWorkingDays_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		start := day(2026, time.January, 1).AddDate(0, 0, rng.Intn(365))
		n := rng.Intn(25) + 1 // 1 to 25 working days

		numHolidays := rng.Intn(13)
		holidays := make([]domain.Holiday, numHolidays)
		for i := range holidays {
			// Scatter holidays around the start so some fall inside the window.
			offset := rng.Intn(121) - 90
			holidays[i] = domain.Holiday{Date: start.AddDate(0, 0, offset), Name: "h"}
		}
		cal := NewCalendar(holidays)

		got := cal.SubtractWorkingDays(start, n)

		require.True(t, got.Before(start),
			"trial %d: result %s must be strictly before start %s", trial, got, start)
		assert.True(t, cal.IsWorkingDay(got),
			"trial %d: result %s must be a working day", trial, got)
		assert.Equal(t, n, workingDaysBetween(cal, got, start.AddDate(0, 0, -1)),
			"trial %d: exactly %d working days must lie in [result, start)", trial, n)
	}
}
