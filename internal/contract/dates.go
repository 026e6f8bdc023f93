// Package contract defines the wire types crossing the CLI, board and seed
// boundaries: day-first date strings and the request/response shapes of the
// scheduling use cases. Internals always carry time.Time; conversion to and
// from the wire form happens only at these edges.
package contract

import (
	"fmt"
	"time"
)

// DateLayout is the day-first wire format used everywhere a date crosses
// the boundary: flags, board cells, seed files.
const DateLayout = "02/01/2006"

// ErrInvalidDate reports input that is not a strict DD/MM/YYYY date.
var ErrInvalidDate = fmt.Errorf("invalid date")

// ParseDate parses a strict DD/MM/YYYY date into a UTC midnight time.
// Month-first input, ISO dates and unpadded forms are all rejected.
func ParseDate(s string) (time.Time, error) {
	if len(s) != len(DateLayout) {
		return time.Time{}, fmt.Errorf("%w: %q (want DD/MM/YYYY)", ErrInvalidDate, s)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q (want DD/MM/YYYY)", ErrInvalidDate, s)
	}
	return t, nil
}

// FormatDate renders t in the wire format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
