package domain

import "time"

// Holiday is a non-working calendar date. Public holidays are statutory;
// non-public ones are organizational closures (shutdown weeks, stocktake).
// Together with weekends they define the working calendar.
type Holiday struct {
	ID       int64
	Date     time.Time
	Name     string
	IsPublic bool
}
