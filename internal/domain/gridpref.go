package domain

import "time"

// GridPreference stores the saved column layout for one board view.
// Columns are ordered keys from ValidGridColumns.
type GridPreference struct {
	View      string
	Columns   []string
	UpdatedAt time.Time
}
