package domain

import "time"

// Job is one tracked piece of production work. StageID is the job's
// current pipeline stage; the four stage dates are filled in by the
// backward scheduler and are nil while undetermined.
type Job struct {
	ID            string
	ProjectID     string
	Name          string
	DrawingNumber string
	Quantity      int
	StageID       int64

	NestingDate   *time.Time
	MachiningDate *time.Time
	AssemblyDate  *time.Time
	DeliveryDate  *time.Time

	Notes      string
	ArchivedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DateFor returns the job date stored in the given column, or nil.
func (j *Job) DateFor(col DateColumn) *time.Time {
	switch col {
	case ColumnNesting:
		return j.NestingDate
	case ColumnMachining:
		return j.MachiningDate
	case ColumnAssembly:
		return j.AssemblyDate
	case ColumnDelivery:
		return j.DeliveryDate
	}
	return nil
}

// SetDateFor stores a date into the given column. Unknown columns are a
// no-op; callers validate against ValidDateColumns first.
func (j *Job) SetDateFor(col DateColumn, t *time.Time) {
	switch col {
	case ColumnNesting:
		j.NestingDate = t
	case ColumnMachining:
		j.MachiningDate = t
	case ColumnAssembly:
		j.AssemblyDate = t
	case ColumnDelivery:
		j.DeliveryDate = t
	}
}
