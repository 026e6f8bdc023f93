package domain

// TargetColumn marks a job date column that a stage visually emphasizes,
// and the color used for the highlight.
type TargetColumn struct {
	Column DateColumn
	Color  string
}

// Stage is one named step in the production pipeline. Stages are
// configuration records: OrderIndex defines the pipeline order, exactly one
// stage is the default (where new jobs start) and exactly one is final.
type Stage struct {
	ID            int64
	Name          string
	DisplayName   string
	OrderIndex    int
	IsDefault     bool
	IsFinal       bool
	TargetColumns []TargetColumn
}

// Label returns the display name, falling back to the stable name.
func (s Stage) Label() string {
	return CoalesceStr(s.DisplayName, s.Name)
}

// DateColumn returns the job date column owned by this stage, if any.
// Only the four canonical stages carry one.
func (s Stage) DateColumn() (DateColumn, bool) {
	col, ok := StageDateColumns[s.Name]
	return col, ok
}
