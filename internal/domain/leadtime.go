package domain

// LeadTimeRule declares how many working days separate two pipeline
// stages. The backward scheduler only consults active rules with
// Direction = before. Rules are kept in insertion order; when duplicates
// exist for a pair the first active one wins.
type LeadTimeRule struct {
	ID          int64
	FromStageID int64
	ToStageID   int64
	Days        int
	Direction   Direction
	IsActive    bool
}
