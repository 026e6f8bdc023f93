package domain

// Direction orients a lead-time rule relative to its target stage.
// "before" means the from-stage date precedes the to-stage date by the
// rule's working-day count; "after" rules are stored but never consulted
// by the backward scheduler.
type Direction string

const (
	DirectionBefore Direction = "before"
	DirectionAfter  Direction = "after"
)

type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectOnHold   ProjectStatus = "on_hold"
	ProjectDone     ProjectStatus = "done"
	ProjectArchived ProjectStatus = "archived"
)

// DateColumn identifies one of the four computed-date columns a job carries.
type DateColumn string

const (
	ColumnNesting   DateColumn = "nesting_date"
	ColumnMachining DateColumn = "machining_date"
	ColumnAssembly  DateColumn = "assembly_date"
	ColumnDelivery  DateColumn = "delivery_date"
)

// Canonical stage names. The pipeline is free to carry additional
// status-only stages, but these four are the ones that map onto job date
// columns and participate in backward scheduling.
const (
	StageNesting   = "nesting"
	StageMachining = "machining"
	StageAssembly  = "assembly"
	StageDelivery  = "delivery"
)

// StageDateColumns maps canonical stage names to the job date column each
// stage owns. Stages absent from this map are status-only.
var StageDateColumns = map[string]DateColumn{
	StageNesting:   ColumnNesting,
	StageMachining: ColumnMachining,
	StageAssembly:  ColumnAssembly,
	StageDelivery:  ColumnDelivery,
}

// DateColumns lists the job date columns in pipeline order.
var DateColumns = []DateColumn{ColumnNesting, ColumnMachining, ColumnAssembly, ColumnDelivery}

// ValidDateColumns is the canonical set of accepted date column strings.
var ValidDateColumns = map[string]bool{
	string(ColumnNesting):   true,
	string(ColumnMachining): true,
	string(ColumnAssembly):  true,
	string(ColumnDelivery):  true,
}

// Board grid column keys. The four date columns double as grid columns.
const (
	GridColJob     = "job"
	GridColProject = "project"
	GridColClient  = "client"
	GridColDrawing = "drawing"
	GridColQty     = "qty"
	GridColStage   = "stage"
)

// DefaultGridColumns is the board layout used when no preference is saved.
var DefaultGridColumns = []string{
	GridColJob, GridColProject, GridColStage,
	string(ColumnNesting), string(ColumnMachining), string(ColumnAssembly), string(ColumnDelivery),
}

// ValidGridColumns is the canonical set of accepted board column keys.
var ValidGridColumns = map[string]bool{
	GridColJob:              true,
	GridColProject:          true,
	GridColClient:           true,
	GridColDrawing:          true,
	GridColQty:              true,
	GridColStage:            true,
	string(ColumnNesting):   true,
	string(ColumnMachining): true,
	string(ColumnAssembly):  true,
	string(ColumnDelivery):  true,
}
