package formatter

import (
	"strings"
	"time"

	"github.com/alexanderramin/fabline/internal/contract"
	"github.com/alexanderramin/fabline/internal/domain"
	"github.com/alexanderramin/fabline/internal/repository"
	"github.com/charmbracelet/lipgloss"
)

// BoardData carries everything the board table needs: the joined job rows,
// the column layout to show, and the stages keyed by ID so date cells can
// be highlighted where the row's current stage targets them.
type BoardData struct {
	Rows    []repository.JobRow
	Columns []string
	Stages  map[int64]*domain.Stage
	Now     time.Time
}

// FormatBoard renders the production board as a boxed table.
func FormatBoard(data BoardData) string {
	table := RenderBoardTable(data)
	return RenderBox("Production Board", table)
}

// RenderBoardTable renders just the board table, without the box. The TUI
// uses this directly so it can draw its own chrome around it.
func RenderBoardTable(data BoardData) string {
	headers := make([]string, len(data.Columns))
	for i, col := range data.Columns {
		headers[i] = ColumnHeader(col)
	}

	rows := make([][]string, 0, len(data.Rows))
	for _, r := range data.Rows {
		cells := make([]string, len(data.Columns))
		for i, col := range data.Columns {
			cells[i] = boardCell(r, col, data)
		}
		rows = append(rows, cells)
	}

	return RenderTable(headers, rows)
}

// ColumnHeader returns the table header for a board column key.
func ColumnHeader(col string) string {
	switch col {
	case domain.GridColJob:
		return "JOB"
	case domain.GridColProject:
		return "PROJECT"
	case domain.GridColClient:
		return "CLIENT"
	case domain.GridColDrawing:
		return "DRG NO"
	case domain.GridColQty:
		return "QTY"
	case domain.GridColStage:
		return "STAGE"
	case string(domain.ColumnNesting):
		return "NESTING"
	case string(domain.ColumnMachining):
		return "MACHINING"
	case string(domain.ColumnAssembly):
		return "ASSEMBLY"
	case string(domain.ColumnDelivery):
		return "DELIVERY"
	default:
		return strings.ToUpper(col)
	}
}

func boardCell(r repository.JobRow, col string, data BoardData) string {
	switch col {
	case domain.GridColJob:
		return Bold(r.Job.Name)
	case domain.GridColProject:
		if r.ProjectShortID != "" {
			return StylePurple.Render(r.ProjectShortID)
		}
		return StyleFg.Render(r.ProjectName)
	case domain.GridColClient:
		return StyleFg.Render(r.ClientName)
	case domain.GridColDrawing:
		if r.Job.DrawingNumber == "" {
			return StyleDim.Render("--")
		}
		return StyleFg.Render(r.Job.DrawingNumber)
	case domain.GridColQty:
		return Qty(r.Job.Quantity)
	case domain.GridColStage:
		return StagePill(r.StageLabel, isFinalStage(r.Job.StageID, data.Stages))
	}

	dc := domain.DateColumn(col)
	if !domain.ValidDateColumns[col] {
		return StyleDim.Render("--")
	}
	return dateCell(r, dc, data)
}

// dateCell renders one of the four date columns. When the row's current
// stage targets the column, the date is emphasized with the stage's
// configured highlight color so the operator sees which date the job is
// being worked toward.
func dateCell(r repository.JobRow, col domain.DateColumn, data BoardData) string {
	t := r.Job.DateFor(col)
	if color, ok := targetColor(r.Job.StageID, col, data.Stages); ok {
		if t == nil {
			return lipgloss.NewStyle().Foreground(color).Render("·  needs date")
		}
		return lipgloss.NewStyle().Foreground(color).Bold(true).Render("▸ " + contract.FormatDate(*t))
	}
	return DueCell(t, data.Now)
}

func targetColor(stageID int64, col domain.DateColumn, stages map[int64]*domain.Stage) (lipgloss.Color, bool) {
	s, ok := stages[stageID]
	if !ok {
		return "", false
	}
	for _, tc := range s.TargetColumns {
		if tc.Column == col {
			if tc.Color != "" {
				return lipgloss.Color(tc.Color), true
			}
			return ColorHeader, true
		}
	}
	return "", false
}

func isFinalStage(stageID int64, stages map[int64]*domain.Stage) bool {
	s, ok := stages[stageID]
	return ok && s.IsFinal
}

// StageIndex builds the ID-keyed stage map BoardData wants.
func StageIndex(stages []*domain.Stage) map[int64]*domain.Stage {
	idx := make(map[int64]*domain.Stage, len(stages))
	for _, s := range stages {
		idx[s.ID] = s
	}
	return idx
}
