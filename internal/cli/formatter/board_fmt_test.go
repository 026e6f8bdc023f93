package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/fabline/internal/domain"
	"github.com/alexanderramin/fabline/internal/repository"
	"github.com/stretchr/testify/assert"
)

func boardFixture() BoardData {
	nesting := mustDay(2026, time.March, 11)
	delivery := mustDay(2026, time.March, 20)

	stages := []*domain.Stage{
		{ID: 1, Name: "nesting", DisplayName: "Nesting", OrderIndex: 0, IsDefault: true,
			TargetColumns: []domain.TargetColumn{{Column: domain.ColumnNesting, Color: "#83a598"}}},
		{ID: 4, Name: "delivery", DisplayName: "Delivery", OrderIndex: 3, IsFinal: true},
	}

	rows := []repository.JobRow{
		{
			Job: domain.Job{
				Name: "Frame A1", DrawingNumber: "VS-104", Quantity: 6, StageID: 1,
				NestingDate: &nesting, DeliveryDate: &delivery,
			},
			ProjectName: "Walkway Refit", ProjectShortID: "VELD01",
			ClientName: "Veldt Steel", StageName: "nesting", StageLabel: "Nesting",
		},
		{
			Job:         domain.Job{Name: "Gate leaf", Quantity: 1, StageID: 4},
			ProjectName: "Walkway Refit", ProjectShortID: "VELD01",
			ClientName:  "Veldt Steel", StageName: "delivery", StageLabel: "Delivery",
		},
	}

	return BoardData{
		Rows:    rows,
		Columns: domain.DefaultGridColumns,
		Stages:  StageIndex(stages),
		Now:     mustDay(2026, time.March, 2),
	}
}

func TestFormatBoard_RendersRowsAndHeaders(t *testing.T) {
	out := stripANSI(FormatBoard(boardFixture()))

	assert.Contains(t, out, "PRODUCTION BOARD")
	for _, h := range []string{"JOB", "PROJECT", "STAGE", "NESTING", "MACHINING", "ASSEMBLY", "DELIVERY"} {
		assert.Contains(t, out, h)
	}
	assert.Contains(t, out, "Frame A1")
	assert.Contains(t, out, "VELD01")
	assert.Contains(t, out, "20/03/2026")
}

func TestBoardTable_HighlightsTargetedDateCell(t *testing.T) {
	out := stripANSI(RenderBoardTable(boardFixture()))

	// The nesting-stage row targets its nesting date.
	assert.Contains(t, out, "▸ 11/03/2026")
	// A targeted column with no date yet asks for one.
	data := boardFixture()
	data.Rows[0].Job.NestingDate = nil
	assert.Contains(t, stripANSI(RenderBoardTable(data)), "needs date")
}

func TestBoardTable_UnsetDatesArePlaceholders(t *testing.T) {
	out := stripANSI(RenderBoardTable(boardFixture()))

	// The delivery-stage job has no dates and no targets: all placeholders.
	assert.Contains(t, out, "Gate leaf")
	assert.Contains(t, out, "--")
}

func TestBoardTable_HonorsColumnLayout(t *testing.T) {
	data := boardFixture()
	data.Columns = []string{domain.GridColJob, domain.GridColClient, string(domain.ColumnDelivery)}

	out := stripANSI(RenderBoardTable(data))

	assert.Contains(t, out, "CLIENT")
	assert.Contains(t, out, "Veldt Steel")
	assert.NotContains(t, out, "MACHINING")
	assert.NotContains(t, out, "VS-104")
}

func TestColumnHeader_CoversAllBoardColumns(t *testing.T) {
	for col := range domain.ValidGridColumns {
		h := ColumnHeader(col)
		assert.NotEmpty(t, h)
		assert.NotContains(t, h, "_", "headers are display names, not keys: %s", h)
	}
}
