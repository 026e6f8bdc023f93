package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/fabline/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatStageList_ShowsRolesAndHighlights(t *testing.T) {
	stages := []*domain.Stage{
		{ID: 1, Name: "nesting", DisplayName: "Nesting", OrderIndex: 0, IsDefault: true,
			TargetColumns: []domain.TargetColumn{{Column: domain.ColumnNesting}}},
		{ID: 2, Name: "powder-coat", OrderIndex: 1},
		{ID: 3, Name: "delivery", OrderIndex: 2, IsFinal: true,
			TargetColumns: []domain.TargetColumn{{Column: domain.ColumnDelivery}}},
	}

	out := stripANSI(FormatStageList(stages))

	assert.Contains(t, out, "* Nesting")
	assert.Contains(t, out, "✔ delivery")
	assert.Contains(t, out, "NESTING")
	assert.Contains(t, out, "default stage for new jobs")
	// A status-only stage has no highlight columns.
	assert.Contains(t, out, "powder-coat")
}

func TestFormatLeadTimes_NamesStagesAndFlagsInactive(t *testing.T) {
	rules := []*domain.LeadTimeRule{
		{ID: 1, FromStageID: 3, ToStageID: 4, Days: 3, Direction: domain.DirectionBefore, IsActive: true},
		{ID: 2, FromStageID: 2, ToStageID: 3, Days: 2, Direction: domain.DirectionBefore, IsActive: false},
		{ID: 3, FromStageID: 1, ToStageID: 2, Days: 2, Direction: domain.DirectionAfter, IsActive: true},
	}
	names := map[int64]string{1: "nesting", 2: "machining", 3: "assembly", 4: "delivery"}

	out := stripANSI(FormatLeadTimes(rules, names, []string{"multiple active rules for assembly -> delivery; only the first configured applies"}))

	assert.Contains(t, out, "assembly → delivery")
	assert.Contains(t, out, "off")
	assert.Contains(t, out, "after (ignored)")
	assert.Contains(t, out, "multiple active rules")
}

func TestFormatHolidays(t *testing.T) {
	holidays := []*domain.Holiday{
		{Date: mustDay(2026, time.December, 25), Name: "Christmas Day"},
	}

	out := stripANSI(FormatHolidays(2026, holidays))
	assert.Contains(t, out, "HOLIDAYS 2026")
	assert.Contains(t, out, "25/12/2026")
	assert.Contains(t, out, "Friday")
	assert.Contains(t, out, "Christmas Day")

	empty := stripANSI(FormatHolidays(2027, nil))
	assert.Contains(t, empty, "No holidays recorded.")
}
