package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/fabline/internal/contract"
	"github.com/alexanderramin/fabline/internal/domain"
)

// FormatStageList renders the pipeline in order, marking the default and
// final stages and listing each stage's board highlight columns.
func FormatStageList(stages []*domain.Stage) string {
	headers := []string{"#", "STAGE", "NAME", "HIGHLIGHTS"}
	rows := make([][]string, 0, len(stages))

	for _, s := range stages {
		rows = append(rows, []string{
			Dim(fmt.Sprintf("%d", s.OrderIndex)),
			StageBadge(s),
			Dim(s.Name),
			targetColumnList(s.TargetColumns),
		})
	}

	legend := Dim("* default stage for new jobs   ✔ final stage")
	return RenderBox("Pipeline", RenderTable(headers, rows)+"\n"+legend)
}

func targetColumnList(cols []domain.TargetColumn) string {
	if len(cols) == 0 {
		return StyleDim.Render("--")
	}
	parts := make([]string, 0, len(cols))
	for _, tc := range cols {
		parts = append(parts, ColumnHeader(string(tc.Column)))
	}
	return StyleYellow.Render(strings.Join(parts, ", "))
}

// FormatLeadTimes renders the lead-time rules with resolved stage names,
// followed by any ambiguity warnings.
func FormatLeadTimes(rules []*domain.LeadTimeRule, stageNames map[int64]string, warnings []string) string {
	headers := []string{"RULE", "DAYS", "DIRECTION", "STATUS"}
	rows := make([][]string, 0, len(rules))

	name := func(id int64) string {
		if n, ok := stageNames[id]; ok {
			return n
		}
		return fmt.Sprintf("stage %d", id)
	}

	for _, r := range rules {
		status := StyleGreen.Render("active")
		if !r.IsActive {
			status = StyleDim.Render("off")
		}
		direction := string(r.Direction)
		if r.Direction != domain.DirectionBefore {
			direction = StyleDim.Render(direction + " (ignored)")
		}
		rows = append(rows, []string{
			StyleFg.Render(fmt.Sprintf("%s → %s", name(r.FromStageID), name(r.ToStageID))),
			StyleBold.Render(fmt.Sprintf("%d", r.Days)),
			StyleFg.Render(direction),
			status,
		})
	}

	out := RenderTable(headers, rows)
	if len(warnings) > 0 {
		var b strings.Builder
		b.WriteString(out + "\n")
		for _, w := range warnings {
			b.WriteString(Warn(w) + "\n")
		}
		out = strings.TrimRight(b.String(), "\n")
	}
	return RenderBox("Lead Times", out)
}

// FormatHolidays renders a year's holiday calendar.
func FormatHolidays(year int, holidays []*domain.Holiday) string {
	if len(holidays) == 0 {
		return RenderBox(fmt.Sprintf("Holidays %d", year), Dim("No holidays recorded."))
	}

	headers := []string{"DATE", "DAY", "NAME"}
	rows := make([][]string, 0, len(holidays))
	for _, h := range holidays {
		rows = append(rows, []string{
			StyleFg.Render(contract.FormatDate(h.Date)),
			Dim(h.Date.Format("Monday")),
			StyleFg.Render(h.Name),
		})
	}

	return RenderBox(fmt.Sprintf("Holidays %d", year), RenderTable(headers, rows))
}
