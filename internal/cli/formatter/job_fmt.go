package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/fabline/internal/contract"
	"github.com/alexanderramin/fabline/internal/domain"
	"github.com/alexanderramin/fabline/internal/repository"
)

// FormatJobList renders a project's jobs with their production dates.
func FormatJobList(jobs []*domain.Job, stageLabels map[int64]string, now time.Time) string {
	headers := []string{"ID", "JOB", "DRG NO", "QTY", "STAGE", "DELIVERY"}
	rows := make([][]string, 0, len(jobs))

	for _, j := range jobs {
		label := stageLabels[j.StageID]
		if label == "" {
			label = fmt.Sprintf("stage %d", j.StageID)
		}
		drg := j.DrawingNumber
		if drg == "" {
			drg = "--"
		}
		rows = append(rows, []string{
			TruncID(j.ID),
			Bold(j.Name),
			StyleFg.Render(drg),
			Qty(j.Quantity),
			StyleBlue.Render(label),
			DueCell(j.DeliveryDate, now),
		})
	}

	return RenderBox("Jobs", RenderTable(headers, rows))
}

// FormatJobDetail renders a single job card with its full date chain.
func FormatJobDetail(r repository.JobRow, now time.Time) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(r.Job.Name) + "\n")
	b.WriteString(StylePurple.Render(r.ProjectShortID) + Dim(" · ") + StyleFg.Render(r.ClientName) + "\n\n")

	field := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render(label), value))
	}

	field("STAGE   ", StyleBlue.Render(r.StageLabel))
	if r.Job.DrawingNumber != "" {
		field("DRAWING ", StyleFg.Render(r.Job.DrawingNumber))
	}
	field("QTY     ", Qty(r.Job.Quantity))
	b.WriteString("\n")

	field("NESTING  ", WireDate(r.Job.NestingDate))
	field("MACHINING", WireDate(r.Job.MachiningDate))
	field("ASSEMBLY ", WireDate(r.Job.AssemblyDate))
	field("DELIVERY ", DueCell(r.Job.DeliveryDate, now))

	if r.Job.Notes != "" {
		b.WriteString("\n" + Dim(r.Job.Notes) + "\n")
	}
	field("UPDATED  ", Dim(HumanTimestamp(r.Job.UpdatedAt, now)))

	return RenderBox("", b.String())
}

// FormatSchedule renders a computed schedule: the date chain from nesting
// to delivery, followed by any warnings the computation raised.
func FormatSchedule(resp *contract.ScheduleResponse) string {
	var b strings.Builder

	row := func(label string, date *string) {
		value := StyleDim.Render("--  (no lead-time path)")
		if date != nil {
			value = StyleFg.Render(*date)
		}
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render(label), value))
	}

	row("NESTING  ", resp.NestingDate)
	row("MACHINING", resp.MachiningDate)
	row("ASSEMBLY ", resp.AssemblyDate)
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("DELIVERY "), StyleGreen.Render(resp.DeliveryDate)))

	if len(resp.Warnings) > 0 {
		b.WriteString("\n")
		for _, w := range resp.Warnings {
			b.WriteString(Warn(w) + "\n")
		}
	}

	return RenderBox("Schedule", strings.TrimRight(b.String(), "\n"))
}
