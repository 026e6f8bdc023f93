package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/fabline/internal/contract"
	"github.com/alexanderramin/fabline/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		rendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(rendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// WireDate renders an optional date in the DD/MM/YYYY wire format,
// or a dim placeholder when unset.
func WireDate(t *time.Time) string {
	if t == nil {
		return StyleDim.Render("--")
	}
	return StyleFg.Render(contract.FormatDate(*t))
}

// DueCell renders a date with urgency coloring relative to now: red when
// already past, yellow within the next three days, plain otherwise.
func DueCell(t *time.Time, now time.Time) string {
	if t == nil {
		return StyleDim.Render("--")
	}
	text := contract.FormatDate(*t)
	today := now.Truncate(24 * time.Hour)
	switch {
	case t.Before(today):
		return StyleRed.Render(text)
	case t.Before(today.AddDate(0, 0, 4)):
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// HumanDate returns a compact absolute date for metadata lines.
func HumanDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// HumanTimestamp returns a relative timestamp for "last updated" style lines.
func HumanTimestamp(t time.Time, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < 0:
		return HumanDate(t)
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return HumanDate(t)
	}
}

// StatusPill returns a colored indicator for a project status.
func StatusPill(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectActive:
		return StyleGreen.Render("● Active")
	case domain.ProjectOnHold:
		return StyleYellow.Render("○ On Hold")
	case domain.ProjectDone:
		return StyleDim.Render("✔ Done")
	case domain.ProjectArchived:
		return StyleDim.Render("✖ Archived")
	default:
		return StyleDim.Render(string(status))
	}
}

// ArchivePill marks archived records in list views.
func ArchivePill(archivedAt *time.Time) string {
	if archivedAt == nil {
		return StyleGreen.Render("● Active")
	}
	return StyleDim.Render("✖ Archived")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Qty renders a quantity, dimming the common single-piece case.
func Qty(n int) string {
	if n <= 1 {
		return StyleDim.Render("1")
	}
	return StyleFg.Render(fmt.Sprintf("%d", n))
}
