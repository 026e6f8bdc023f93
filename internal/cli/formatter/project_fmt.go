package formatter

import (
	"github.com/alexanderramin/fabline/internal/domain"
)

// FormatProjectList renders projects with their owning client names.
func FormatProjectList(projects []*domain.Project, clientNames map[string]string) string {
	headers := []string{"ID", "PROJECT", "CLIENT", "STATUS"}
	rows := make([][]string, 0, len(projects))

	for _, p := range projects {
		client := clientNames[p.ClientID]
		if client == "" {
			client = "--"
		}
		rows = append(rows, []string{
			StylePurple.Render(p.ShortID),
			Bold(p.Name),
			StyleFg.Render(client),
			StatusPill(p.Status),
		})
	}

	return RenderBox("Projects", RenderTable(headers, rows))
}
