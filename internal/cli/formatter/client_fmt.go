package formatter

import (
	"github.com/alexanderramin/fabline/internal/domain"
)

// FormatClientList renders the client book.
func FormatClientList(clients []*domain.Client) string {
	headers := []string{"ID", "CLIENT", "CONTACT", "EMAIL", "STATUS"}
	rows := make([][]string, 0, len(clients))

	for _, c := range clients {
		contact := c.ContactName
		if contact == "" {
			contact = "--"
		}
		email := c.Email
		if email == "" {
			email = "--"
		}
		rows = append(rows, []string{
			TruncID(c.ID),
			Bold(c.Name),
			StyleFg.Render(contact),
			Dim(email),
			ArchivePill(c.ArchivedAt),
		})
	}

	return RenderBox("Clients", RenderTable(headers, rows))
}
