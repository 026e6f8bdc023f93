package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveProjectID turns user input (short ID, UUID, or UUID prefix) into a
// project UUID. Short IDs match case-insensitively so "veld01" works.
func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("project reference is required")
	}

	projects, err := app.Projects.List(ctx, true)
	if err != nil {
		return "", err
	}

	for _, p := range projects {
		if strings.EqualFold(p.ShortID, input) {
			return p.ID, nil
		}
	}
	for _, p := range projects {
		if p.ID == input {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("project reference %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveClientID turns user input (name, UUID, or UUID prefix) into a
// client UUID.
func resolveClientID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("client reference is required")
	}

	clients, err := app.Clients.List(ctx, true)
	if err != nil {
		return "", err
	}

	for _, c := range clients {
		if strings.EqualFold(c.Name, input) {
			return c.ID, nil
		}
	}
	for _, c := range clients {
		if c.ID == input {
			return c.ID, nil
		}
	}

	var matches []string
	for _, c := range clients {
		if strings.HasPrefix(c.ID, input) {
			matches = append(matches, c.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("client not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("client reference %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveJobID turns user input into a job UUID. Exact UUIDs hit the store
// directly (so archived jobs stay reachable); otherwise the active board
// rows are scanned for a UUID prefix or a unique name match.
func resolveJobID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("job reference is required")
	}

	if j, err := app.Jobs.GetByID(ctx, input); err == nil {
		return j.ID, nil
	}

	rows, err := app.Jobs.ListActive(ctx)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, r := range rows {
		if strings.HasPrefix(r.Job.ID, input) {
			matches = append(matches, r.Job.ID)
		}
	}
	if len(matches) == 0 {
		for _, r := range rows {
			if strings.EqualFold(r.Job.Name, input) {
				matches = append(matches, r.Job.ID)
			}
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("job not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("job reference %q is ambiguous (%d matches)", input, len(matches))
	}
}
