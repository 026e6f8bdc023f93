package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/fabline/internal/contract"
	"github.com/alexanderramin/fabline/internal/domain"
	"github.com/charmbracelet/huh"
)

// jobFormValues receives the field values of the add-job form.
type jobFormValues struct {
	ProjectID string
	Name      string
	Drawing   string
	Qty       string
	Delivery  string
}

// newJobForm builds the themed add-job form. Projects must be non-empty;
// the first one is preselected.
func newJobForm(projects []*domain.Project, vals *jobFormValues) *huh.Form {
	options := make([]huh.Option[string], 0, len(projects))
	for _, p := range projects {
		options = append(options, huh.NewOption(p.ShortID+"  "+p.Name, p.ID))
	}
	vals.ProjectID = projects[0].ID

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Project").
				Options(options...).
				Value(&vals.ProjectID),
			huh.NewInput().
				Title("Job name").
				Placeholder("Handrail run").
				Value(&vals.Name).
				Validate(validateRequired("job name")),
			huh.NewInput().
				Title("Drawing number").
				Placeholder("VS-104").
				Value(&vals.Drawing),
			huh.NewInput().
				Title("Quantity").
				Placeholder("1").
				Value(&vals.Qty).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Delivery date (DD/MM/YYYY, blank for none)").
				Placeholder("20/03/2026").
				Value(&vals.Delivery).
				Validate(validateOptionalWireDate),
		),
	).WithTheme(fablineHuhTheme()).WithShowHelp(true)
}

// validateRequired rejects an empty value.
func validateRequired(what string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", what)
		}
		return nil
	}
}

// validatePositiveInt accepts empty or a positive integer.
func validatePositiveInt(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

// validateOptionalWireDate accepts empty or a day-first date string.
func validateOptionalWireDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := contract.ParseDate(s); err != nil {
		return fmt.Errorf("use DD/MM/YYYY format")
	}
	return nil
}

// parsePositiveInt converts s after form validation has passed, falling back
// when the field was left empty.
func parsePositiveInt(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
