package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/fabline/internal/cli/formatter"
	"github.com/alexanderramin/fabline/internal/contract"
	"github.com/alexanderramin/fabline/internal/domain"
	"github.com/spf13/cobra"
)

func newHolidayCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holiday",
		Short: "Manage the non-working day calendar",
	}

	cmd.AddCommand(
		newHolidayListCmd(app),
		newHolidayAddCmd(app),
		newHolidayRemoveCmd(app),
	)

	return cmd
}

func newHolidayListCmd(app *App) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a year's holidays",
		RunE: func(cmd *cobra.Command, args []string) error {
			if year == 0 {
				year = time.Now().Year()
			}
			holidays, err := app.Holidays.ListYear(context.Background(), year)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatHolidays(year, holidays))
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Year to list (defaults to the current year)")

	return cmd
}

func newHolidayAddCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add DATE",
		Short: "Record a non-working date (DD/MM/YYYY)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := contract.ParseDate(args[0])
			if err != nil {
				return err
			}
			added, err := app.Holidays.Add(context.Background(), &domain.Holiday{
				Date:     date,
				Name:     name,
				IsPublic: true,
			})
			if err != nil {
				return err
			}
			if !added {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is already a holiday\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added holiday %s (%s)\n", name, args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Holiday name")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newHolidayRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove DATE",
		Short: "Remove a holiday by date (DD/MM/YYYY)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := contract.ParseDate(args[0])
			if err != nil {
				return err
			}
			if err := app.Holidays.Remove(context.Background(), date); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed holiday on %s\n", args[0])
			return nil
		},
	}
}
