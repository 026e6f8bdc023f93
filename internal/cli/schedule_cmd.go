package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/fabline/internal/cli/formatter"
	"github.com/alexanderramin/fabline/internal/contract"
	"github.com/spf13/cobra"
)

// newScheduleCmd previews the backward computation for an arbitrary
// delivery date without touching any job. Use "job schedule" to compute
// and store dates for a real job.
func newScheduleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule DATE",
		Short: "Preview production dates for a delivery date (DD/MM/YYYY)",
		Long: `Work backward from a delivery date through the lead-time rules and
show when each production stage would need to happen. Nothing is stored;
this is a what-if for quoting and capacity checks.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Schedule.ComputeDates(context.Background(), contract.NewScheduleRequest(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatSchedule(resp))
			return nil
		},
	}
}
