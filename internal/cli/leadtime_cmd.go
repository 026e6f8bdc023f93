package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/fabline/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newLeadTimeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leadtime",
		Short: "Manage lead-time rules between stages",
	}

	cmd.AddCommand(
		newLeadTimeListCmd(app),
		newLeadTimeSetCmd(app),
		newLeadTimeInitCmd(app),
		newLeadTimeToggleCmd(app, "enable", true),
		newLeadTimeToggleCmd(app, "disable", false),
	)

	return cmd
}

func newLeadTimeListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List lead-time rules and flag ambiguous pairs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			rules, err := app.LeadTimes.List(ctx)
			if err != nil {
				return err
			}
			if len(rules) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No lead-time rules configured. Run 'fabline leadtime init' for the standard chain.")
				return nil
			}

			stages, err := app.Pipeline.ListStages(ctx)
			if err != nil {
				return err
			}
			names := make(map[int64]string, len(stages))
			for _, s := range stages {
				names[s.ID] = s.Name
			}

			warnings, err := app.LeadTimes.Warnings(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatLeadTimes(rules, names, warnings))
			return nil
		},
	}
}

func newLeadTimeSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set FROM TO DAYS",
		Short: "Set the working days between two stages",
		Long: `Set how many working days the FROM stage runs before the TO stage:

  fabline leadtime set assembly delivery 3

Setting an existing pair updates it in place.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			days, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid day count %q", args[2])
			}
			rule, err := app.LeadTimes.Set(context.Background(), args[0], args[1], days)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s runs %d working day(s) before %s\n", args[0], rule.Days, args[1])
			return nil
		},
	}
}

func newLeadTimeInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Install the standard lead-time chain",
		Long: `Install the standard chain for the four canonical stages:
assembly 3 working days before delivery, machining 2 before assembly,
nesting 2 before machining. Pairs that already have a rule are left alone.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.LeadTimes.InitDefaults(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %d rule(s)\n", res.Created)
			if len(res.Skipped) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Kept existing: %s\n", strings.Join(res.Skipped, ", "))
			}
			return nil
		},
	}
}

func newLeadTimeToggleCmd(app *App, use string, active bool) *cobra.Command {
	short := "Disable a rule without deleting it"
	if active {
		short = "Re-enable a disabled rule"
	}
	return &cobra.Command{
		Use:   use + " RULE_ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid rule ID %q", args[0])
			}
			if err := app.LeadTimes.SetActive(context.Background(), id, active); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rule %d %sd\n", id, use)
			return nil
		},
	}
}
