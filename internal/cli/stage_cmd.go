package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/fabline/internal/cli/formatter"
	"github.com/alexanderramin/fabline/internal/domain"
	"github.com/spf13/cobra"
)

func newStageCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stage",
		Short: "Manage the pipeline stages",
	}

	cmd.AddCommand(
		newStageListCmd(app),
		newStageAddCmd(app),
		newStageSetColumnsCmd(app),
		newStageRemoveCmd(app),
	)

	return cmd
}

func newStageListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the pipeline in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			stages, err := app.Pipeline.ListStages(context.Background())
			if err != nil {
				return err
			}
			if len(stages) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No stages configured. Run 'fabline seed' to install the standard pipeline.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatStageList(stages))
			return nil
		},
	}
}

func newStageAddCmd(app *App) *cobra.Command {
	var name, displayName string
	var order int
	var isDefault, isFinal bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a pipeline stage",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := &domain.Stage{
				Name:        name,
				DisplayName: displayName,
				OrderIndex:  order,
				IsDefault:   isDefault,
				IsFinal:     isFinal,
			}
			if err := app.Pipeline.CreateStage(context.Background(), s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added stage %s at position %d\n", s.Label(), s.OrderIndex)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Stable stage name (e.g. powder-coat)")
	cmd.Flags().StringVar(&displayName, "display", "", "Display name shown on the board")
	cmd.Flags().IntVar(&order, "order", 0, "Position in the pipeline (0-based)")
	cmd.Flags().BoolVar(&isDefault, "default", false, "New jobs start at this stage")
	cmd.Flags().BoolVar(&isFinal, "final", false, "Advancing past this stage wraps to the first")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newStageSetColumnsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-columns STAGE COL[:COLOR]...",
		Short: "Set which date columns a stage highlights on the board",
		Long: `Set the board date columns a stage highlights, optionally with a hex color:

  fabline stage set-columns machining machining_date:#fabd2f

Passing no columns clears the stage's highlights.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			stage, err := app.Pipeline.GetStage(ctx, args[0])
			if err != nil {
				return err
			}

			cols := make([]domain.TargetColumn, 0, len(args)-1)
			for _, spec := range args[1:] {
				col, color, _ := strings.Cut(spec, ":")
				cols = append(cols, domain.TargetColumn{Column: domain.DateColumn(col), Color: color})
			}

			if err := app.Pipeline.SetTargetColumns(ctx, stage.ID, cols); err != nil {
				return err
			}
			if len(cols) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared highlights for %s\n", stage.Label())
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Stage %s now highlights %d column(s)\n", stage.Label(), len(cols))
			}
			return nil
		},
	}

	return cmd
}

func newStageRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove STAGE",
		Short: "Remove an empty pipeline stage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			stage, err := app.Pipeline.GetStage(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Pipeline.DeleteStage(ctx, stage.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed stage %s\n", stage.Label())
			return nil
		},
	}
}
