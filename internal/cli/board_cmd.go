package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/fabline/internal/cli/formatter"
	"github.com/alexanderramin/fabline/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	var static bool

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the interactive production board",
		Long: `Open the production board: one line per active job with its stage and
date chain. Up/down moves, space advances the selected job a stage, s
recomputes its dates from the delivery date, a adds a job, c changes
the columns.

Outside a terminal (or with --static) the board prints once and exits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			interactive := app.IsInteractive != nil && app.IsInteractive()
			if static || !interactive {
				return printBoard(cmd, app)
			}

			program := tea.NewProgram(newBoardModel(app), tea.WithAltScreen())
			_, err := program.Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&static, "static", false, "Print the board once instead of opening the TUI")

	return cmd
}

func printBoard(cmd *cobra.Command, app *App) error {
	ctx := context.Background()
	rows, err := app.Jobs.ListActive(ctx)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No active jobs.")
		return nil
	}
	stages, err := app.Pipeline.ListStages(ctx)
	if err != nil {
		return err
	}
	columns, err := app.Grid.Columns(ctx, service.BoardView)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatBoard(formatter.BoardData{
		Rows:    rows,
		Columns: columns,
		Stages:  formatter.StageIndex(stages),
		Now:     time.Now(),
	}))
	return nil
}
