package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/fabline/internal/cli/formatter"
	"github.com/alexanderramin/fabline/internal/domain"
	"github.com/alexanderramin/fabline/internal/service"
	"github.com/spf13/cobra"
)

func newColumnsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "columns",
		Short: "Configure the board column layout",
	}

	cmd.AddCommand(
		newColumnsShowCmd(app),
		newColumnsSetCmd(app),
		newColumnsResetCmd(app),
	)

	return cmd
}

func newColumnsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current board columns",
		RunE: func(cmd *cobra.Command, args []string) error {
			cols, err := app.Grid.Columns(context.Background(), service.BoardView)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, col := range cols {
				fmt.Fprintf(out, "%s  %s\n", formatter.Bold(formatter.ColumnHeader(col)), formatter.Dim(col))
			}
			return nil
		},
	}
}

func newColumnsSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set COL...",
		Short: "Set the board columns, in order",
		Long: `Set the board layout. Available columns:

  job  project  client  drawing  qty  stage
  nesting_date  machining_date  assembly_date  delivery_date

Example: fabline columns set job stage machining_date delivery_date`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Grid.SaveColumns(context.Background(), service.BoardView, args); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Board shows: %s\n", strings.Join(args, ", "))
			return nil
		},
	}
}

func newColumnsResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default board layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Grid.SaveColumns(context.Background(), service.BoardView, domain.DefaultGridColumns); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Board layout reset.")
			return nil
		},
	}
}
