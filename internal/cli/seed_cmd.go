package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/fabline/internal/cli/formatter"
	"github.com/alexanderramin/fabline/internal/seed"
	"github.com/spf13/cobra"
)

func newSeedCmd(app *App) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "seed [FILE]",
		Short: "Apply a pipeline seed file (stages, lead times, holidays)",
		Long: `Load a YAML seed file and apply it to the database. Stages are matched
by name and lead-time rules by stage pair, so applying the same file twice
converges instead of duplicating. With no FILE the bundled standard
pipeline is applied.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.SeedPath
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("no seed file given and no default configured")
			}

			f, err := seed.Load(path)
			if err != nil {
				return err
			}
			if errs := seed.Validate(f); len(errs) > 0 {
				out := cmd.OutOrStdout()
				for _, e := range errs {
					fmt.Fprintf(out, "%s\n", formatter.StyleRed.Render("✗ "+e.Error()))
				}
				return fmt.Errorf("seed file %s has %d problem(s)", path, len(errs))
			}
			if check {
				fmt.Fprintf(cmd.OutOrStdout(), "Seed file %s is valid: %d stage(s), %d rule(s), %d holiday(s)\n",
					path, len(f.Stages), len(f.Rules), len(f.Holidays))
				return nil
			}

			res, err := seed.Apply(context.Background(), app.UoW, f)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Stages:    %d created, %d updated\n", res.StagesCreated, res.StagesUpdated)
			fmt.Fprintf(out, "Rules:     %d created, %d updated\n", res.RulesCreated, res.RulesUpdated)
			fmt.Fprintf(out, "Holidays:  %d added, %d already present\n", res.HolidaysAdded, res.HolidaysSkipped)
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Validate the file without applying it")

	return cmd
}
