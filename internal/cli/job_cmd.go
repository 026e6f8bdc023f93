package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/fabline/internal/cli/formatter"
	"github.com/alexanderramin/fabline/internal/domain"
	"github.com/alexanderramin/fabline/internal/repository"
	"github.com/spf13/cobra"
)

func newJobCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job",
		Short: "Manage jobs",
	}

	cmd.AddCommand(
		newJobAddCmd(app),
		newJobListCmd(app),
		newJobShowCmd(app),
		newJobSetDeliveryCmd(app),
		newJobAdvanceCmd(app),
		newJobScheduleCmd(app),
		newJobArchiveCmd(app),
		newJobRemoveCmd(app),
	)

	return cmd
}

// stageLabels maps stage IDs to display labels for list rendering.
func stageLabels(ctx context.Context, app *App) (map[int64]string, error) {
	stages, err := app.Pipeline.ListStages(ctx)
	if err != nil {
		return nil, err
	}
	labels := make(map[int64]string, len(stages))
	for _, s := range stages {
		labels[s.ID] = s.Label()
	}
	return labels, nil
}

func newJobAddCmd(app *App) *cobra.Command {
	var name, projectRef, drawing, delivery, stageName, notes string
	var qty int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a job on a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, projectRef)
			if err != nil {
				return err
			}

			j := &domain.Job{
				ProjectID:     projectID,
				Name:          name,
				DrawingNumber: drawing,
				Quantity:      qty,
				Notes:         notes,
			}
			if stageName != "" {
				stage, err := app.Pipeline.GetStage(ctx, stageName)
				if err != nil {
					return err
				}
				j.StageID = stage.ID
			}

			if err := app.Jobs.Create(ctx, j, delivery); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created job %s on %s\n", j.Name, projectRef)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Job name")
	cmd.Flags().StringVar(&projectRef, "project", "", "Project (short ID or UUID)")
	cmd.Flags().StringVar(&drawing, "drawing", "", "Drawing number")
	cmd.Flags().IntVar(&qty, "qty", 1, "Quantity")
	cmd.Flags().StringVar(&delivery, "delivery", "", "Delivery date (DD/MM/YYYY)")
	cmd.Flags().StringVar(&stageName, "stage", "", "Starting stage (defaults to the pipeline's default stage)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newJobListCmd(app *App) *cobra.Command {
	var projectRef string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, projectRef)
			if err != nil {
				return err
			}
			jobs, err := app.Jobs.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}
			if len(jobs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No jobs found.")
				return nil
			}
			labels, err := stageLabels(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatJobList(jobs, labels, time.Now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project (short ID or UUID)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newJobShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show JOB",
		Short: "Show a job's full date chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			row, err := loadJobRow(ctx, app, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatJobDetail(row, time.Now()))
			return nil
		},
	}
}

// loadJobRow assembles the joined view for a single job, archived or not.
func loadJobRow(ctx context.Context, app *App, ref string) (repository.JobRow, error) {
	id, err := resolveJobID(ctx, app, ref)
	if err != nil {
		return repository.JobRow{}, err
	}
	j, err := app.Jobs.GetByID(ctx, id)
	if err != nil {
		return repository.JobRow{}, err
	}

	row := repository.JobRow{Job: *j}
	if p, err := app.Projects.GetByID(ctx, j.ProjectID); err == nil {
		row.ProjectName = p.Name
		row.ProjectShortID = p.ShortID
		if c, err := app.Clients.GetByID(ctx, p.ClientID); err == nil {
			row.ClientName = c.Name
		}
	}
	labels, err := stageLabels(ctx, app)
	if err != nil {
		return repository.JobRow{}, err
	}
	row.StageLabel = labels[j.StageID]
	if row.StageLabel == "" {
		row.StageLabel = fmt.Sprintf("stage %d", j.StageID)
	}
	return row, nil
}

func newJobSetDeliveryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-delivery JOB DATE",
		Short: "Set a job's delivery date (DD/MM/YYYY)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveJobID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Jobs.SetDeliveryDate(ctx, id, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Delivery set to %s. Run 'fabline job schedule %s' to recompute the chain.\n", args[1], args[0])
			return nil
		},
	}
}

func newJobAdvanceCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "advance JOB",
		Short: "Move a job to the next pipeline stage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveJobID(ctx, app, args[0])
			if err != nil {
				return err
			}
			resp, err := app.Status.AdvanceJob(ctx, id)
			if err != nil {
				return err
			}
			if resp.Wrapped {
				fmt.Fprintf(cmd.OutOrStdout(), "Job wrapped past the final stage, back to %s\n", resp.NextLabel)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Job moved to %s\n", resp.NextLabel)
			}
			return nil
		},
	}
}

func newJobScheduleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule JOB",
		Short: "Compute and store the job's production dates from its delivery date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveJobID(ctx, app, args[0])
			if err != nil {
				return err
			}
			resp, err := app.Schedule.ScheduleJob(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatSchedule(resp))
			return nil
		},
	}
}

func newJobArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive JOB",
		Short: "Archive a job and take it off the board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveJobID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Jobs.Archive(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archived job %s\n", args[0])
			return nil
		},
	}
}

func newJobRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove JOB",
		Short: "Delete a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveJobID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Jobs.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed job %s\n", args[0])
			return nil
		},
	}
}
