package cli

import (
	"github.com/alexanderramin/fabline/internal/db"
	"github.com/alexanderramin/fabline/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Clients   service.ClientService
	Projects  service.ProjectService
	Jobs      service.JobService
	Pipeline  service.PipelineService
	LeadTimes service.LeadTimeService
	Holidays  service.HolidayService
	Schedule  service.ScheduleService
	Status    service.StatusService
	Grid      service.GridService

	// UoW runs seed imports transactionally.
	UoW db.UnitOfWork

	// SeedPath is the default seed file used by "fabline seed" when no
	// file argument is given.
	SeedPath string

	// IsInteractive reports whether stdin is a terminal; the board falls
	// back to a one-shot render when it is not.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "fabline" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "fabline",
		Short: "Production tracking and backward scheduling for the fabrication shop",
	}

	root.AddCommand(
		newClientCmd(app),
		newProjectCmd(app),
		newJobCmd(app),
		newStageCmd(app),
		newLeadTimeCmd(app),
		newHolidayCmd(app),
		newScheduleCmd(app),
		newBoardCmd(app),
		newColumnsCmd(app),
		newSeedCmd(app),
	)

	return root
}
