package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alexanderramin/fabline/internal/cli"
	"github.com/alexanderramin/fabline/internal/db"
	"github.com/alexanderramin/fabline/internal/repository"
	"github.com/alexanderramin/fabline/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.fabline/fabline.db
	dbPath := os.Getenv("FABLINE_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".fabline", "fabline.db")
	}

	// Determine default seed file: env var, ./seed in the working
	// directory (development), or ~/.fabline/seed.yaml.
	seedPath := os.Getenv("FABLINE_SEED")
	if seedPath == "" {
		if _, err := os.Stat("./seed/fabline.yaml"); err == nil {
			seedPath = "./seed/fabline.yaml"
		} else if home, err := os.UserHomeDir(); err == nil {
			candidate := filepath.Join(home, ".fabline", "seed.yaml")
			if _, err := os.Stat(candidate); err == nil {
				seedPath = candidate
			}
		}
	}

	// Use-case logging is off unless FABLINE_LOG names a level.
	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if level, ok := logLevel(os.Getenv("FABLINE_LOG")); ok {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		observer = service.NewSlogUseCaseObserver(logger)
	}

	// Open database
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	clientRepo := repository.NewSQLiteClientRepo(database)
	projectRepo := repository.NewSQLiteProjectRepo(database)
	jobRepo := repository.NewSQLiteJobRepo(database)
	stageRepo := repository.NewSQLiteStageRepo(database)
	ruleRepo := repository.NewSQLiteLeadTimeRepo(database)
	holidayRepo := repository.NewSQLiteHolidayRepo(database)
	prefRepo := repository.NewSQLiteGridPrefRepo(database)

	app := &cli.App{
		Clients:   service.NewClientService(clientRepo),
		Projects:  service.NewProjectService(projectRepo),
		Jobs:      service.NewJobService(jobRepo, stageRepo),
		Pipeline:  service.NewPipelineService(stageRepo),
		LeadTimes: service.NewLeadTimeService(ruleRepo, stageRepo, observer),
		Holidays:  service.NewHolidayService(holidayRepo, observer),
		Schedule:  service.NewScheduleService(jobRepo, stageRepo, ruleRepo, holidayRepo, observer),
		Status:    service.NewStatusService(jobRepo, stageRepo, observer),
		Grid:      service.NewGridService(prefRepo),

		UoW:      db.NewSQLiteUnitOfWork(database),
		SeedPath: seedPath,
	}

	// Detect interactive terminal for the board TUI.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

func logLevel(name string) (slog.Level, bool) {
	switch name {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return 0, false
	}
}
