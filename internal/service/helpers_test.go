package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/fabline/internal/domain"
	"github.com/alexanderramin/fabline/internal/repository"
	"github.com/alexanderramin/fabline/internal/testutil"
	"github.com/stretchr/testify/require"
)

func setupRepos(t *testing.T) (
	repository.ClientRepo,
	repository.ProjectRepo,
	repository.JobRepo,
	repository.StageRepo,
	repository.LeadTimeRepo,
	repository.HolidayRepo,
	repository.GridPrefRepo,
) {
	database := testutil.NewTestDB(t)
	return repository.NewSQLiteClientRepo(database),
		repository.NewSQLiteProjectRepo(database),
		repository.NewSQLiteJobRepo(database),
		repository.NewSQLiteStageRepo(database),
		repository.NewSQLiteLeadTimeRepo(database),
		repository.NewSQLiteHolidayRepo(database),
		repository.NewSQLiteGridPrefRepo(database)
}

// seedCanonicalStages installs the standard four-stage pipeline without any
// lead-time rules.
func seedCanonicalStages(t *testing.T, stages repository.StageRepo) map[string]*domain.Stage {
	t.Helper()
	ctx := context.Background()

	byName := make(map[string]*domain.Stage, 4)
	for i, name := range []string{domain.StageNesting, domain.StageMachining, domain.StageAssembly, domain.StageDelivery} {
		var opts []testutil.StageOption
		switch name {
		case domain.StageNesting:
			opts = append(opts, testutil.AsDefault())
		case domain.StageDelivery:
			opts = append(opts, testutil.AsFinal())
		}
		st := testutil.NewTestStage(name, i, opts...)
		require.NoError(t, stages.Create(ctx, st))
		byName[name] = st
	}
	return byName
}

// seedCanonicalPipeline installs the four stages plus the default lead-time
// chain: assembly 3 working days before delivery, machining 2 before
// assembly, nesting 2 before machining.
func seedCanonicalPipeline(t *testing.T, stages repository.StageRepo, rules repository.LeadTimeRepo) map[string]*domain.Stage {
	t.Helper()
	ctx := context.Background()

	byName := seedCanonicalStages(t, stages)
	chain := []struct {
		from, to string
		days     int
	}{
		{domain.StageAssembly, domain.StageDelivery, 3},
		{domain.StageMachining, domain.StageAssembly, 2},
		{domain.StageNesting, domain.StageMachining, 2},
	}
	for _, c := range chain {
		rule := testutil.NewTestRule(byName[c.from].ID, byName[c.to].ID, c.days)
		require.NoError(t, rules.Upsert(ctx, rule))
	}
	return byName
}

// seedJob creates a client, one project under it and one job at the given
// stage, straight through the repositories.
func seedJob(
	t *testing.T,
	clients repository.ClientRepo,
	projects repository.ProjectRepo,
	jobs repository.JobRepo,
	stageID int64,
	opts ...testutil.JobOption,
) *domain.Job {
	t.Helper()
	ctx := context.Background()

	client := testutil.NewTestClient("Fenwick Marine")
	require.NoError(t, clients.Create(ctx, client))
	project := testutil.NewTestProject(client.ID, "Deck Frames")
	require.NoError(t, projects.Create(ctx, project))
	job := testutil.NewTestJob(project.ID, "Frame A1", stageID, opts...)
	require.NoError(t, jobs.Create(ctx, job))
	return job
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
