package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/fabline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCascadeDelete_ClientToProjects verifies clients -> projects cascade.
func TestCascadeDelete_ClientToProjects(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	clientRepo := NewSQLiteClientRepo(db)
	projRepo := NewSQLiteProjectRepo(db)

	client := testutil.NewTestClient("Cascade Co")
	require.NoError(t, clientRepo.Create(ctx, client))
	proj := testutil.NewTestProject(client.ID, "Doomed Project")
	require.NoError(t, projRepo.Create(ctx, proj))

	require.NoError(t, clientRepo.Delete(ctx, client.ID))

	_, err := projRepo.GetByID(ctx, proj.ID)
	assert.True(t, errors.Is(err, ErrNotFound), "project should be cascade-deleted with its client")
}

// TestCascadeDelete_FullChain verifies clients -> projects -> jobs.
func TestCascadeDelete_FullChain(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	clientRepo := NewSQLiteClientRepo(db)
	projRepo := NewSQLiteProjectRepo(db)
	jobRepo := NewSQLiteJobRepo(db)

	client := testutil.NewTestClient("Chain Co")
	require.NoError(t, clientRepo.Create(ctx, client))
	proj := testutil.NewTestProject(client.ID, "Chain Project")
	require.NoError(t, projRepo.Create(ctx, proj))
	stage := seedStage(t, db, "nesting", 0, testutil.AsDefault())

	j1 := testutil.NewTestJob(proj.ID, "Part One", stage.ID)
	j2 := testutil.NewTestJob(proj.ID, "Part Two", stage.ID)
	require.NoError(t, jobRepo.Create(ctx, j1))
	require.NoError(t, jobRepo.Create(ctx, j2))

	require.NoError(t, clientRepo.Delete(ctx, client.ID))

	_, err := projRepo.GetByID(ctx, proj.ID)
	assert.True(t, errors.Is(err, ErrNotFound), "project should be gone")
	_, err = jobRepo.GetByID(ctx, j1.ID)
	assert.True(t, errors.Is(err, ErrNotFound), "job one should be gone")
	_, err = jobRepo.GetByID(ctx, j2.ID)
	assert.True(t, errors.Is(err, ErrNotFound), "job two should be gone")
}

// TestCascadeDelete_StageToRules verifies stages -> lead_time_rules cascade.
func TestCascadeDelete_StageToRules(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	stageRepo := NewSQLiteStageRepo(db)
	ruleRepo := NewSQLiteLeadTimeRepo(db)

	from := seedStage(t, db, "machining", 1)
	to := seedStage(t, db, "assembly", 2)
	rule := testutil.NewTestRule(from.ID, to.ID, 2)
	require.NoError(t, ruleRepo.Upsert(ctx, rule))

	require.NoError(t, stageRepo.Delete(ctx, from.ID))

	rules, err := ruleRepo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, rules, "rules touching a deleted stage should be cascade-deleted")
}

// TestStageDelete_RestrictedWhileJobsReference verifies jobs.stage_id has no
// cascade: a stage with jobs on it cannot be deleted.
func TestStageDelete_RestrictedWhileJobsReference(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	stageRepo := NewSQLiteStageRepo(db)
	jobRepo := NewSQLiteJobRepo(db)

	projectID := seedProject(t, db)
	stage := seedStage(t, db, "nesting", 0, testutil.AsDefault())
	require.NoError(t, jobRepo.Create(ctx, testutil.NewTestJob(projectID, "Blocker", stage.ID)))

	err := stageRepo.Delete(ctx, stage.ID)
	assert.Error(t, err, "stage delete should fail while jobs reference it")
}

// TestForeignKey_ProjectRequiresClient verifies FK constraint on projects.client_id.
func TestForeignKey_ProjectRequiresClient(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	projRepo := NewSQLiteProjectRepo(db)
	proj := testutil.NewTestProject("nonexistent-client", "Orphan Project")
	err := projRepo.Create(ctx, proj)
	assert.Error(t, err, "creating project with nonexistent client should fail FK constraint")
}

// TestForeignKey_JobRequiresProjectAndStage verifies FK constraints on jobs.
func TestForeignKey_JobRequiresProjectAndStage(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	jobRepo := NewSQLiteJobRepo(db)
	stage := seedStage(t, db, "nesting", 0, testutil.AsDefault())

	orphan := testutil.NewTestJob("nonexistent-project", "Orphan Job", stage.ID)
	assert.Error(t, jobRepo.Create(ctx, orphan), "job with nonexistent project should fail FK constraint")

	projectID := seedProject(t, db)
	phantom := testutil.NewTestJob(projectID, "Phantom Stage Job", 999)
	assert.Error(t, jobRepo.Create(ctx, phantom), "job with nonexistent stage should fail FK constraint")
}
