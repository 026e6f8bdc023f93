package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/fabline/internal/domain"
	"github.com/alexanderramin/fabline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedClient inserts a client to satisfy the projects.client_id foreign key.
func seedClient(t *testing.T, db *sql.DB) *domain.Client {
	t.Helper()
	client := testutil.NewTestClient("Fixture Client")
	require.NoError(t, NewSQLiteClientRepo(db).Create(context.Background(), client))
	return client
}

func TestProjectRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	client := seedClient(t, db)
	proj := testutil.NewTestProject(client.ID, "Warehouse Extension")
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)
	assert.Equal(t, client.ID, fetched.ClientID)
	assert.Equal(t, "Warehouse Extension", fetched.Name)
	assert.Equal(t, domain.ProjectActive, fetched.Status)
}

func TestProjectRepo_GetByShortID_CaseInsensitive(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	client := seedClient(t, db)
	proj := testutil.NewTestProject(client.ID, "Mezzanine", testutil.WithShortID("MEZ01"))
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByShortID(ctx, "mez01")
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)
	assert.Equal(t, "MEZ01", fetched.ShortID)
}

func TestProjectRepo_GetByShortID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	_, err := repo.GetByShortID(ctx, "NOPE01")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestProjectRepo_DuplicateShortID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	client := seedClient(t, db)
	p1 := testutil.NewTestProject(client.ID, "First", testutil.WithShortID("DUP01"))
	p2 := testutil.NewTestProject(client.ID, "Second", testutil.WithShortID("DUP01"))
	require.NoError(t, repo.Create(ctx, p1))

	err := repo.Create(ctx, p2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicate))
	assert.Contains(t, err.Error(), "DUP01")
}

func TestProjectRepo_EmptyShortIDsDoNotCollide(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	// The unique index only covers non-empty short IDs.
	client := seedClient(t, db)
	p1 := testutil.NewTestProject(client.ID, "First", testutil.WithShortID(""))
	p2 := testutil.NewTestProject(client.ID, "Second", testutil.WithShortID(""))
	require.NoError(t, repo.Create(ctx, p1))
	require.NoError(t, repo.Create(ctx, p2))
}

func TestProjectRepo_ListByClient(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	clientA := seedClient(t, db)
	clientB := seedClient(t, db)
	require.NoError(t, repo.Create(ctx, testutil.NewTestProject(clientA.ID, "A One")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestProject(clientA.ID, "A Two")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestProject(clientB.ID, "B One")))

	list, err := repo.ListByClient(ctx, clientA.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	for _, p := range list {
		assert.Equal(t, clientA.ID, p.ClientID)
	}
}

func TestProjectRepo_List_ExcludesArchived(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	client := seedClient(t, db)
	p1 := testutil.NewTestProject(client.ID, "Live")
	p2 := testutil.NewTestProject(client.ID, "Shelved")
	require.NoError(t, repo.Create(ctx, p1))
	require.NoError(t, repo.Create(ctx, p2))
	require.NoError(t, repo.Archive(ctx, p2.ID))

	list, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, p1.ID, list[0].ID)

	listAll, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, listAll, 2)
}

func TestProjectRepo_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	client := seedClient(t, db)
	proj := testutil.NewTestProject(client.ID, "Before")
	require.NoError(t, repo.Create(ctx, proj))

	proj.Name = "After"
	proj.Status = domain.ProjectOnHold
	proj.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", fetched.Name)
	assert.Equal(t, domain.ProjectOnHold, fetched.Status)
}

func TestProjectRepo_ArchiveAndUnarchive(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	client := seedClient(t, db)
	proj := testutil.NewTestProject(client.ID, "Paused Work")
	require.NoError(t, repo.Create(ctx, proj))

	require.NoError(t, repo.Archive(ctx, proj.ID))
	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectArchived, fetched.Status)
	assert.NotNil(t, fetched.ArchivedAt)

	require.NoError(t, repo.Unarchive(ctx, proj.ID))
	fetched, err = repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectActive, fetched.Status)
	assert.Nil(t, fetched.ArchivedAt)
}

func TestProjectRepo_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	client := seedClient(t, db)
	proj := testutil.NewTestProject(client.ID, "Short Lived")
	require.NoError(t, repo.Create(ctx, proj))

	require.NoError(t, repo.Delete(ctx, proj.ID))
	_, err := repo.GetByID(ctx, proj.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}
