package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/fabline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteClientRepo(db)
	ctx := context.Background()

	client := testutil.NewTestClient("Acme Fabrication", testutil.WithContact("Jo Fletcher", "jo@acme.example"))
	require.NoError(t, repo.Create(ctx, client))

	fetched, err := repo.GetByID(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, client.ID, fetched.ID)
	assert.Equal(t, "Acme Fabrication", fetched.Name)
	assert.Equal(t, "Jo Fletcher", fetched.ContactName)
	assert.Equal(t, "jo@acme.example", fetched.Email)
	assert.Nil(t, fetched.ArchivedAt)
}

func TestClientRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteClientRepo(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "nonexistent")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestClientRepo_List_SortedByName(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteClientRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestClient("Zeta Steel")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestClient("Apex Joinery")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestClient("Midland Metals")))

	list, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Apex Joinery", list[0].Name)
	assert.Equal(t, "Midland Metals", list[1].Name)
	assert.Equal(t, "Zeta Steel", list[2].Name)
}

func TestClientRepo_List_ExcludesArchived(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteClientRepo(db)
	ctx := context.Background()

	active := testutil.NewTestClient("Active Co")
	archived := testutil.NewTestClient("Gone Co")
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, archived))
	require.NoError(t, repo.Archive(ctx, archived.ID))

	list, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, active.ID, list[0].ID)

	listAll, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, listAll, 2)
}

func TestClientRepo_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteClientRepo(db)
	ctx := context.Background()

	client := testutil.NewTestClient("Old Name")
	require.NoError(t, repo.Create(ctx, client))

	client.Name = "New Name"
	client.Phone = "0121 496 0000"
	client.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, client))

	fetched, err := repo.GetByID(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", fetched.Name)
	assert.Equal(t, "0121 496 0000", fetched.Phone)
}

func TestClientRepo_ArchiveAndUnarchive(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteClientRepo(db)
	ctx := context.Background()

	client := testutil.NewTestClient("Cycle Co")
	require.NoError(t, repo.Create(ctx, client))

	require.NoError(t, repo.Archive(ctx, client.ID))
	fetched, err := repo.GetByID(ctx, client.ID)
	require.NoError(t, err)
	assert.NotNil(t, fetched.ArchivedAt)

	require.NoError(t, repo.Unarchive(ctx, client.ID))
	fetched, err = repo.GetByID(ctx, client.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.ArchivedAt)
}

func TestClientRepo_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteClientRepo(db)
	ctx := context.Background()

	client := testutil.NewTestClient("Doomed Co")
	require.NoError(t, repo.Create(ctx, client))

	require.NoError(t, repo.Delete(ctx, client.ID))
	_, err := repo.GetByID(ctx, client.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}
