package data

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tpo-portal/tpo-ui-api/internal/domain/model"
	apperrors "github.com/tpo-portal/tpo-ui-api/internal/errors"
)

// testDB opens the database named by TEST_DATABASE_URL, skipping the test
// when it is unset. The postings table is truncated so every test starts
// clean.
func testDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database integration test")
	}

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, db.PingContext(ctx))
	require.NoError(t, RunMigrations(ctx, db))
	_, err = db.ExecContext(ctx, "TRUNCATE postings")
	require.NoError(t, err)
	return db
}

func TestPostingRepo_Integration_CreateAndGet(t *testing.T) {
	repo := NewPostingRepo(testDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, model.Posting{
		RecruiterID: 7,
		CompanyName: "Acme",
		Title:       "Backend Intern",
		Description: "Go services work",
		Location:    "Remote",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, model.PostingPending, created.Status)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Backend Intern", got.Title)
}

func TestPostingRepo_Integration_StatusLifecycle(t *testing.T) {
	repo := NewPostingRepo(testDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, model.Posting{
		RecruiterID: 7, CompanyName: "Acme", Title: "T", Description: "D",
	})
	require.NoError(t, err)

	pending, err := repo.ListByStatus(ctx, model.PostingPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	updated, err := repo.UpdateStatus(ctx, created.ID, model.PostingApproved)
	require.NoError(t, err)
	assert.Equal(t, model.PostingApproved, updated.Status)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt) || updated.UpdatedAt.Equal(created.UpdatedAt))

	approved, err := repo.ListByStatus(ctx, model.PostingApproved)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, created.ID, approved[0].ID)
}

func TestPostingRepo_Integration_ListByRecruiter(t *testing.T) {
	repo := NewPostingRepo(testDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, model.Posting{RecruiterID: 1, Title: "A", Description: "d", CompanyName: "X"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, model.Posting{RecruiterID: 2, Title: "B", Description: "d", CompanyName: "Y"})
	require.NoError(t, err)

	mine, err := repo.ListByRecruiter(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "A", mine[0].Title)
}

func TestPostingRepo_Integration_GetMissing(t *testing.T) {
	repo := NewPostingRepo(testDB(t))

	_, err := repo.Get(context.Background(), "no-such-id")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestPostingRepo_Integration_Delete(t *testing.T) {
	repo := NewPostingRepo(testDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, model.Posting{RecruiterID: 1, Title: "A", Description: "d", CompanyName: "X"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.True(t, apperrors.IsNotFound(repo.Delete(ctx, created.ID)))
}

func TestPostingRepo_Integration_InvalidStatusRejected(t *testing.T) {
	repo := NewPostingRepo(testDB(t))

	_, err := repo.ListByStatus(context.Background(), model.PostingStatus("bogus"))
	assert.True(t, apperrors.IsValidation(err))
}
