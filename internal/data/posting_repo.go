package data

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tpo-portal/tpo-ui-api/internal/data/pgxutil"
	"github.com/tpo-portal/tpo-ui-api/internal/domain/model"
	apperrors "github.com/tpo-portal/tpo-ui-api/internal/errors"
)

// postingColumns is the column list for posting SELECT queries, kept in one
// place so every query maps the same fields.
const postingColumns = `id, recruiter_id, company_name, title, description, location, salary_range, status, created_at, updated_at`

// PostingRepo provides database operations for job postings.
// It implements ports.PostingRepository.
type PostingRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewPostingRepo creates a PostingRepo with the given database handle.
func NewPostingRepo(db *sql.DB) *PostingRepo {
	return &PostingRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// Create inserts a posting. ID and timestamps are assigned here; the status
// defaults to pending when unset.
func (r *PostingRepo) Create(ctx context.Context, p model.Posting) (model.Posting, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = model.PostingPending
	}
	if !p.Status.Valid() {
		return model.Posting{}, apperrors.ValidationField("status", "unknown posting status")
	}
	now := r.timeProvider.Now()

	query := `
		INSERT INTO postings (id, recruiter_id, company_name, title, description, location, salary_range, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + postingColumns

	var created model.Posting
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query,
			p.ID, p.RecruiterID, p.CompanyName, p.Title, p.Description,
			p.Location, p.SalaryRange, p.Status, now, now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		created, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Posting])
		return err
	})
	if err != nil {
		return model.Posting{}, apperrors.MapDBError(err)
	}
	return created, nil
}

// Get fetches a posting by id.
func (r *PostingRepo) Get(ctx context.Context, id string) (model.Posting, error) {
	query := `SELECT ` + postingColumns + ` FROM postings WHERE id = $1`

	var posting model.Posting
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, id)
		if err != nil {
			return err
		}
		defer rows.Close()

		posting, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Posting])
		return err
	})
	if err != nil {
		return model.Posting{}, apperrors.MapDBError(err)
	}
	return posting, nil
}

// ListByStatus returns postings in a moderation state, newest first.
func (r *PostingRepo) ListByStatus(ctx context.Context, status model.PostingStatus) ([]model.Posting, error) {
	if !status.Valid() {
		return nil, apperrors.ValidationField("status", "unknown posting status")
	}
	query := `SELECT ` + postingColumns + ` FROM postings WHERE status = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, status)
}

// ListByRecruiter returns every posting owned by a recruiter, newest first.
func (r *PostingRepo) ListByRecruiter(ctx context.Context, recruiterID int64) ([]model.Posting, error) {
	query := `SELECT ` + postingColumns + ` FROM postings WHERE recruiter_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, recruiterID)
}

func (r *PostingRepo) list(ctx context.Context, query string, arg any) ([]model.Posting, error) {
	var postings []model.Posting
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, arg)
		if err != nil {
			return err
		}
		defer rows.Close()

		postings, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Posting])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	if postings == nil {
		postings = []model.Posting{}
	}
	return postings, nil
}

// UpdateStatus moves a posting to a new moderation state.
func (r *PostingRepo) UpdateStatus(ctx context.Context, id string, status model.PostingStatus) (model.Posting, error) {
	if !status.Valid() {
		return model.Posting{}, apperrors.ValidationField("status", "unknown posting status")
	}

	query := `
		UPDATE postings SET status = $2, updated_at = $3
		WHERE id = $1
		RETURNING ` + postingColumns

	var updated model.Posting
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, id, status, r.timeProvider.Now())
		if err != nil {
			return err
		}
		defer rows.Close()

		updated, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Posting])
		return err
	})
	if err != nil {
		return model.Posting{}, apperrors.MapDBError(err)
	}
	return updated, nil
}

// Delete removes a posting.
func (r *PostingRepo) Delete(ctx context.Context, id string) error {
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		tag, err := conn.Exec(ctx, `DELETE FROM postings WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NotFound("posting not found")
		}
		return nil
	})
	return apperrors.MapDBError(err)
}

// TimeProvider abstracts the clock for deterministic repository tests.
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider returns the wall clock in UTC.
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time { return time.Now().UTC() }
