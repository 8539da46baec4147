package data

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied at startup. Statements are idempotent so repeated
// boots against the same database are safe.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS postings (
		id           TEXT PRIMARY KEY,
		recruiter_id BIGINT NOT NULL,
		company_name TEXT NOT NULL,
		title        TEXT NOT NULL,
		description  TEXT NOT NULL,
		location     TEXT NOT NULL DEFAULT '',
		salary_range TEXT NOT NULL DEFAULT '',
		status       TEXT NOT NULL DEFAULT 'pending'
			CHECK (status IN ('pending', 'approved', 'rejected')),
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS postings_status_idx ON postings (status, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS postings_recruiter_idx ON postings (recruiter_id, created_at DESC)`,
}

// RunMigrations applies the posting schema.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	return nil
}
