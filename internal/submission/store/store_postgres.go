package store

import (
	"context"
	"database/sql"
	"fmt"

	"intake/internal/submission"
	"intake/pkg/platform/sentinel"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS submissions (
  id           BIGSERIAL PRIMARY KEY,
  name         TEXT    NOT NULL,
  email        TEXT    NOT NULL,
  age          INTEGER NOT NULL,
  gender       TEXT    NOT NULL,
  submitted_at TEXT    NOT NULL
)`

// PostgresStore keeps one row per submission; the identity column fixes
// insertion order. Append is a single INSERT rather than a rewrite.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates the submissions table when missing.
func NewPostgresStore(ctx context.Context, db *sql.DB) (*PostgresStore, error) {
	if _, err := db.ExecContext(ctx, postgresSchema); err != nil {
		return nil, fmt.Errorf("%w: migrate submissions table: %w", sentinel.ErrUnavailable, err)
	}
	return &PostgresStore{db: db}, nil
}

// ReadAll returns every submission ordered by insertion.
func (s *PostgresStore) ReadAll(ctx context.Context) ([]submission.Submission, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT name, email, age, gender, submitted_at
FROM submissions
ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: query submissions: %w", sentinel.ErrUnavailable, err)
	}
	defer rows.Close()

	subs := emptyCollection()
	for rows.Next() {
		var (
			sub    submission.Submission
			gender string
		)
		if err := rows.Scan(&sub.Data.Name, &sub.Data.Email, &sub.Data.Age, &gender, &sub.SubmittedAt); err != nil {
			return nil, fmt.Errorf("%w: scan submission: %w", sentinel.ErrInvalidState, err)
		}
		sub.Data.Gender = submission.Gender(gender)
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate submissions: %w", sentinel.ErrUnavailable, err)
	}
	return subs, nil
}

// Append inserts sub as the newest row.
func (s *PostgresStore) Append(ctx context.Context, sub submission.Submission) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO submissions (name, email, age, gender, submitted_at)
VALUES ($1, $2, $3, $4, $5)`,
		sub.Data.Name, sub.Data.Email, sub.Data.Age, string(sub.Data.Gender), sub.SubmittedAt)
	if err != nil {
		return fmt.Errorf("%w: insert submission: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}
