package pgsubmissionrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	apperrors "github.com/wengro/greenhouse/internal/errors"
	"github.com/wengro/greenhouse/submissions"
	"github.com/wengro/greenhouse/users"
)

var _ submissions.Repo = (*PGSubmissionRepo)(nil)

// PGSubmissionRepo is the postgres-backed submission repository.
type PGSubmissionRepo struct {
	db *pgxpool.Pool
}

func NewPGSubmissionRepo(pool *pgxpool.Pool) *PGSubmissionRepo {
	return &PGSubmissionRepo{db: pool}
}

// EnsureSchema creates the submissions table if it does not exist yet.
func (sr *PGSubmissionRepo) EnsureSchema(ctx context.Context) error {
	_, err := sr.db.Exec(ctx, `
		create table if not exists submissions (
			id uuid primary key,
			x_handle text not null,
			tweet_id text not null,
			tweet_url text not null,
			submitted_at timestamptz not null default now()
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure submissions schema: %w", err)
	}
	return nil
}

func (sr *PGSubmissionRepo) Insert(ctx context.Context, submission *submissions.Submission) (*submissions.Submission, error) {
	var out submissions.Submission
	err := sr.db.QueryRow(ctx, `
		insert into submissions (id, x_handle, tweet_id, tweet_url)
		values ($1, $2, $3, $4)
		returning id, x_handle, tweet_id, tweet_url, submitted_at
	`, uuid.New().String(), users.NormalizeHandle(submission.XHandle), submission.TweetID, submission.TweetURL).Scan(
		&out.ID, &out.XHandle, &out.TweetID, &out.TweetURL, &out.SubmittedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert submission: %w", err)
	}
	return &out, nil
}

func (sr *PGSubmissionRepo) List(ctx context.Context) ([]*submissions.Submission, error) {
	return sr.query(ctx, `
		select id, x_handle, tweet_id, tweet_url, submitted_at
		from submissions
		order by submitted_at desc
	`)
}

func (sr *PGSubmissionRepo) ListByHandle(ctx context.Context, xHandle string) ([]*submissions.Submission, error) {
	return sr.query(ctx, `
		select id, x_handle, tweet_id, tweet_url, submitted_at
		from submissions
		where x_handle = $1
		order by submitted_at desc
	`, users.NormalizeHandle(xHandle))
}

func (sr *PGSubmissionRepo) LatestByHandle(ctx context.Context, xHandle string) (*submissions.Submission, error) {
	var out submissions.Submission
	err := sr.db.QueryRow(ctx, `
		select id, x_handle, tweet_id, tweet_url, submitted_at
		from submissions
		where x_handle = $1
		order by submitted_at desc
		limit 1
	`, users.NormalizeHandle(xHandle)).Scan(
		&out.ID, &out.XHandle, &out.TweetID, &out.TweetURL, &out.SubmittedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("latest submission by handle: %w", err)
	}
	return &out, nil
}

func (sr *PGSubmissionRepo) query(ctx context.Context, sql string, args ...any) ([]*submissions.Submission, error) {
	rows, err := sr.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	var all []*submissions.Submission
	for rows.Next() {
		var out submissions.Submission
		if err := rows.Scan(&out.ID, &out.XHandle, &out.TweetID, &out.TweetURL, &out.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		all = append(all, &out)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	return all, nil
}
