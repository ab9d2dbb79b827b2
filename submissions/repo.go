package submissions

import "context"

// Repo persists thread submissions.
type Repo interface {
	Insert(ctx context.Context, submission *Submission) (*Submission, error)
	// List returns all submissions, newest first.
	List(ctx context.Context) ([]*Submission, error)
	ListByHandle(ctx context.Context, xHandle string) ([]*Submission, error)
	// LatestByHandle returns the most recent submission for a handle, or
	// ErrNotFound if the handle has never submitted.
	LatestByHandle(ctx context.Context, xHandle string) (*Submission, error)
}
