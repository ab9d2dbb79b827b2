package fakesubmissionrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/wengro/greenhouse/internal/errors"
	"github.com/wengro/greenhouse/submissions"
	"github.com/wengro/greenhouse/users"
)

var _ submissions.Repo = (*FakeSubmissionRepo)(nil)

// FakeSubmissionRepo is an in-memory submission repository used in tests and
// when no database is configured.
type FakeSubmissionRepo struct {
	all  []*submissions.Submission
	lock sync.RWMutex
}

func NewFakeSubmissionRepo() *FakeSubmissionRepo {
	return &FakeSubmissionRepo{}
}

func (sr *FakeSubmissionRepo) Insert(_ context.Context, submission *submissions.Submission) (*submissions.Submission, error) {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	stored := &submissions.Submission{
		ID:          uuid.New().String(),
		XHandle:     users.NormalizeHandle(submission.XHandle),
		TweetID:     submission.TweetID,
		TweetURL:    submission.TweetURL,
		SubmittedAt: time.Now(),
	}
	sr.all = append(sr.all, stored)

	copied := *stored
	return &copied, nil
}

func (sr *FakeSubmissionRepo) List(_ context.Context) ([]*submissions.Submission, error) {
	sr.lock.RLock()
	defer sr.lock.RUnlock()

	out := make([]*submissions.Submission, 0, len(sr.all))
	for _, stored := range sr.all {
		copied := *stored
		out = append(out, &copied)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out, nil
}

func (sr *FakeSubmissionRepo) ListByHandle(_ context.Context, xHandle string) ([]*submissions.Submission, error) {
	handle := users.NormalizeHandle(xHandle)

	sr.lock.RLock()
	defer sr.lock.RUnlock()

	var out []*submissions.Submission
	for _, stored := range sr.all {
		if stored.XHandle == handle {
			copied := *stored
			out = append(out, &copied)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out, nil
}

func (sr *FakeSubmissionRepo) LatestByHandle(_ context.Context, xHandle string) (*submissions.Submission, error) {
	handle := users.NormalizeHandle(xHandle)

	sr.lock.RLock()
	defer sr.lock.RUnlock()

	var latest *submissions.Submission
	for _, stored := range sr.all {
		if stored.XHandle != handle {
			continue
		}
		if latest == nil || stored.SubmittedAt.After(latest.SubmittedAt) {
			latest = stored
		}
	}

	if latest == nil {
		return nil, apperrors.ErrNotFound
	}
	copied := *latest
	return &copied, nil
}
