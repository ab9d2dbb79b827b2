package submissions

import (
	"fmt"
	"regexp"
	"time"

	apperrors "github.com/wengro/greenhouse/internal/errors"
)

// Submission records one promotional thread submitted by a member. Members
// may submit at most once per UTC day; the handler enforces that via
// LatestByHandle.
type Submission struct {
	ID          string    `json:"id,omitempty"`
	XHandle     string    `json:"xHandle"`
	TweetID     string    `json:"tweetId"`
	TweetURL    string    `json:"tweetUrl"`
	SubmittedAt time.Time `json:"submittedAt"`
}

var tweetURLPattern = regexp.MustCompile(`^https://(?:www\.)?(?:x|twitter)\.com/[A-Za-z0-9_]{1,15}/status/([0-9]+)(?:[/?].*)?$`)

// ParseTweetURL extracts the numeric tweet ID from an x.com or twitter.com
// status URL.
func ParseTweetURL(raw string) (string, error) {
	m := tweetURLPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", fmt.Errorf("%w: %q is not a status link", apperrors.ErrInvalidTweet, raw)
	}
	return m[1], nil
}

// SameUTCDay reports whether two instants fall on the same UTC calendar day.
func SameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
