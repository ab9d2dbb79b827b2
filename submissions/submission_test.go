package submissions_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	apperrors "github.com/wengro/greenhouse/internal/errors"
	"github.com/wengro/greenhouse/submissions"
)

func TestParseTweetURL(t *testing.T) {
	t.Run("valid links", func(t *testing.T) {
		cases := []struct {
			url  string
			want string
		}{
			{"https://x.com/alice/status/1790000000000000001", "1790000000000000001"},
			{"https://twitter.com/alice/status/123456789", "123456789"},
			{"https://www.x.com/Bob_Smith/status/42", "42"},
			{"https://x.com/alice/status/99?s=20&t=abc", "99"},
			{"https://x.com/alice/status/99/photo/1", "99"},
		}
		for _, c := range cases {
			got, err := submissions.ParseTweetURL(c.url)
			require.NoError(t, err, c.url)
			require.Equal(t, c.want, got, c.url)
		}
	})

	t.Run("invalid links", func(t *testing.T) {
		invalid := []string{
			"",
			"not a url",
			"https://x.com/alice",
			"https://x.com/alice/status/",
			"https://example.com/alice/status/123",
			"http://x.com/alice/status/123",
			"https://x.com/alice/status/abc",
		}
		for _, url := range invalid {
			_, err := submissions.ParseTweetURL(url)
			require.ErrorIs(t, err, apperrors.ErrInvalidTweet, url)
		}
	})
}

func TestSameUTCDay(t *testing.T) {
	base := time.Date(2025, 6, 10, 23, 30, 0, 0, time.UTC)

	require.True(t, submissions.SameUTCDay(base, base.Add(10*time.Minute)))
	require.False(t, submissions.SameUTCDay(base, base.Add(time.Hour)))

	// Same wall-clock day in a local zone, different UTC day
	local := time.Date(2025, 6, 10, 1, 0, 0, 0, time.FixedZone("UTC+3", 3*3600))
	require.False(t, submissions.SameUTCDay(local, base))
}
