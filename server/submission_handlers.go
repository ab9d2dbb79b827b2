package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	apperrors "github.com/wengro/greenhouse/internal/errors"
	"github.com/wengro/greenhouse/submissions"
)

// SubmitThreadHandler records the caller's daily thread submission. One
// submission per handle per UTC day.
func (s *Server) SubmitThreadHandler() http.HandlerFunc {
	type submitRequest struct {
		TweetURL string `json:"tweetUrl"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var body submitRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}

		tweetID, err := submissions.ParseTweetURL(body.TweetURL)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		handle := HandleFromContext(r.Context())

		latest, err := s.submissions.LatestByHandle(r.Context(), handle)
		if err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
			writeDomainError(w, err)
			return
		}
		if latest != nil && submissions.SameUTCDay(latest.SubmittedAt, time.Now()) {
			writeDomainError(w, fmt.Errorf("%w: handle %s", apperrors.ErrAlreadySubmitted, handle))
			return
		}

		stored, err := s.submissions.Insert(r.Context(), &submissions.Submission{
			XHandle:  handle,
			TweetID:  tweetID,
			TweetURL: body.TweetURL,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeData(w, http.StatusCreated, stored)
	}
}

// SubmissionTodayHandler reports whether the caller already submitted during
// the current UTC day.
func (s *Server) SubmissionTodayHandler() http.HandlerFunc {
	type todayResponse struct {
		Submitted bool `json:"submitted"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		latest, err := s.submissions.LatestByHandle(r.Context(), HandleFromContext(r.Context()))
		if err != nil {
			if apperrors.Is(err, apperrors.ErrNotFound) {
				writeData(w, http.StatusOK, todayResponse{Submitted: false})
				return
			}
			writeDomainError(w, err)
			return
		}
		writeData(w, http.StatusOK, todayResponse{
			Submitted: submissions.SameUTCDay(latest.SubmittedAt, time.Now()),
		})
	}
}

// ListSubmissionsHandler returns submissions, newest first, optionally
// filtered to a single handle via ?handle=. This is the raw feed the
// leaderboard is built from; ranking stays in the front end.
func (s *Server) ListSubmissionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			all []*submissions.Submission
			err error
		)
		if handle := r.URL.Query().Get("handle"); handle != "" {
			all, err = s.submissions.ListByHandle(r.Context(), handle)
		} else {
			all, err = s.submissions.List(r.Context())
		}
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeData(w, http.StatusOK, all)
	}
}
