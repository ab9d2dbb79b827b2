package server_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubmitThreadHandler(t *testing.T) {
	const tweet = "https://x.com/alice/status/1790000000000000001"

	t.Run("requires a session", func(t *testing.T) {
		env := newTestEnv(t)
		resp := env.postJSON(t, "/api/submissions", map[string]any{"tweetUrl": tweet}, nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejects a non-status link", func(t *testing.T) {
		env := newTestEnv(t)
		resp := env.postJSON(t, "/api/submissions", map[string]any{"tweetUrl": "https://example.com/x"}, env.authCookie(t, "alice"))
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("first submission of the day succeeds, second conflicts", func(t *testing.T) {
		env := newTestEnv(t)
		cookie := env.authCookie(t, "alice")

		resp := env.postJSON(t, "/api/submissions", map[string]any{"tweetUrl": tweet}, cookie)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		payload := decodeEnvelope(t, resp)
		data := payload["data"].(map[string]any)
		require.Equal(t, "alice", data["xHandle"])
		require.Equal(t, "1790000000000000001", data["tweetId"])

		resp = env.postJSON(t, "/api/submissions", map[string]any{"tweetUrl": tweet}, cookie)
		defer resp.Body.Close()
		require.Equal(t, http.StatusConflict, resp.StatusCode)

		// A different member can still submit
		resp = env.postJSON(t, "/api/submissions", map[string]any{"tweetUrl": tweet}, env.authCookie(t, "bob"))
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	})
}

func TestSubmissionTodayHandler(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.authCookie(t, "alice")

	today := func() bool {
		req, err := http.NewRequest(http.MethodGet, env.server.URL+"/api/submissions/today", nil)
		require.NoError(t, err)
		req.AddCookie(cookie)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		payload := decodeEnvelope(t, resp)
		return payload["data"].(map[string]any)["submitted"].(bool)
	}

	require.False(t, today())

	resp := env.postJSON(t, "/api/submissions", map[string]any{"tweetUrl": "https://x.com/alice/status/42"}, cookie)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	require.True(t, today())
}

func TestListSubmissionsHandler(t *testing.T) {
	env := newTestEnv(t)

	for _, handle := range []string{"alice", "bob"} {
		resp := env.postJSON(t, "/api/submissions",
			map[string]any{"tweetUrl": "https://x.com/" + handle + "/status/7"}, env.authCookie(t, handle))
		resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, err := http.Get(env.server.URL + "/api/submissions")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	payload := decodeEnvelope(t, resp)
	require.Len(t, payload["data"].([]any), 2)

	// Filtered to a single handle
	resp, err = http.Get(env.server.URL + "/api/submissions?handle=alice")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	payload = decodeEnvelope(t, resp)
	data := payload["data"].([]any)
	require.Len(t, data, 1)
	require.Equal(t, "alice", data[0].(map[string]any)["xHandle"])
}
