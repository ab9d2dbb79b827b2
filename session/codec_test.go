package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	apperrors "github.com/wengro/greenhouse/internal/errors"
	"github.com/wengro/greenhouse/session"
)

func TestCodecRoundTrip(t *testing.T) {
	codec := session.NewCodec("test-secret", "greenhouse_session")

	t.Run("pending authorization survives encode/decode", func(t *testing.T) {
		original := session.Session{
			Pending: &session.PendingAuthorization{
				CodeVerifier: "verifier-abc",
				State:        "state-xyz",
				CallbackURL:  "http://localhost:3001/auth/x/callback",
			},
		}

		raw, err := codec.Encode(original, time.Minute)
		require.NoError(t, err)

		decoded, err := codec.Decode(raw)
		require.NoError(t, err)
		require.NotNil(t, decoded.Pending)
		require.Equal(t, "state-xyz", decoded.Pending.State)
		require.Equal(t, "verifier-abc", decoded.Pending.CodeVerifier)
		require.False(t, decoded.IsAuthenticated())
	})

	t.Run("authenticated session survives encode/decode", func(t *testing.T) {
		expiry := time.Now().Add(2 * time.Hour).Truncate(time.Second)
		original := session.Session{
			Auth: &session.Authenticated{
				XHandle:      "alice",
				AccessToken:  "access",
				RefreshToken: "refresh",
				ExpiresAt:    expiry,
			},
		}

		raw, err := codec.Encode(original, time.Hour)
		require.NoError(t, err)

		decoded, err := codec.Decode(raw)
		require.NoError(t, err)
		require.True(t, decoded.IsAuthenticated())
		require.Equal(t, "alice", decoded.Auth.XHandle)
		require.True(t, expiry.Equal(decoded.Auth.ExpiresAt))
	})
}

func TestCodecRejects(t *testing.T) {
	codec := session.NewCodec("test-secret", "greenhouse_session")

	t.Run("tampered value", func(t *testing.T) {
		raw, err := codec.Encode(session.Session{Auth: &session.Authenticated{XHandle: "alice"}}, time.Minute)
		require.NoError(t, err)

		_, err = codec.Decode(raw + "x")
		require.ErrorIs(t, err, apperrors.ErrSessionInvalid)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := session.NewCodec("other-secret", "greenhouse_session")
		raw, err := other.Encode(session.Session{Auth: &session.Authenticated{XHandle: "alice"}}, time.Minute)
		require.NoError(t, err)

		_, err = codec.Decode(raw)
		require.ErrorIs(t, err, apperrors.ErrSessionInvalid)
	})

	t.Run("expired session", func(t *testing.T) {
		raw, err := codec.Encode(session.Session{Auth: &session.Authenticated{XHandle: "alice"}}, -time.Minute)
		require.NoError(t, err)

		_, err = codec.Decode(raw)
		require.ErrorIs(t, err, apperrors.ErrSessionInvalid)
	})

	t.Run("garbage value", func(t *testing.T) {
		_, err := codec.Decode("not-a-jwt")
		require.ErrorIs(t, err, apperrors.ErrSessionInvalid)
	})
}

func TestCodecCookies(t *testing.T) {
	codec := session.NewCodec("test-secret", "greenhouse_session")

	t.Run("write then read", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		err := codec.Write(rec, req, session.Session{Auth: &session.Authenticated{XHandle: "bob"}}, time.Hour)
		require.NoError(t, err)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		require.True(t, cookies[0].HttpOnly)
		require.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

		next := httptest.NewRequest(http.MethodGet, "/", nil)
		next.AddCookie(cookies[0])

		s, err := codec.Read(next)
		require.NoError(t, err)
		require.Equal(t, "bob", s.Auth.XHandle)
	})

	t.Run("read without cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		_, err := codec.Read(req)
		require.ErrorIs(t, err, apperrors.ErrSessionInvalid)
	})

	t.Run("clear expires the cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		codec.Clear(rec, req)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		require.Less(t, cookies[0].MaxAge, 0)
		require.Empty(t, cookies[0].Value)
	})
}
