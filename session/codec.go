package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/wengro/greenhouse/internal/errors"
)

// Codec signs and verifies the session cookie. The cookie value is a compact
// HS256 JWT whose claims embed the Session, so the server keeps no session
// state of its own and any instance holding the secret can verify it.
type Codec struct {
	secret     []byte
	cookieName string
}

type sessionClaims struct {
	Session
	jwt.RegisteredClaims
}

func NewCodec(secret, cookieName string) *Codec {
	return &Codec{secret: []byte(secret), cookieName: cookieName}
}

// Encode serializes and signs a session with the given lifetime.
func (c *Codec) Encode(s Session, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Session: s,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature and expiry of a raw cookie value and returns
// the embedded session. Tampered, expired, or malformed values all come back
// as ErrSessionInvalid.
func (c *Codec) Decode(raw string) (Session, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", apperrors.ErrSessionInvalid, err)
	}
	return claims.Session, nil
}

// Read extracts and verifies the session from the request cookie. A missing
// cookie is not an error condition for callers; they get a zero session and
// ErrSessionInvalid to branch on.
func (c *Codec) Read(r *http.Request) (Session, error) {
	cookie, err := r.Cookie(c.cookieName)
	if err != nil || cookie.Value == "" {
		return Session{}, apperrors.ErrSessionInvalid
	}
	return c.Decode(cookie.Value)
}

// Write encodes the session and sets it as the response cookie.
func (c *Codec) Write(w http.ResponseWriter, r *http.Request, s Session, ttl time.Duration) error {
	value, err := c.Encode(s, ttl)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     c.cookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   requestIsSecure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl.Seconds()),
	})
	return nil
}

// Clear expires the session cookie. Clearing an absent cookie is a no-op.
func (c *Codec) Clear(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   requestIsSecure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func requestIsSecure(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return r.Header.Get("X-Forwarded-Proto") == "https"
}
