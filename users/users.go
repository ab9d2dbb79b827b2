package users

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	apperrors "github.com/wengro/greenhouse/internal/errors"
)

// User is a registered community member. XHandle is the primary key and is
// always stored lower-cased; it comes from the OAuth identity, never from a
// request body.
type User struct {
	ID              string    `json:"id,omitempty"`
	XHandle         string    `json:"xHandle"`
	TelegramHandle  string    `json:"telegramHandle"`
	XHandleReferral string    `json:"xHandleReferral,omitempty"`
	HasKaitoYaps    bool      `json:"hasKaitoYaps"`
	WalletAddress   string    `json:"walletAddress,omitempty"`
	JoinTime        time.Time `json:"joinTime"`
}

var walletPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// NormalizeHandle lower-cases a social handle and strips whitespace and a
// leading @. Every lookup and write goes through this, which is what
// guarantees at most one profile per social identity.
func NormalizeHandle(handle string) string {
	handle = strings.TrimSpace(handle)
	handle = strings.TrimPrefix(handle, "@")
	return strings.ToLower(handle)
}

// NormalizeContactHandle lower-cases a messaging handle and ensures the
// leading @ the front end displays.
func NormalizeContactHandle(handle string) string {
	handle = strings.ToLower(strings.TrimSpace(handle))
	if handle == "" {
		return ""
	}
	if !strings.HasPrefix(handle, "@") {
		handle = "@" + handle
	}
	return handle
}

// ValidWalletAddress reports whether addr looks like an Ethereum address.
func ValidWalletAddress(addr string) bool {
	return walletPattern.MatchString(addr)
}

func (u *User) Validate() error {
	if u.XHandle == "" {
		return fmt.Errorf("%w: xHandle is required", apperrors.ErrValidation)
	}
	if u.TelegramHandle == "" {
		return fmt.Errorf("%w: telegramHandle is required", apperrors.ErrValidation)
	}
	return nil
}
