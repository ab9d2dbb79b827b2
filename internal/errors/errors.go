package errors

import (
	"errors"
	"fmt"
)

// Common error types for the Greenhouse API
var (
	// Authentication errors
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrSessionInvalid  = errors.New("invalid session")

	// OAuth flow errors
	ErrStateMismatch    = errors.New("state mismatch")
	ErrMissingParams    = errors.New("missing parameters")
	ErrAuthExchange     = errors.New("authorization code exchange failed")
	ErrIdentityFetch    = errors.New("identity fetch failed")
	ErrOriginNotAllowed = errors.New("origin not allowed")

	// Validation errors
	ErrValidation    = errors.New("validation failed")
	ErrInvalidWallet = errors.New("invalid wallet address")
	ErrInvalidTweet  = errors.New("invalid tweet url")

	// Submission errors
	ErrAlreadySubmitted = errors.New("already submitted today")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
