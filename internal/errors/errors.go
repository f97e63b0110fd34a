package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error taxonomy for the portal gate
var (
	// Session token errors. A token that fails any of these is treated as tampered.
	ErrMalformedToken  = errors.New("malformed session token")
	ErrBadSignature    = errors.New("bad session token signature")
	ErrMalformedClaims = errors.New("malformed session claims")

	// Session state errors, recoverable by logging in again
	ErrUnauthenticated = errors.New("no session")
	ErrSessionExpired  = errors.New("session expired")

	// Login flow errors
	ErrInvalidOAuthState   = errors.New("invalid OAuth state")
	ErrTokenExchangeFailed = errors.New("token exchange failed")
	ErrEmailNotVerified    = errors.New("email not verified")
	ErrForbiddenDomain     = errors.New("email domain not allowed")

	// General errors
	ErrInvalidConfig = errors.New("invalid configuration")
)

// StatusCode maps an error from the taxonomy to the HTTP status it is answered with.
// Errors outside the taxonomy map to 500.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, ErrSessionExpired):
		return http.StatusFound
	case errors.Is(err, ErrInvalidOAuthState):
		return http.StatusBadRequest
	case errors.Is(err, ErrMalformedToken),
		errors.Is(err, ErrBadSignature),
		errors.Is(err, ErrMalformedClaims),
		errors.Is(err, ErrEmailNotVerified),
		errors.Is(err, ErrForbiddenDomain):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// IsTampering reports whether err means the session cookie was forged or corrupted.
func IsTampering(err error) bool {
	return errors.Is(err, ErrMalformedToken) || errors.Is(err, ErrBadSignature) || errors.Is(err, ErrMalformedClaims)
}

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
