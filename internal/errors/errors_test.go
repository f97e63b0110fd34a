package errors_test

import (
	"errors"
	"net/http"
	"testing"

	apperrors "github.com/jrsteele09/portal-gate/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"no session", apperrors.ErrUnauthenticated, http.StatusFound},
		{"expired", apperrors.ErrSessionExpired, http.StatusFound},
		{"malformed token", apperrors.ErrMalformedToken, http.StatusForbidden},
		{"bad signature", apperrors.ErrBadSignature, http.StatusForbidden},
		{"malformed claims", apperrors.ErrMalformedClaims, http.StatusForbidden},
		{"invalid state", apperrors.ErrInvalidOAuthState, http.StatusBadRequest},
		{"exchange failed", apperrors.ErrTokenExchangeFailed, http.StatusInternalServerError},
		{"email not verified", apperrors.ErrEmailNotVerified, http.StatusForbidden},
		{"forbidden domain", apperrors.ErrForbiddenDomain, http.StatusForbidden},
		{"wrapped", apperrors.Wrapf(apperrors.ErrBadSignature, "verify %s", "cookie"), http.StatusForbidden},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, apperrors.StatusCode(tt.err))
		})
	}
}

func TestIsTampering(t *testing.T) {
	require.True(t, apperrors.IsTampering(apperrors.ErrMalformedToken))
	require.True(t, apperrors.IsTampering(apperrors.Wrapf(apperrors.ErrMalformedClaims, "decode")))
	require.False(t, apperrors.IsTampering(apperrors.ErrSessionExpired))
	require.False(t, apperrors.IsTampering(nil))
}

func TestWrapf(t *testing.T) {
	require.NoError(t, apperrors.Wrapf(nil, "nothing"))

	err := apperrors.Wrapf(apperrors.ErrInvalidOAuthState, "callback %d", 1)
	require.EqualError(t, err, "callback 1: invalid OAuth state")
	require.True(t, apperrors.Is(err, apperrors.ErrInvalidOAuthState))
}
