package server

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/jrsteele09/portal-gate/internal/emailutil"
	apperrors "github.com/jrsteele09/portal-gate/internal/errors"
	"github.com/jrsteele09/portal-gate/token"
)

// OAuthCallbackHandler completes the login (GET /auth/callback): it checks the
// CSRF state, exchanges the code, checks the identity and mints the session cookie.
func (s *Server) OAuthCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// The state is single use whatever the outcome
		s.ClearStateCookie(w)
		w.Header().Set("Cache-Control", "no-store")

		claims, err := s.completeLogin(r)
		if err != nil {
			s.metrics.observeLogin(err)
			s.loginFailed(w, r, err)
			return
		}

		sessionToken, err := s.codec.Sign(claims)
		if err != nil {
			s.metrics.observeLogin(err)
			s.loginFailed(w, r, err)
			return
		}

		s.metrics.observeLogin(nil)
		s.SetSessionCookie(w, sessionToken)
		zerolog.Ctx(r.Context()).Info().Str("email", claims.Email).Msg("login succeeded")
		http.Redirect(w, r, RoutePortal, http.StatusFound)
	}
}

func (s *Server) completeLogin(r *http.Request) (token.Claims, error) {
	query := r.URL.Query()
	if providerErr := query.Get("error"); providerErr != "" {
		return token.Claims{}, apperrors.Wrapf(apperrors.ErrInvalidOAuthState, "provider returned %q", providerErr)
	}

	code := query.Get("code")
	state := query.Get("state")
	if code == "" || state == "" {
		return token.Claims{}, apperrors.Wrapf(apperrors.ErrInvalidOAuthState, "missing code or state")
	}

	cookie, err := r.Cookie(oauthStateCookieName)
	if err != nil || cookie.Value == "" {
		return token.Claims{}, apperrors.Wrapf(apperrors.ErrInvalidOAuthState, "no state cookie")
	}
	if subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(state)) != 1 {
		return token.Claims{}, apperrors.Wrapf(apperrors.ErrInvalidOAuthState, "state mismatch")
	}

	identity, err := s.provider.Exchange(r.Context(), code)
	if err != nil {
		return token.Claims{}, err
	}

	if !identity.EmailVerified {
		return token.Claims{}, apperrors.ErrEmailNotVerified
	}
	if identity.Email == "" {
		return token.Claims{}, apperrors.Wrapf(apperrors.ErrEmailNotVerified, "id token has no email")
	}
	if !emailutil.InDomain(identity.Email, s.config.GetAllowedEmailDomain()) {
		return token.Claims{}, apperrors.ErrForbiddenDomain
	}

	return token.NewClaims(identity.Email, s.now(), s.config.GetMaxSessionAge()), nil
}

func (s *Server) loginFailed(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.StatusCode(err)
	zerolog.Ctx(r.Context()).Warn().Err(err).Int("status", status).Msg("login failed")

	var message string
	switch {
	case errors.Is(err, apperrors.ErrInvalidOAuthState):
		message = "Invalid OAuth state"
	case errors.Is(err, apperrors.ErrTokenExchangeFailed):
		message = "Token exchange failed"
	case errors.Is(err, apperrors.ErrEmailNotVerified):
		message = "Email not verified"
	case errors.Is(err, apperrors.ErrForbiddenDomain):
		message = "Forbidden (domain)"
	default:
		status = http.StatusInternalServerError
		message = "Auth error"
	}
	http.Error(w, message, status)
}
