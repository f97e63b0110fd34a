package server

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/jrsteele09/portal-gate/idp"
)

// LoginProvider is the identity provider side of the login flow.
type LoginProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (idp.Identity, error)
}

// LoginHandler starts the authorization code flow (GET /auth/login)
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := generateState()
		if err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("Login: failed to generate state")
			http.Error(w, "Failed to start login", http.StatusInternalServerError)
			return
		}

		s.SetStateCookie(w, state)
		w.Header().Set("Cache-Control", "no-store")
		http.Redirect(w, r, s.provider.AuthCodeURL(state), http.StatusFound)
	}
}

// LogoutHandler clears the session cookie. Tokens are not revocable server side,
// so a copied token stays valid until it expires.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.ClearSessionCookie(w)
		w.Header().Set("Cache-Control", "no-store")
		http.Redirect(w, r, RouteLoginPage, http.StatusFound)
	}
}
