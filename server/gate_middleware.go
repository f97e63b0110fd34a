package server

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/jrsteele09/portal-gate/gatekeeper"
	"github.com/jrsteele09/portal-gate/token"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyClaims stores the session claims of an authenticated request
const ContextKeyClaims ContextKey = "claims"

// GateMiddleware runs the gatekeeper ahead of every route and turns its decision
// into a pass-through, a redirect to the login page, or a 403.
func (s *Server) GateMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		decision := s.gate.Evaluate(r)
		s.metrics.observeDecision(decision)

		switch decision.Outcome {
		case gatekeeper.Allow:
			if decision.Claims != nil {
				ctx := context.WithValue(r.Context(), ContextKeyClaims, *decision.Claims)
				r = r.WithContext(ctx)
			}
			next(w, r)
		case gatekeeper.Redirect:
			zerolog.Ctx(r.Context()).Debug().
				AnErr("reason", decision.Err).
				Str("path", r.URL.Path).
				Msg("redirecting to login")
			w.Header().Set("Cache-Control", "no-store")
			http.Redirect(w, r, decision.Location, decision.Status)
		default:
			zerolog.Ctx(r.Context()).Warn().
				AnErr("reason", decision.Err).
				Str("path", r.URL.Path).
				Str("state", decision.State.String()).
				Msg("request denied")
			http.Error(w, "Forbidden", decision.Status)
		}
	}
}

// ClaimsFromContext returns the session claims stored by GateMiddleware.
func ClaimsFromContext(ctx context.Context) (token.Claims, bool) {
	claims, ok := ctx.Value(ContextKeyClaims).(token.Claims)
	return claims, ok
}
