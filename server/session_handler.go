package server

import (
	"encoding/json"
	"net/http"
	"time"
)

type sessionInfo struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SessionInfoHandler reports who the current session belongs to (GET /api/session)
func (s *Server) SessionInfoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(sessionInfo{
			Email:     claims.Email,
			ExpiresAt: claims.ExpiresAt().UTC(),
		})
	}
}
