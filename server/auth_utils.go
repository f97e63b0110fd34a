package server

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/jrsteele09/portal-gate/gatekeeper"
)

const (
	// sessionCookieName carries the signed session token
	sessionCookieName = gatekeeper.SessionCookieName
	// oauthStateCookieName carries the CSRF state between login and callback
	oauthStateCookieName = "oauth_state"

	stateLength = 32
)

// generateState creates a random base64url CSRF state
func generateState() (string, error) {
	b := make([]byte, stateLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func setCookie(w http.ResponseWriter, name, value string, maxAge time.Duration) {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(maxAge.Seconds()),
	}
	if maxAge <= 0 {
		cookie.MaxAge = -1 // Max-Age=0 on the wire
	}
	http.SetCookie(w, cookie)
}

func (s *Server) SetSessionCookie(w http.ResponseWriter, sessionToken string) {
	setCookie(w, sessionCookieName, sessionToken, s.config.GetMaxSessionAge())
}

func (s *Server) ClearSessionCookie(w http.ResponseWriter) {
	setCookie(w, sessionCookieName, "", 0)
}

func (s *Server) SetStateCookie(w http.ResponseWriter, state string) {
	setCookie(w, oauthStateCookieName, state, s.config.GetStateTTL())
}

func (s *Server) ClearStateCookie(w http.ResponseWriter) {
	setCookie(w, oauthStateCookieName, "", 0)
}
