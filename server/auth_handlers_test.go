package server_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/jrsteele09/portal-gate/idp"
	apperrors "github.com/jrsteele09/portal-gate/internal/errors"
	"github.com/jrsteele09/portal-gate/token"
	"github.com/stretchr/testify/require"
)

func TestLoginHandler(t *testing.T) {
	w := do(newTestServer(t, "", &fakeProvider{}), "/auth/login", "")

	require.Equal(t, http.StatusFound, w.Code)

	state := findCookie(w, "oauth_state")
	require.NotNil(t, state)
	require.NotEmpty(t, state.Value)
	require.True(t, state.HttpOnly)
	require.True(t, state.Secure)
	require.Equal(t, "/", state.Path)
	require.Equal(t, http.SameSiteLaxMode, state.SameSite)
	require.Equal(t, 600, state.MaxAge)

	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "idp.example.com", location.Host)
	require.Equal(t, state.Value, location.Query().Get("state"))
}

func TestLoginHandler_FreshStateEachTime(t *testing.T) {
	s := newTestServer(t, "", &fakeProvider{})

	first := findCookie(do(s, "/auth/login", ""), "oauth_state")
	second := findCookie(do(s, "/auth/login", ""), "oauth_state")
	require.NotEqual(t, first.Value, second.Value)
}

func callback(s http.Handler, query url.Values, stateCookie string) *httptest.ResponseRecorder {
	cookie := ""
	if stateCookie != "" {
		cookie = "oauth_state=" + stateCookie
	}
	return do(s, "/auth/callback?"+query.Encode(), cookie)
}

func requireStateCleared(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	c := findCookie(w, "oauth_state")
	require.NotNil(t, c)
	require.Empty(t, c.Value)
	require.Equal(t, -1, c.MaxAge)
}

func TestCallback_InvalidState(t *testing.T) {
	tests := []struct {
		name   string
		query  url.Values
		cookie string
	}{
		{"state mismatch", url.Values{"code": {"c"}, "state": {"attacker"}}, "victim"},
		{"missing code", url.Values{"state": {"s"}}, "s"},
		{"missing state", url.Values{"code": {"c"}}, "s"},
		{"missing cookie", url.Values{"code": {"c"}, "state": {"s"}}, ""},
		{"provider error", url.Values{"error": {"access_denied"}, "state": {"s"}}, "s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{identity: idp.Identity{Email: "a@x.com", EmailVerified: true}}
			w := callback(newTestServer(t, "", provider), tt.query, tt.cookie)

			require.Equal(t, http.StatusBadRequest, w.Code)
			require.Contains(t, w.Body.String(), "Invalid OAuth state")
			require.Nil(t, findCookie(w, "session"))
			require.Zero(t, provider.calls)
			requireStateCleared(t, w)
		})
	}
}

func TestCallback_Success(t *testing.T) {
	provider := &fakeProvider{identity: idp.Identity{Email: "a@x.com", EmailVerified: true}}
	s := newTestServer(t, "x.com", provider)

	w := callback(s, url.Values{"code": {"auth-code"}, "state": {"s1"}}, "s1")

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/portal/", w.Header().Get("Location"))
	require.Equal(t, "auth-code", provider.gotCode)
	requireStateCleared(t, w)

	session := findCookie(w, "session")
	require.NotNil(t, session)
	require.True(t, session.HttpOnly)
	require.True(t, session.Secure)
	require.Equal(t, "/", session.Path)
	require.Equal(t, http.SameSiteLaxMode, session.SameSite)
	require.Equal(t, 28800, session.MaxAge)

	claims, err := token.NewCodec(testSecret).Verify(session.Value)
	require.NoError(t, err)
	require.Equal(t, token.Claims{Email: "a@x.com", Exp: fixedNow.Add(8 * time.Hour).Unix()}, claims)

	// The minted cookie opens the portal
	portal := do(s, "/portal/", "session="+session.Value)
	require.Equal(t, http.StatusOK, portal.Code)
}

func TestCallback_Failures(t *testing.T) {
	tests := []struct {
		name     string
		domain   string
		identity idp.Identity
		err      error
		status   int
		body     string
	}{
		{
			name:   "token exchange failed",
			err:    apperrors.Wrapf(apperrors.ErrTokenExchangeFailed, "exchange"),
			status: http.StatusInternalServerError,
			body:   "Token exchange failed",
		},
		{
			name:   "id token undecodable",
			err:    errors.New("failed to parse id token"),
			status: http.StatusInternalServerError,
			body:   "Auth error",
		},
		{
			name:     "email not verified",
			identity: idp.Identity{Email: "a@x.com", EmailVerified: false},
			status:   http.StatusForbidden,
			body:     "Email not verified",
		},
		{
			name:     "no email",
			identity: idp.Identity{EmailVerified: true},
			status:   http.StatusForbidden,
			body:     "Email not verified",
		},
		{
			name:     "forbidden domain",
			domain:   "x.com",
			identity: idp.Identity{Email: "a@y.com", EmailVerified: true},
			status:   http.StatusForbidden,
			body:     "Forbidden (domain)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{identity: tt.identity, err: tt.err}
			w := callback(newTestServer(t, tt.domain, provider), url.Values{"code": {"c"}, "state": {"s"}}, "s")

			require.Equal(t, tt.status, w.Code)
			require.Contains(t, w.Body.String(), tt.body)
			require.Equal(t, 1, provider.calls)
			require.Nil(t, findCookie(w, "session"))
			requireStateCleared(t, w)
		})
	}
}

func TestLogoutHandler(t *testing.T) {
	cookie := sessionCookie(t, token.Claims{Email: "a@x.com", Exp: fixedNow.Add(time.Hour).Unix()})

	w := do(newTestServer(t, "", &fakeProvider{}), "/auth/logout", cookie)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login.html", w.Header().Get("Location"))
	session := findCookie(w, "session")
	require.NotNil(t, session)
	require.Empty(t, session.Value)
	require.Equal(t, -1, session.MaxAge)
}
