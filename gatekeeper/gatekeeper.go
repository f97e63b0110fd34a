package gatekeeper

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/portal-gate/internal/emailutil"
	apperrors "github.com/jrsteele09/portal-gate/internal/errors"
	"github.com/jrsteele09/portal-gate/token"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "session"

// Verifier checks a session token's signature and decodes its claims.
type Verifier interface {
	Verify(token string) (token.Claims, error)
}

type Options struct {
	Policy Policy
	// LoginPath is where unauthenticated requests are redirected.
	LoginPath string
	// AllowedDomain restricts sessions to one email domain. Empty disables the check.
	AllowedDomain string
	// Now defaults to time.Now.
	Now func() time.Time
}

// Gatekeeper decides, per request, whether a request may reach a protected handler.
// It keeps no state between requests.
type Gatekeeper struct {
	verifier      Verifier
	policy        Policy
	loginPath     string
	allowedDomain string
	now           func() time.Time
}

func New(verifier Verifier, opts Options) *Gatekeeper {
	if opts.LoginPath == "" {
		opts.LoginPath = "/login.html"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Gatekeeper{
		verifier:      verifier,
		policy:        opts.Policy,
		loginPath:     opts.LoginPath,
		allowedDomain: opts.AllowedDomain,
		now:           opts.Now,
	}
}

// Evaluate runs the admission checks in order: allowlist, cookie, signature,
// expiry, domain. A panic anywhere in evaluation denies the request.
func (g *Gatekeeper) Evaluate(r *http.Request) (decision Decision) {
	defer func() {
		if rec := recover(); rec != nil {
			decision = Denied(http.StatusForbidden, fmt.Errorf("gatekeeper: evaluation panicked: %v", rec))
		}
	}()

	// The mux routes on the escaped path; a non-default escaping (e.g. %2F) is never allowlisted.
	if r.URL.RawPath == "" && g.policy.Allows(r.URL.Path) {
		return Allowed(Allowlisted, nil)
	}

	value, ok := SessionCookie(r)
	if !ok {
		return RedirectTo(g.loginPath, apperrors.ErrUnauthenticated)
	}

	claims, err := g.verifier.Verify(value)
	if err != nil {
		return Denied(http.StatusForbidden, err)
	}

	if claims.Expired(g.now()) || claims.Email == "" {
		return RedirectTo(g.loginPath, apperrors.ErrSessionExpired)
	}

	if !emailutil.InDomain(claims.Email, g.allowedDomain) {
		return Denied(http.StatusForbidden, apperrors.ErrForbiddenDomain)
	}

	return Allowed(Authenticated, &claims)
}

// SessionCookie returns the first non-empty session cookie value from the raw
// Cookie headers. Values are taken verbatim so a corrupted token still reaches
// verification instead of being dropped as an invalid cookie.
func SessionCookie(r *http.Request) (string, bool) {
	for _, line := range r.Header.Values("Cookie") {
		for _, part := range strings.Split(line, ";") {
			name, value, found := strings.Cut(strings.TrimSpace(part), "=")
			if !found || name != SessionCookieName {
				continue
			}
			if value != "" {
				return value, true
			}
		}
	}
	return "", false
}
