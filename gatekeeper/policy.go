package gatekeeper

import (
	"path"
	"strings"
)

// DefaultAllowlist is reachable without a session.
var DefaultAllowlist = []string{
	"/login.html",
	"/auth/login",
	"/auth/callback",
	"/auth/logout",
	"/assets",
	"/favicon.ico",
	"/robots.txt",
	"/healthz",
}

// Policy is the static list of paths admitted without a session. A path is
// allowlisted when it equals an entry or lies beneath it.
type Policy struct {
	entries []string
}

// NewPolicy builds a policy from entries. Entries are cleaned and "/" is rejected
// since it would allowlist everything.
func NewPolicy(entries ...string) Policy {
	p := Policy{}
	for _, e := range entries {
		e = path.Clean("/" + strings.TrimSpace(e))
		if e == "/" {
			continue
		}
		p.entries = append(p.entries, e)
	}
	return p
}

// Entries returns the cleaned entries.
func (p Policy) Entries() []string {
	return append([]string(nil), p.entries...)
}

// Allows reports whether requestPath is allowlisted. Paths not already in
// cleaned form are never allowlisted.
func (p Policy) Allows(requestPath string) bool {
	if !canonical(requestPath) {
		return false
	}
	cleaned := path.Clean(requestPath)
	for _, e := range p.entries {
		if cleaned == e || strings.HasPrefix(cleaned, e+"/") {
			return true
		}
	}
	return false
}

// canonical reports whether p is already in path.Clean form, allowing a single
// trailing slash.
func canonical(p string) bool {
	if !strings.HasPrefix(p, "/") {
		return false
	}
	cleaned := path.Clean(p)
	return cleaned == p || cleaned+"/" == p
}
