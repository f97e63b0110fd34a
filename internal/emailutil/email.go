package emailutil

import "strings"

// Normalize normalizes an email address for consistent comparison
// by converting to lowercase and trimming whitespace
func Normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ExtractDomain extracts domain from email address
func ExtractDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	return email[at+1:]
}

// InDomain reports whether the domain of email is domain. Comparison ignores case.
// An empty domain matches every address.
func InDomain(email, domain string) bool {
	domain = strings.TrimPrefix(Normalize(domain), "@")
	if domain == "" {
		return true
	}
	return ExtractDomain(Normalize(email)) == domain
}
