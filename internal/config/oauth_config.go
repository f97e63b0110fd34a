package config

import "time"

const (
	clientIDVar     = "GOOGLE_CLIENT_ID"
	clientSecretVar = "GOOGLE_CLIENT_SECRET"
	issuerVar       = "OIDC_ISSUER"
	authURLVar      = "GOOGLE_OAUTH_AUTH_URL"
	tokenURLVar     = "GOOGLE_OAUTH_TOKEN_URL"
)

type OAuthConfig interface {
	GetClientID() string
	GetClientSecret() string
	GetIssuer() string
	GetAuthURL() string
	GetTokenURL() string
	GetStateTTL() time.Duration
	GetScopes() []string
}

// OAuth holds the identity provider client settings.
type OAuth struct {
	ClientID     string
	ClientSecret string
	// Issuer enables OIDC discovery and ID token signature verification when set.
	Issuer string
	// AuthURL and TokenURL override the provider endpoints (tests, staging).
	AuthURL  string
	TokenURL string
}

var _ OAuthConfig = OAuth{}

func loadOAuth() OAuth {
	return OAuth{
		ClientID:     GetEnv(clientIDVar, ""),
		ClientSecret: GetEnv(clientSecretVar, ""),
		Issuer:       GetEnv(issuerVar, ""),
		AuthURL:      GetEnv(authURLVar, ""),
		TokenURL:     GetEnv(tokenURLVar, ""),
	}
}

func (o OAuth) GetClientID() string {
	return o.ClientID
}

func (o OAuth) GetClientSecret() string {
	return o.ClientSecret
}

func (o OAuth) GetIssuer() string {
	return o.Issuer
}

func (o OAuth) GetAuthURL() string {
	return o.AuthURL
}

func (o OAuth) GetTokenURL() string {
	return o.TokenURL
}

func (OAuth) GetStateTTL() time.Duration {
	return 10 * time.Minute
}

func (OAuth) GetScopes() []string {
	return []string{"openid", "email", "profile"}
}
