package token

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	apperrors "github.com/jrsteele09/portal-gate/internal/errors"
)

// Claims is the identity carried by a session token. Exp is an absolute unix time in seconds.
type Claims struct {
	Email string `json:"email"`
	Exp   int64  `json:"exp"`
}

// NewClaims returns claims for email that expire ttl after now.
func NewClaims(email string, now time.Time, ttl time.Duration) Claims {
	return Claims{
		Email: email,
		Exp:   now.Add(ttl).Unix(),
	}
}

// Expired reports whether the claims are past their expiry at now, compared in milliseconds.
func (c Claims) Expired(now time.Time) bool {
	return c.Exp*1000 < now.UnixMilli()
}

// ExpiresAt returns the expiry as a time.
func (c Claims) ExpiresAt() time.Time {
	return time.Unix(c.Exp, 0)
}

// wireClaims is the strict decode target: exp is required, email must be a string when present.
type wireClaims struct {
	Email *string `json:"email"`
	Exp   *int64  `json:"exp"`
}

func marshalClaims(c Claims) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func unmarshalClaims(data []byte) (Claims, error) {
	var w wireClaims
	if err := json.Unmarshal(data, &w); err != nil {
		return Claims{}, errors.Wrap(apperrors.ErrMalformedClaims, err.Error())
	}
	if w.Exp == nil {
		return Claims{}, errors.Wrap(apperrors.ErrMalformedClaims, "exp is required")
	}
	c := Claims{Exp: *w.Exp}
	if w.Email != nil {
		c.Email = *w.Email
	}
	return c, nil
}
