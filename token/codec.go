package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"

	"github.com/pkg/errors"

	apperrors "github.com/jrsteele09/portal-gate/internal/errors"
)

// Codec signs and verifies session tokens with a shared HMAC-SHA256 secret.
//
// A token is base64url(JSON(claims)) + "." + base64url(HMAC(secret, base64url(JSON(claims)))),
// both segments unpadded. The signature covers the encoded claims string, not the raw JSON.
// Verify does not check expiry; callers use Claims.Expired.
type Codec struct {
	secret []byte
}

// NewCodec creates a codec for the given secret
func NewCodec(secret []byte) *Codec {
	return &Codec{secret: secret}
}

func (c *Codec) Sign(claims Claims) (string, error) {
	payload, err := marshalClaims(claims)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode session claims")
	}
	body := base64.RawURLEncoding.EncodeToString(payload)
	return body + "." + c.signature(body), nil
}

func (c *Codec) Verify(token string) (Claims, error) {
	body, sig, ok := strings.Cut(token, ".")
	if !ok || body == "" || sig == "" || strings.Contains(sig, ".") {
		return Claims{}, apperrors.ErrMalformedToken
	}

	if !hmac.Equal([]byte(sig), []byte(c.signature(body))) {
		return Claims{}, apperrors.ErrBadSignature
	}

	payload, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return Claims{}, errors.Wrap(apperrors.ErrMalformedClaims, "claims are not base64url")
	}
	return unmarshalClaims(payload)
}

func (c *Codec) signature(body string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(body))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
