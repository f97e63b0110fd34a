package token

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "github.com/jrsteele09/portal-gate/internal/errors"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

// signBody signs an arbitrary claims payload, bypassing Claims marshalling.
func signBody(c *Codec, payload string) string {
	body := base64.RawURLEncoding.EncodeToString([]byte(payload))
	return body + "." + c.signature(body)
}

func TestCodec_SignKnownVector(t *testing.T) {
	c := NewCodec(testSecret)

	tok, err := c.Sign(Claims{Email: "a@x.com", Exp: 1700000000})
	require.NoError(t, err)
	require.Equal(t, "eyJlbWFpbCI6ImFAeC5jb20iLCJleHAiOjE3MDAwMDAwMDB9.RY6k8k0-wRqRKHTMYtvqmlGYfJ4Z6N0wj-qmRQM4sGQ", tok)
}

func TestCodec_SignDoesNotEscapeHTML(t *testing.T) {
	c := NewCodec(testSecret)

	tok, err := c.Sign(Claims{Email: "a<b>&@x.com", Exp: 1})
	require.NoError(t, err)
	body, _, _ := strings.Cut(tok, ".")
	require.Equal(t, "eyJlbWFpbCI6ImE8Yj4mQHguY29tIiwiZXhwIjoxfQ", body)
}

func TestCodec_RoundTrip(t *testing.T) {
	c := NewCodec(testSecret)

	claims := []Claims{
		{Email: "a@x.com", Exp: 1700000000},
		{Email: "", Exp: 0},
		{Email: "ünïcødé@例え.jp", Exp: -5},
		{Email: "quotes\"and\\slashes@x.com", Exp: 1 << 40},
	}
	for _, want := range claims {
		t.Run(want.Email, func(t *testing.T) {
			tok, err := c.Sign(want)
			require.NoError(t, err)
			require.NotContains(t, tok, "=")

			got, err := c.Verify(tok)
			require.NoError(t, err)
			require.Equal(t, want, got)
		})
	}
}

func TestCodec_WrongSecret(t *testing.T) {
	tok, err := NewCodec([]byte("secret-one")).Sign(Claims{Email: "a@x.com", Exp: 1700000000})
	require.NoError(t, err)

	_, err = NewCodec([]byte("secret-two")).Verify(tok)
	require.ErrorIs(t, err, apperrors.ErrBadSignature)
}

func TestCodec_MutatedClaimsSegment(t *testing.T) {
	c := NewCodec(testSecret)
	tok, err := c.Sign(Claims{Email: "a@x.com", Exp: 1700000000})
	require.NoError(t, err)

	body, sig, _ := strings.Cut(tok, ".")
	for i := range body {
		replacement := byte('A')
		if body[i] == 'A' {
			replacement = 'B'
		}
		mutated := body[:i] + string(replacement) + body[i+1:]

		_, err := c.Verify(mutated + "." + sig)
		require.ErrorIs(t, err, apperrors.ErrBadSignature, "byte %d", i)
	}
}

func TestCodec_MutatedSignature(t *testing.T) {
	c := NewCodec(testSecret)
	tok, err := c.Sign(Claims{Email: "a@x.com", Exp: 1700000000})
	require.NoError(t, err)

	_, err = c.Verify(tok[:len(tok)-1])
	require.ErrorIs(t, err, apperrors.ErrBadSignature)

	_, err = c.Verify(tok + "x")
	require.ErrorIs(t, err, apperrors.ErrBadSignature)
}

func TestCodec_MalformedToken(t *testing.T) {
	c := NewCodec(testSecret)

	tests := map[string]string{
		"empty":            "",
		"no separator":     "eyJlbWFpbCI6ImFAeC5jb20ifQ",
		"empty claims":     ".c2ln",
		"empty signature":  "eyJlbWFpbCI6ImFAeC5jb20ifQ.",
		"three segments":   "a.b.c",
		"only a separator": ".",
	}
	for name, tok := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := c.Verify(tok)
			require.ErrorIs(t, err, apperrors.ErrMalformedToken)
		})
	}
}

func TestCodec_MalformedClaims(t *testing.T) {
	c := NewCodec(testSecret)

	t.Run("not base64url", func(t *testing.T) {
		body := "eyJ*"
		_, err := c.Verify(body + "." + c.signature(body))
		require.ErrorIs(t, err, apperrors.ErrMalformedClaims)
	})

	payloads := map[string]string{
		"not json":        "not json",
		"array":           `["a@x.com",1]`,
		"null":            `null`,
		"missing exp":     `{"email":"a@x.com"}`,
		"exp as string":   `{"email":"a@x.com","exp":"1700000000"}`,
		"exp fractional":  `{"email":"a@x.com","exp":1.5}`,
		"email as number": `{"email":42,"exp":1700000000}`,
	}
	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			_, err := c.Verify(signBody(c, payload))
			require.ErrorIs(t, err, apperrors.ErrMalformedClaims)
			require.True(t, apperrors.IsTampering(err))
		})
	}
}

func TestCodec_OptionalEmail(t *testing.T) {
	c := NewCodec(testSecret)

	for _, payload := range []string{`{"exp":1700000000}`, `{"email":null,"exp":1700000000}`} {
		got, err := c.Verify(signBody(c, payload))
		require.NoError(t, err)
		require.Equal(t, Claims{Exp: 1700000000}, got)
	}
}

func TestCodec_ExpiryIsNotVerified(t *testing.T) {
	c := NewCodec(testSecret)
	past := NewClaims("a@x.com", time.Now(), -time.Hour)

	tok, err := c.Sign(past)
	require.NoError(t, err)

	got, err := c.Verify(tok)
	require.NoError(t, err)
	require.True(t, got.Expired(time.Now()))
}

func TestClaims_Expired(t *testing.T) {
	now := time.Unix(1700000000, 0)

	require.False(t, Claims{Exp: 1700000000}.Expired(now))
	require.True(t, Claims{Exp: 1700000000}.Expired(now.Add(time.Millisecond)))
	require.False(t, Claims{Exp: 1700000001}.Expired(now.Add(999*time.Millisecond)))
	require.True(t, Claims{Exp: 1699999999}.Expired(now))
}

func TestNewClaims(t *testing.T) {
	now := time.Unix(1700000000, 500)
	c := NewClaims("a@x.com", now, 8*time.Hour)

	require.Equal(t, "a@x.com", c.Email)
	require.Equal(t, int64(1700000000+8*60*60), c.Exp)
	require.Equal(t, time.Unix(c.Exp, 0), c.ExpiresAt())
}

func TestCodec_ErrorsAreDistinct(t *testing.T) {
	require.False(t, errors.Is(apperrors.ErrBadSignature, apperrors.ErrMalformedToken))
	require.False(t, errors.Is(apperrors.ErrMalformedClaims, apperrors.ErrBadSignature))
}
