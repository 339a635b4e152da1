package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	iss := NewIssuer("super-secret", time.Hour)
	tok, err := iss.Issue("user-123")
	require.NoError(t, err)

	got, err := iss.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", got)
}

func TestVerifyExpired(t *testing.T) {
	t.Parallel()

	iss := NewIssuer("secret", time.Minute)
	iss.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err := iss.Issue("u1")
	require.NoError(t, err)

	_, err = NewIssuer("secret", time.Minute).Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewIssuer("right-secret", time.Hour).Issue("u2")
	require.NoError(t, err)

	_, err = NewIssuer("wrong-secret", time.Hour).Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyMalformed(t *testing.T) {
	t.Parallel()

	_, err := NewIssuer("k", time.Hour).Verify("not.a.jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	t.Parallel()

	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer, Subject: "u3"},
	})
	unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewIssuer("k", time.Hour).Verify(unsigned)
	require.ErrorIs(t, err, ErrInvalidToken)
}
