package auth_test

import (
	"testing"
	"time"

	"foh/internal/auth"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

func claimsWithTTL(ttl time.Duration) auth.AccessClaims {
	return auth.AccessClaims{
		Role:         "Chef",
		TokenVersion: 2,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "7",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
}

func TestSignAndParse(t *testing.T) {
	signed, err := auth.Sign(claimsWithTTL(time.Hour), "secret")
	assert.NoError(t, err)

	claims, err := auth.Parse(signed, "secret")
	assert.NoError(t, err)
	assert.Equal(t, "7", claims.Subject)
	assert.Equal(t, "Chef", claims.Role)
	assert.Equal(t, 2, claims.TokenVersion)
}

func TestParse_WrongSecret(t *testing.T) {
	signed, err := auth.Sign(claimsWithTTL(time.Hour), "secret")
	assert.NoError(t, err)

	_, err = auth.Parse(signed, "other")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParse_Expired(t *testing.T) {
	signed, err := auth.Sign(claimsWithTTL(-time.Minute), "secret")
	assert.NoError(t, err)

	_, err = auth.Parse(signed, "secret")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParse_RejectsOtherSigningMethod(t *testing.T) {
	// HS256以外で署名されたトークンは鍵が合っていても拒否する
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claimsWithTTL(time.Hour))
	signed, err := tok.SignedString([]byte("secret"))
	assert.NoError(t, err)

	_, err = auth.Parse(signed, "secret")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParse_Garbage(t *testing.T) {
	_, err := auth.Parse("not.a.jwt", "secret")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
