package fakeapi

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := GenerateToken(42, secret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.NotEmpty(t, claims.ID)
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(1, []byte("secret"), -time.Second)
	require.NoError(t, err)

	_, err = ParseToken(tok, []byte("secret"))
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(2, []byte("right-secret"), time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(tok, []byte("wrong-secret"))
	require.ErrorIs(t, err, jwt.ErrSignatureInvalid)
}

func TestGenerateToken_UniqueIDs(t *testing.T) {
	t.Parallel()

	a, err := GenerateToken(1, []byte("k"), time.Hour)
	require.NoError(t, err)
	b, err := GenerateToken(1, []byte("k"), time.Hour)
	require.NoError(t, err)

	ca, err := ParseToken(a, []byte("k"))
	require.NoError(t, err)
	cb, err := ParseToken(b, []byte("k"))
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}
