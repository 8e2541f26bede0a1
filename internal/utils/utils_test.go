package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, CheckPassword(hash, "s3cret"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestNewAccessToken_Claims(t *testing.T) {
	const secret = "test-secret"

	access, err := NewAccessToken(secret, "user-1", "user1@example.com", 15)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), access.Exp, 5*time.Second)

	tok, err := jwt.Parse(access.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims, ok := tok.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "user-1", claims["sub"])
	assert.Equal(t, "user1@example.com", claims["email"])
}

func TestNewAccessToken_RejectsWrongSecret(t *testing.T) {
	access, err := NewAccessToken("right", "user-1", "user1@example.com", 15)
	require.NoError(t, err)

	_, err = jwt.Parse(access.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("wrong"), nil
	})
	assert.Error(t, err)
}
