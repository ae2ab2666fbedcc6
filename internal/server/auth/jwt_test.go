package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	secret := []byte("refresh-secret")

	token, err := GenerateToken(10000001, "a@x.com", 54321, secret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, int64(10000001), claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, 54321, claims.ActivationCode)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := GenerateToken(1, "a@x.com", 10000, []byte("secret-a"), time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, []byte("secret-b"))
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	secret := []byte("s")
	token, err := GenerateToken(1, "a@x.com", 10000, secret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, secret)
	assert.Error(t, err)
}

func TestParse_Malformed(t *testing.T) {
	_, err := ParseToken("not-a-jwt", []byte("s"))
	assert.Error(t, err)
}

func TestAccessAndRefreshAreIndependent(t *testing.T) {
	access, err := GenerateToken(1, "a@x.com", 10000, []byte("access-secret"), 24*time.Hour)
	require.NoError(t, err)
	refresh, err := GenerateToken(1, "a@x.com", 10000, []byte("refresh-secret"), 30*24*time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(access, []byte("refresh-secret"))
	assert.Error(t, err, "access token must not verify against the refresh secret")

	_, err = ParseToken(refresh, []byte("refresh-secret"))
	assert.NoError(t, err)
}
