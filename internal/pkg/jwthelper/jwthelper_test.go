package jwthelper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	key := []byte("secret")

	token, expiresAt, err := GenerateToken(key, 42, "curl/8", 24*time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)

	claims, err := ParseToken(key, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.AdminID)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "curl/8", claims.UserAgent)
}

func TestParseToken_Rejects(t *testing.T) {
	key := []byte("secret")

	expired, _, err := GenerateToken(key, 1, "", -time.Minute)
	require.NoError(t, err)

	otherKey, _, err := GenerateToken([]byte("other"), 1, "", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "expired", token: expired},
		{name: "wrong key", token: otherKey},
		{name: "garbage", token: "not.a.token"},
		{name: "empty", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(key, tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestIssuer(t *testing.T) {
	issuer := NewIssuer([]byte("k"), time.Hour)

	token, expiresAt, err := issuer.Issue(7, "ua")
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := ParseToken([]byte("k"), token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.AdminID)
}
