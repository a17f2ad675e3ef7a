// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *TokenService {
	t.Helper()
	service, err := NewTokenService("test-secret", "libris")
	require.NoError(t, err)
	return service
}

func TestNewTokenService_RequiresSecret(t *testing.T) {
	_, err := NewTokenService("", "libris")
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestGenerateAndVerify(t *testing.T) {
	service := newTestService(t)
	before := time.Now().Truncate(time.Second)

	token, err := service.GenerateAccessToken("admin", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, "libris", claims.Issuer)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, before.Add(time.Hour), claims.ExpiresAt.Time, 2*time.Second)
}

func TestVerifyToken_Rejects(t *testing.T) {
	service := newTestService(t)

	expired := newTestService(t)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.GenerateAccessToken("admin", time.Hour)
	require.NoError(t, err)

	otherSecret, err := NewTokenService("another-secret", "libris")
	require.NoError(t, err)
	forgedToken, err := otherSecret.GenerateAccessToken("admin", time.Hour)
	require.NoError(t, err)

	otherIssuer, err := NewTokenService("test-secret", "someone-else")
	require.NoError(t, err)
	foreignToken, err := otherIssuer.GenerateAccessToken("admin", time.Hour)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "admin",
		Issuer:  "libris",
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	wrongAlgorithm, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "admin",
		Issuer:    "libris",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "invalid.token.here"},
		{"empty", ""},
		{"expired", expiredToken},
		{"bad_signature", forgedToken},
		{"wrong_issuer", foreignToken},
		{"missing_exp", noExpiry},
		{"wrong_algorithm", wrongAlgorithm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.VerifyToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}
