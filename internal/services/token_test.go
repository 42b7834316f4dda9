package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telbook/telbook-backend/internal/apperr"
	"github.com/telbook/telbook-backend/internal/config"
	"github.com/telbook/telbook-backend/pkg/utils"
)

func testAuthConfig(t *testing.T, expireMinutes int) *config.Config {
	t.Helper()
	hash, err := utils.HashPassword("correct horse battery staple")
	require.NoError(t, err)

	return &config.Config{
		AdminUsername:      "admin",
		AdminPasswordHash:  hash,
		JWTSecret:          "test-signing-secret",
		TokenExpireMinutes: expireMinutes,
	}
}

func TestAuthService_LoginAndVerify(t *testing.T) {
	auth := NewAuthService(testAuthConfig(t, 60))

	token, err := auth.Login("admin", "correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := auth.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", subject)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	auth := NewAuthService(testAuthConfig(t, 60))

	token, err := auth.Login("admin", "wrong password")
	require.ErrorIs(t, err, apperr.ErrInvalidCredentials)
	assert.Empty(t, token)
}

func TestAuthService_LoginWrongUsername(t *testing.T) {
	auth := NewAuthService(testAuthConfig(t, 60))

	_, err := auth.Login("root", "correct horse battery staple")
	require.ErrorIs(t, err, apperr.ErrInvalidCredentials)
}

func TestAuthService_VerifyExpiredToken(t *testing.T) {
	// Negative TTL issues tokens that are already expired.
	auth := NewAuthService(testAuthConfig(t, -1))

	token, err := auth.IssueToken("admin")
	require.NoError(t, err)

	_, err = auth.Verify(token)
	require.ErrorIs(t, err, apperr.ErrExpiredToken)
}

func TestAuthService_VerifyGarbage(t *testing.T) {
	auth := NewAuthService(testAuthConfig(t, 60))

	_, err := auth.Verify("not.a.jwt")
	require.ErrorIs(t, err, apperr.ErrInvalidToken)

	_, err = auth.Verify("")
	require.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestAuthService_VerifyRejectsForeignSignature(t *testing.T) {
	auth := NewAuthService(testAuthConfig(t, 60))

	other := NewAuthService(&config.Config{
		AdminUsername:      "admin",
		AdminPasswordHash:  "$argon2id$v=19$m=65536,t=3,p=2$AAAA$AAAA",
		JWTSecret:          "some-other-secret",
		TokenExpireMinutes: 60,
	})

	token, err := other.IssueToken("admin")
	require.NoError(t, err)

	_, err = auth.Verify(token)
	require.ErrorIs(t, err, apperr.ErrInvalidToken)
}

func TestAuthService_VerifyRejectsWrongSubject(t *testing.T) {
	auth := NewAuthService(testAuthConfig(t, 60))

	token, err := auth.IssueToken("someone-else")
	require.NoError(t, err)

	_, err = auth.Verify(token)
	require.ErrorIs(t, err, apperr.ErrInvalidToken)
}
