package services

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/telbook/telbook-backend/internal/apperr"
	"github.com/telbook/telbook-backend/internal/config"
	"github.com/telbook/telbook-backend/pkg/utils"
)

// AuthService validates the single configured admin identity and issues
// stateless HS256 bearer tokens. No sessions, no revocation list.
type AuthService struct {
	username     string
	passwordHash string
	secret       []byte
	ttl          time.Duration
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{
		username:     cfg.AdminUsername,
		passwordHash: cfg.AdminPasswordHash,
		secret:       []byte(cfg.JWTSecret),
		ttl:          time.Duration(cfg.TokenExpireMinutes) * time.Minute,
	}
}

// Login checks the credentials against the configured admin and returns a
// signed token. The username compare is constant-time, and the argon2
// verification runs even for an unknown username so both failure paths cost
// the same.
func (s *AuthService) Login(username, password string) (string, error) {
	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1

	passwordOK, err := utils.VerifyPassword(password, s.passwordHash)
	if err != nil {
		return "", apperr.ErrInvalidCredentials
	}

	if !usernameOK || !passwordOK {
		return "", apperr.ErrInvalidCredentials
	}

	return s.IssueToken(s.username)
}

// IssueToken signs a token for subject with the configured TTL.
func (s *AuthService) IssueToken(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the token subject.
// Expired tokens are reported distinctly from malformed or forged ones.
func (s *AuthService) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperr.ErrExpiredToken
		}
		return "", apperr.ErrInvalidToken
	}
	if !token.Valid || claims.Subject != s.username {
		return "", apperr.ErrInvalidToken
	}

	return claims.Subject, nil
}
