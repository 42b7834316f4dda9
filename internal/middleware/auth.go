package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/telbook/telbook-backend/internal/apperr"
	"github.com/telbook/telbook-backend/internal/services"
)

type contextKey string

const identityKey contextKey = "admin_identity"

// extractBearerToken pulls the token out of an "Authorization: Bearer x"
// header. Returns "" when the header is missing or malformed.
func extractBearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

// RequireAdmin gates a route subtree behind bearer-token verification.
// On success the admin username is stored in the request context.
func RequireAdmin(auth *services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r.Header.Get("Authorization"))
			if token == "" {
				unauthorized(w, "Authentication required")
				return
			}

			subject, err := auth.Verify(token)
			if err != nil {
				if errors.Is(err, apperr.ErrExpiredToken) {
					unauthorized(w, apperr.ErrExpiredToken.Message)
					return
				}
				unauthorized(w, apperr.ErrInvalidToken.Message)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminUser returns the authenticated admin username from the request
// context, if RequireAdmin ran.
func AdminUser(r *http.Request) (string, bool) {
	subject, ok := r.Context().Value(identityKey).(string)
	return subject, ok
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}
