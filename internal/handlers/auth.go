package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/telbook/telbook-backend/internal/apperr"
	"github.com/telbook/telbook-backend/internal/middleware"
	"github.com/telbook/telbook-backend/internal/services"
)

var authService *services.AuthService

// InitAuthService wires the auth service into the handlers package. Called
// once at startup.
func InitAuthService(s *services.AuthService) {
	authService = s
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is the successful login body.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// MeResponse is the body of GET /api/auth/me.
type MeResponse struct {
	Username string `json:"username"`
}

// Login authenticates the admin and returns a bearer token.
func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("Invalid request body"))
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		writeError(w, apperr.Validation("Username and password are required"))
		return
	}

	token, err := authService.Login(req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Me returns the identity of the authenticated caller.
func Me(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.AdminUser(r)
	if !ok {
		writeError(w, apperr.ErrInvalidToken)
		return
	}

	writeJSON(w, http.StatusOK, MeResponse{Username: username})
}
