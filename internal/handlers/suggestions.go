package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/telbook/telbook-backend/internal/apperr"
	"github.com/telbook/telbook-backend/internal/services"
	"github.com/telbook/telbook-backend/pkg/clientip"
)

// SubmitSuggestionResponse is the body of POST /api/suggestions.
type SubmitSuggestionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

// SubmitSuggestion handles the public suggestion form. No auth.
func SubmitSuggestion(w http.ResponseWriter, r *http.Request) {
	var in services.SuggestionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, apperr.Validation("Invalid request body"))
		return
	}

	suggestion, err := services.SubmitSuggestion(r.Context(), in, clientip.RealClientIP(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, SubmitSuggestionResponse{
		Success: true,
		Message: "Suggestion received. Thank you!",
		ID:      suggestion.ID,
	})
}
