package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/telbook/telbook-backend/internal/apperr"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto HTTP statuses. Anything
// unclassified becomes a generic 500; internals are logged, never returned.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status = http.StatusBadRequest
		message = apperr.MessageOf(err)
	case apperr.KindNotFound:
		status = http.StatusNotFound
		message = apperr.MessageOf(err)
	case apperr.KindUnauthorized:
		status = http.StatusUnauthorized
		message = apperr.MessageOf(err)
	case apperr.KindUnavailable:
		status = http.StatusServiceUnavailable
		message = apperr.MessageOf(err)
		log.Printf("store unavailable: %v", err)
	default:
		log.Printf("unhandled error: %v", err)
	}

	writeJSON(w, status, errorResponse{Success: false, Message: message})
}
