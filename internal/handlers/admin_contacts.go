package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/telbook/telbook-backend/internal/apperr"
	"github.com/telbook/telbook-backend/internal/config"
	"github.com/telbook/telbook-backend/internal/models"
	"github.com/telbook/telbook-backend/internal/services"
)

var cloudinaryService *services.CloudinaryService

// InitCloudinaryService wires up profile-picture uploads. Optional; without
// it inline images are stored verbatim.
func InitCloudinaryService(cfg *config.Config) error {
	service, err := services.NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return err
	}
	cloudinaryService = service
	return nil
}

// DeleteContactResponse is the body of DELETE /api/admin/contacts/{id}.
type DeleteContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ListSuggestionsResponse is the body of GET /api/admin/suggestions.
type ListSuggestionsResponse struct {
	Suggestions []models.Suggestion `json:"suggestions"`
	Total       int64               `json:"total"`
}

// uploadProfilePicture swaps an inline base64 image for a hosted URL when
// Cloudinary is configured. Upload failures fall back to storing the inline
// value so a broken image pipeline never blocks a directory edit.
func uploadProfilePicture(r *http.Request, picture, contactID string) string {
	if picture == "" || cloudinaryService == nil || !services.IsDataURI(picture) {
		return picture
	}

	url, err := cloudinaryService.UploadProfilePicture(r.Context(), picture, contactID)
	if err != nil {
		log.Printf("profile picture upload failed for contact %s: %v", contactID, err)
		return picture
	}
	return url
}

// CreateContact handles POST /api/admin/contacts.
func CreateContact(w http.ResponseWriter, r *http.Request) {
	var in services.ContactInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, apperr.Validation("Invalid request body"))
		return
	}

	contact, err := services.CreateContact(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}

	// The picture keys off the assigned ID, so the upload happens after
	// insert and is patched in if it changed anything.
	if hosted := uploadProfilePicture(r, contact.ProfilePicture, contact.ID); hosted != contact.ProfilePicture {
		updated, err := services.UpdateContact(r.Context(), contact.ID, services.ContactUpdate{ProfilePicture: &hosted})
		if err == nil {
			contact = updated
		}
	}

	writeJSON(w, http.StatusCreated, contact)
}

// UpdateContact handles PUT /api/admin/contacts/{id}.
func UpdateContact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var upd services.ContactUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, apperr.Validation("Invalid request body"))
		return
	}

	if upd.ProfilePicture != nil {
		hosted := uploadProfilePicture(r, *upd.ProfilePicture, id)
		upd.ProfilePicture = &hosted
	}

	contact, err := services.UpdateContact(r.Context(), id, upd)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contact)
}

// DeleteContact handles DELETE /api/admin/contacts/{id}.
func DeleteContact(w http.ResponseWriter, r *http.Request) {
	if err := services.DeleteContact(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, DeleteContactResponse{
		Success: true,
		Message: "Contact deleted successfully",
	})
}

// decodeFlagBody reads an optional {"<field>": bool} body. An empty body
// means "flip the stored value".
func decodeFlagBody(r *http.Request, field string) (*bool, error) {
	body := make(map[string]*bool)
	err := json.NewDecoder(r.Body).Decode(&body)
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Validation("Invalid request body")
	}
	return body[field], nil
}

func toggleFlag(w http.ResponseWriter, r *http.Request, flag string) {
	value, err := decodeFlagBody(r, flag)
	if err != nil {
		writeError(w, err)
		return
	}

	contact, err := services.ToggleFlag(r.Context(), chi.URLParam(r, "id"), flag, value)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contact)
}

// ToggleERT handles PATCH /api/admin/contacts/{id}/ert.
func ToggleERT(w http.ResponseWriter, r *http.Request) {
	toggleFlag(w, r, services.FlagERT)
}

// ToggleExpose handles PATCH /api/admin/contacts/{id}/expose.
func ToggleExpose(w http.ResponseWriter, r *http.Request) {
	toggleFlag(w, r, services.FlagExpose)
}

// ToggleThirdParty handles PATCH /api/admin/contacts/{id}/third-party.
func ToggleThirdParty(w http.ResponseWriter, r *http.Request) {
	toggleFlag(w, r, services.FlagThirdParty)
}

// ListSuggestions handles GET /api/admin/suggestions.
func ListSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, total, err := services.ListSuggestions(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ListSuggestionsResponse{
		Suggestions: suggestions,
		Total:       total,
	})
}
