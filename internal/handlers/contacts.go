package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/telbook/telbook-backend/internal/models"
	"github.com/telbook/telbook-backend/internal/services"
)

// PaginationInfo describes one page of a list response.
type PaginationInfo struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

// ListContactsResponse is the body of GET /api/contacts.
type ListContactsResponse struct {
	Contacts   []models.Contact `json:"contacts"`
	Pagination PaginationInfo   `json:"pagination"`
}

// TagsResponse is the body of GET /api/tags.
type TagsResponse struct {
	Tags []string `json:"tags"`
}

// LanguagesResponse is the body of GET /api/languages.
type LanguagesResponse struct {
	Languages []string `json:"languages"`
}

// parseBoolParam parses an optional boolean query parameter; absent or
// unparsable values mean "filter not supplied".
func parseBoolParam(v string) *bool {
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}

func parseListParams(q url.Values) services.ListParams {
	p := services.ListParams{
		Search:   q.Get("search"),
		Tag:      q.Get("tag"),
		Language: q.Get("language"),
		SortBy:   q.Get("sort_by"),
	}

	p.IsERT = parseBoolParam(q.Get("is_ert"))
	p.IsThirdParty = parseBoolParam(q.Get("is_third_party"))
	if b := parseBoolParam(q.Get("exclude_third_party")); b != nil && *b {
		p.ExcludeThirdParty = true
	}

	p.Page, _ = strconv.Atoi(q.Get("page"))
	p.Limit, _ = strconv.Atoi(q.Get("limit"))

	return p
}

// ListContacts handles GET /api/contacts with filters and pagination.
func ListContacts(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r.URL.Query())

	contacts, total, err := services.ListContacts(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}

	page := services.ClampPage(params.Page)
	limit := services.ClampLimit(params.Limit)
	totalPages := (total + int64(limit) - 1) / int64(limit)

	writeJSON(w, http.StatusOK, ListContactsResponse{
		Contacts: contacts,
		Pagination: PaginationInfo{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

// GetContact handles GET /api/contacts/{id}.
func GetContact(w http.ResponseWriter, r *http.Request) {
	contact, err := services.GetContact(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contact)
}

// GetTags handles GET /api/tags.
func GetTags(w http.ResponseWriter, r *http.Request) {
	tags, err := services.DistinctTags(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, TagsResponse{Tags: tags})
}

// GetLanguages handles GET /api/languages.
func GetLanguages(w http.ResponseWriter, r *http.Request) {
	languages, err := services.DistinctLanguages(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, LanguagesResponse{Languages: languages})
}
