package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/telbook/telbook-backend/internal/apperr"
	"github.com/telbook/telbook-backend/internal/database"
	"github.com/telbook/telbook-backend/internal/models"
)

// SuggestionInput is the public submission payload. Languages and tags are
// comma-separated strings, matching the public form.
type SuggestionInput struct {
	Type        string `json:"type"`
	ContactID   string `json:"contact_id"`
	Name        string `json:"name"`
	Extension   string `json:"extension"`
	Company     string `json:"company"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
	Mobile      string `json:"mobile"`
	Landline    string `json:"landline"`
	Email       string `json:"email"`
	Website     string `json:"website"`
	Languages   string `json:"languages"`
	Tags        string `json:"tags"`
	Comments    string `json:"comments"`
}

// SubmitSuggestion validates and stores a public suggestion as a pending
// record. Review happens out-of-band; nothing here mutates contacts.
func SubmitSuggestion(ctx context.Context, in SuggestionInput, ipAddress string) (*models.Suggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if in.Type != models.SuggestionTypeNew && in.Type != models.SuggestionTypeEdit {
		return nil, apperr.Validation("Suggestion type must be 'new' or 'edit'")
	}
	if in.Type == models.SuggestionTypeEdit && strings.TrimSpace(in.ContactID) == "" {
		return nil, apperr.Validation("Contact ID is required for edit suggestions")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.Validation("Name is required")
	}

	suggestion := models.Suggestion{
		ID:          uuid.NewString(),
		ReceivedAt:  time.Now().UTC(),
		Type:        in.Type,
		ContactID:   strings.TrimSpace(in.ContactID),
		Name:        strings.TrimSpace(in.Name),
		Extension:   in.Extension,
		Company:     in.Company,
		Department:  in.Department,
		Designation: in.Designation,
		Mobile:      in.Mobile,
		Landline:    in.Landline,
		Email:       in.Email,
		Website:     in.Website,
		Languages:   in.Languages,
		Tags:        in.Tags,
		Comments:    in.Comments,
		IPAddress:   ipAddress,
	}

	if _, err := database.Suggestions().InsertOne(ctx, suggestion); err != nil {
		return nil, apperr.Unavailable("Failed to submit suggestion", err)
	}

	return &suggestion, nil
}

// ListSuggestions returns all stored suggestions, newest first, for admin
// review.
func ListSuggestions(ctx context.Context) ([]models.Suggestion, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	col := database.Suggestions()

	total, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, apperr.Unavailable("Failed to fetch suggestions", err)
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "received_at", Value: -1}})

	cursor, err := col.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, 0, apperr.Unavailable("Failed to fetch suggestions", err)
	}
	defer cursor.Close(ctx)

	suggestions := make([]models.Suggestion, 0)
	if err := cursor.All(ctx, &suggestions); err != nil {
		return nil, 0, apperr.Unavailable("Failed to fetch suggestions", err)
	}

	return suggestions, total, nil
}
