package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/telbook/telbook-backend/internal/database"
)

// EnsureContactIndexes creates the indexes the list filters and sorts lean
// on. Safe to call on every startup; Mongo treats existing indexes as no-ops.
func EnsureContactIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "department", Value: 1}}},
		{Keys: bson.D{{Key: "extension", Value: 1}}},
		{Keys: bson.D{{Key: "email", Value: 1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
		{Keys: bson.D{{Key: "languages", Value: 1}}},
		{Keys: bson.D{{Key: "is_ert", Value: 1}}},
		{Keys: bson.D{{Key: "is_third_party", Value: 1}}},
		// Compound indexes for the common filter+sort combinations.
		{Keys: bson.D{{Key: "name", Value: 1}, {Key: "department", Value: 1}}},
		{Keys: bson.D{{Key: "is_third_party", Value: 1}, {Key: "name", Value: 1}}},
	}

	_, err := database.Contacts().Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return err
	}

	suggestionIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "received_at", Value: -1}}},
	}
	_, err = database.Suggestions().Indexes().CreateMany(ctx, suggestionIndexes)
	return err
}
