package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/telbook/telbook-backend/internal/apperr"
	"github.com/telbook/telbook-backend/internal/database"
	"github.com/telbook/telbook-backend/internal/models"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100

	createIDRetries = 3
)

// ListParams are the decoded query parameters for listing contacts.
// All filters are optional and combine with AND.
type ListParams struct {
	Search            string
	Tag               string
	Language          string
	IsERT             *bool
	IsThirdParty      *bool
	ExcludeThirdParty bool
	SortBy            string
	Page              int
	Limit             int
}

// ContactInput carries the caller-supplied fields for creating a contact.
type ContactInput struct {
	Name           string   `json:"name"`
	Extension      string   `json:"extension"`
	Company        string   `json:"company"`
	Department     string   `json:"department"`
	Designation    string   `json:"designation"`
	Mobile         string   `json:"mobile"`
	Landline       string   `json:"landline"`
	Email          string   `json:"email"`
	Website        string   `json:"website"`
	Languages      []string `json:"languages"`
	Tags           []string `json:"tags"`
	Comments       string   `json:"comments"`
	Expose         *bool    `json:"expose"`
	IsERT          bool     `json:"is_ert"`
	IsThirdParty   bool     `json:"is_third_party"`
	ProfilePicture string   `json:"profile_picture"`
}

// ContactUpdate carries a partial update; nil fields are left untouched.
type ContactUpdate struct {
	Name           *string   `json:"name"`
	Extension      *string   `json:"extension"`
	Company        *string   `json:"company"`
	Department     *string   `json:"department"`
	Designation    *string   `json:"designation"`
	Mobile         *string   `json:"mobile"`
	Landline       *string   `json:"landline"`
	Email          *string   `json:"email"`
	Website        *string   `json:"website"`
	Languages      *[]string `json:"languages"`
	Tags           *[]string `json:"tags"`
	Comments       *string   `json:"comments"`
	Expose         *bool     `json:"expose"`
	IsERT          *bool     `json:"is_ert"`
	IsThirdParty   *bool     `json:"is_third_party"`
	ProfilePicture *string   `json:"profile_picture"`
}

// ciRegex builds a case-insensitive substring regex for v.
func ciRegex(v string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(v), Options: "i"}
}

// ciExactRegex builds a case-insensitive whole-value regex for v, so a tag
// filter "IT" matches "it" but not "Italian".
func ciExactRegex(v string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(v) + "$", Options: "i"}
}

// buildContactFilter composes the Mongo query document for p. All supplied
// predicates AND together.
func buildContactFilter(p ListParams) bson.M {
	filter := bson.M{}

	if s := strings.TrimSpace(p.Search); s != "" {
		re := ciRegex(s)
		filter["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"department": re},
			bson.M{"designation": re},
			bson.M{"tags": re},
		}
	}

	if t := strings.TrimSpace(p.Tag); t != "" {
		filter["tags"] = ciExactRegex(t)
	}

	if l := strings.TrimSpace(p.Language); l != "" {
		filter["languages"] = ciExactRegex(l)
	}

	if p.IsERT != nil {
		filter["is_ert"] = *p.IsERT
	}

	if p.IsThirdParty != nil {
		filter["is_third_party"] = *p.IsThirdParty
	} else if p.ExcludeThirdParty {
		filter["is_third_party"] = bson.M{"$ne": true}
	}

	return filter
}

// buildContactSort returns the sort document for sortBy. Extension sorts
// descending (newest phone banks first); anything unknown falls back to ID
// order, which for sequential IDs is insertion order. ID is always the
// tie-break so pages are stable.
func buildContactSort(sortBy string) bson.D {
	switch sortBy {
	case "name":
		return bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}
	case "department":
		return bson.D{{Key: "department", Value: 1}, {Key: "_id", Value: 1}}
	case "extension":
		return bson.D{{Key: "extension", Value: -1}, {Key: "_id", Value: 1}}
	default:
		return bson.D{{Key: "_id", Value: 1}}
	}
}

// ClampPage clamps page to >= 1.
func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// ClampLimit clamps limit to [1, MaxPageLimit], defaulting when unset.
func ClampLimit(limit int) int {
	if limit < 1 {
		return DefaultPageLimit
	}
	if limit > MaxPageLimit {
		return MaxPageLimit
	}
	return limit
}

// ListContacts returns one page of contacts matching p plus the total match
// count (pre-pagination). An empty result is (empty slice, 0), not an error;
// a page past the end is an empty slice with the true total.
func ListContacts(ctx context.Context, p ListParams) ([]models.Contact, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := buildContactFilter(p)
	col := database.Contacts()

	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, apperr.Unavailable("Failed to fetch contacts", err)
	}

	page := ClampPage(p.Page)
	limit := ClampLimit(p.Limit)
	skip := (page - 1) * limit

	findOptions := options.Find().
		SetSort(buildContactSort(p.SortBy)).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, apperr.Unavailable("Failed to fetch contacts", err)
	}
	defer cursor.Close(ctx)

	contacts := make([]models.Contact, 0, limit)
	if err := cursor.All(ctx, &contacts); err != nil {
		return nil, 0, apperr.Unavailable("Failed to fetch contacts", err)
	}

	return contacts, total, nil
}

// GetContact fetches a single contact by ID.
func GetContact(ctx context.Context, id string) (*models.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var contact models.Contact
	err := database.Contacts().FindOne(ctx, bson.M{"_id": id}).Decode(&contact)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Contact not found")
		}
		return nil, apperr.Unavailable("Failed to fetch contact", err)
	}

	return &contact, nil
}

// nextContactID generates the next sequential zero-padded contact ID.
func nextContactID(ctx context.Context) (string, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: -1}})

	var last struct {
		ID string `bson:"_id"`
	}
	err := database.Contacts().FindOne(ctx, bson.M{}, opts).Decode(&last)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "0001", nil
	}
	if err != nil {
		return "", err
	}

	if n, convErr := strconv.Atoi(last.ID); convErr == nil {
		return fmt.Sprintf("%04d", n+1), nil
	}

	// Legacy non-numeric IDs in the collection; fall back to counting.
	count, err := database.Contacts().CountDocuments(ctx, bson.M{})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", count+1), nil
}

// emailTaken reports whether another contact (excluding excludeID, if set)
// already holds email.
func emailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	filter := bson.M{"email": email}
	if excludeID != "" {
		filter["_id"] = bson.M{"$ne": excludeID}
	}

	err := database.Contacts().FindOne(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CreateContact validates input, assigns the next sequential ID and inserts
// the contact with created_at = updated_at = now. ID assignment races are
// absorbed by retrying on duplicate-key errors.
func CreateContact(ctx context.Context, in ContactInput) (*models.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.Validation("Name is required")
	}

	if in.Email != "" {
		taken, err := emailTaken(ctx, in.Email, "")
		if err != nil {
			return nil, apperr.Unavailable("Failed to create contact", err)
		}
		if taken {
			return nil, apperr.Validation(fmt.Sprintf("A contact with email '%s' already exists", in.Email))
		}
	}

	expose := true
	if in.Expose != nil {
		expose = *in.Expose
	}
	languages := in.Languages
	if languages == nil {
		languages = []string{}
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	var lastErr error
	for attempt := 0; attempt < createIDRetries; attempt++ {
		id, err := nextContactID(ctx)
		if err != nil {
			return nil, apperr.Unavailable("Failed to create contact", err)
		}

		now := time.Now().UTC()
		contact := models.Contact{
			ID:             id,
			CreatedAt:      now,
			UpdatedAt:      now,
			Name:           strings.TrimSpace(in.Name),
			Extension:      in.Extension,
			Company:        in.Company,
			Department:     in.Department,
			Designation:    in.Designation,
			Mobile:         in.Mobile,
			Landline:       in.Landline,
			Email:          in.Email,
			Website:        in.Website,
			Languages:      languages,
			Tags:           tags,
			Comments:       in.Comments,
			Expose:         expose,
			IsERT:          in.IsERT,
			IsThirdParty:   in.IsThirdParty,
			ProfilePicture: in.ProfilePicture,
		}

		_, err = database.Contacts().InsertOne(ctx, contact)
		if err == nil {
			return &contact, nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Unavailable("Failed to create contact", err)
		}
		// Another create won the ID; regenerate and try again.
		lastErr = err
	}

	return nil, apperr.Unavailable("Failed to create contact", lastErr)
}

// buildUpdateDoc turns a partial update into a $set document. Returns a
// Validation error when name is supplied but empty.
func buildUpdateDoc(upd ContactUpdate, now time.Time) (bson.M, error) {
	set := bson.M{"updated_at": now}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, apperr.Validation("Name cannot be empty")
		}
		set["name"] = name
	}
	if upd.Extension != nil {
		set["extension"] = *upd.Extension
	}
	if upd.Company != nil {
		set["company"] = *upd.Company
	}
	if upd.Department != nil {
		set["department"] = *upd.Department
	}
	if upd.Designation != nil {
		set["designation"] = *upd.Designation
	}
	if upd.Mobile != nil {
		set["mobile"] = *upd.Mobile
	}
	if upd.Landline != nil {
		set["landline"] = *upd.Landline
	}
	if upd.Email != nil {
		set["email"] = *upd.Email
	}
	if upd.Website != nil {
		set["website"] = *upd.Website
	}
	if upd.Languages != nil {
		set["languages"] = *upd.Languages
	}
	if upd.Tags != nil {
		set["tags"] = *upd.Tags
	}
	if upd.Comments != nil {
		set["comments"] = *upd.Comments
	}
	if upd.Expose != nil {
		set["expose"] = *upd.Expose
	}
	if upd.IsERT != nil {
		set["is_ert"] = *upd.IsERT
	}
	if upd.IsThirdParty != nil {
		set["is_third_party"] = *upd.IsThirdParty
	}
	if upd.ProfilePicture != nil {
		set["profile_picture"] = *upd.ProfilePicture
	}

	return set, nil
}

// UpdateContact merges the supplied fields over the stored document and
// refreshes updated_at. created_at is never touched.
func UpdateContact(ctx context.Context, id string, upd ContactUpdate) (*models.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if upd.Email != nil && *upd.Email != "" {
		taken, err := emailTaken(ctx, *upd.Email, id)
		if err != nil {
			return nil, apperr.Unavailable("Failed to update contact", err)
		}
		if taken {
			return nil, apperr.Validation(fmt.Sprintf("A contact with email '%s' already exists", *upd.Email))
		}
	}

	set, err := buildUpdateDoc(upd, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var contact models.Contact
	err = database.Contacts().
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).
		Decode(&contact)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Contact not found")
		}
		return nil, apperr.Unavailable("Failed to update contact", err)
	}

	return &contact, nil
}

// DeleteContact removes a contact permanently. No tombstone.
func DeleteContact(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := database.Contacts().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Unavailable("Failed to delete contact", err)
	}
	if result.DeletedCount == 0 {
		return apperr.NotFound("Contact not found")
	}

	return nil
}

// Toggleable contact flags.
const (
	FlagERT        = "is_ert"
	FlagExpose     = "expose"
	FlagThirdParty = "is_third_party"
)

// ToggleFlag sets a boolean flag on a contact, or flips the stored value
// when value is nil, refreshing updated_at either way.
func ToggleFlag(ctx context.Context, id, flag string, value *bool) (*models.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var current models.Contact
	err := database.Contacts().FindOne(ctx, bson.M{"_id": id}).Decode(&current)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Contact not found")
		}
		return nil, apperr.Unavailable("Failed to update contact", err)
	}

	var next bool
	switch flag {
	case FlagERT:
		next = !current.IsERT
	case FlagExpose:
		next = !current.Expose
	case FlagThirdParty:
		next = !current.IsThirdParty
	default:
		return nil, apperr.Validation("Unknown contact flag")
	}
	if value != nil {
		next = *value
	}

	set := bson.M{flag: next, "updated_at": time.Now().UTC()}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var contact models.Contact
	err = database.Contacts().
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).
		Decode(&contact)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Contact not found")
		}
		return nil, apperr.Unavailable("Failed to update contact", err)
	}

	return &contact, nil
}

// DistinctTags returns the deduplicated, sorted set of all tags in use.
func DistinctTags(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	values, err := database.Contacts().Distinct(ctx, "tags", bson.M{})
	if err != nil {
		return nil, apperr.Unavailable("Failed to fetch tags", err)
	}

	return collectStrings(values, ""), nil
}

// DistinctLanguages returns the deduplicated, sorted set of all languages in
// use, excluding English (the directory default, so not a useful facet).
func DistinctLanguages(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	values, err := database.Contacts().Distinct(ctx, "languages", bson.M{})
	if err != nil {
		return nil, apperr.Unavailable("Failed to fetch languages", err)
	}

	return collectStrings(values, "English"), nil
}

// collectStrings filters the driver's []interface{} distinct result down to
// non-empty strings, dropping exclude, and sorts them.
func collectStrings(values []interface{}, exclude string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok || s == "" || s == exclude {
			continue
		}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
