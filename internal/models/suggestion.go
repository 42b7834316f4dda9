package models

import "time"

// Suggestion types.
const (
	SuggestionTypeNew  = "new"
	SuggestionTypeEdit = "edit"
)

// Suggestion is an unauthenticated public proposal for a new contact or a
// correction to an existing one. Stored as-is for out-of-band admin review;
// no further lifecycle.
type Suggestion struct {
	ID         string    `bson:"_id" json:"id"`
	ReceivedAt time.Time `bson:"received_at" json:"received_at"`

	// Type is "new" or "edit". ContactID is set for edits.
	Type      string `bson:"type" json:"type"`
	ContactID string `bson:"contact_id,omitempty" json:"contact_id,omitempty"`

	Name        string `bson:"name" json:"name"`
	Extension   string `bson:"extension,omitempty" json:"extension,omitempty"`
	Company     string `bson:"company,omitempty" json:"company,omitempty"`
	Department  string `bson:"department,omitempty" json:"department,omitempty"`
	Designation string `bson:"designation,omitempty" json:"designation,omitempty"`
	Mobile      string `bson:"mobile,omitempty" json:"mobile,omitempty"`
	Landline    string `bson:"landline,omitempty" json:"landline,omitempty"`
	Email       string `bson:"email,omitempty" json:"email,omitempty"`
	Website     string `bson:"website,omitempty" json:"website,omitempty"`

	// Languages and tags arrive as comma-separated strings from the public
	// form and are stored verbatim.
	Languages string `bson:"languages,omitempty" json:"languages,omitempty"`
	Tags      string `bson:"tags,omitempty" json:"tags,omitempty"`
	Comments  string `bson:"comments,omitempty" json:"comments,omitempty"`

	// IPAddress of the submitter, for abuse tracing (not personal info).
	IPAddress string `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
}
