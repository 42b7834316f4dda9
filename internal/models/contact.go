package models

import "time"

// Contact is one telephone-directory entry. The ID is a zero-padded
// sequential string ("0001", "0002", ...) assigned by the server and is
// immutable once created.
type Contact struct {
	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`

	Name        string `bson:"name" json:"name"`
	Extension   string `bson:"extension,omitempty" json:"extension,omitempty"`
	Company     string `bson:"company,omitempty" json:"company,omitempty"`
	Department  string `bson:"department,omitempty" json:"department,omitempty"`
	Designation string `bson:"designation,omitempty" json:"designation,omitempty"`
	Mobile      string `bson:"mobile,omitempty" json:"mobile,omitempty"`
	Landline    string `bson:"landline,omitempty" json:"landline,omitempty"`
	Email       string `bson:"email,omitempty" json:"email,omitempty"`
	Website     string `bson:"website,omitempty" json:"website,omitempty"`

	Languages []string `bson:"languages" json:"languages"`
	Tags      []string `bson:"tags" json:"tags"`
	Comments  string   `bson:"comments,omitempty" json:"comments,omitempty"`

	// Expose controls public visibility of the entry.
	Expose bool `bson:"expose" json:"expose"`
	// IsERT marks Emergency Response Team members.
	IsERT bool `bson:"is_ert" json:"is_ert"`
	// IsThirdParty marks contacts belonging to outside companies.
	IsThirdParty bool `bson:"is_third_party" json:"is_third_party"`

	// ProfilePicture is a public URL once uploaded (or a raw data URI if no
	// image storage is configured).
	ProfilePicture string `bson:"profile_picture,omitempty" json:"profile_picture,omitempty"`
}
