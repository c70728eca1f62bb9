package models

import "time"

// Tag is a label attached to any number of an owner's notes.
// The (name, user_id) pair is unique per owner, independently of folders.
type Tag struct {
	// TagID is the unique identifier of the tag (UUID).
	TagID string `json:"id"`

	// UserID identifies the owning user.
	UserID string `json:"userId"`

	// Name is the display name, unique per owner.
	Name string `json:"name"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Tag model.
func (t Tag) TableName() string {
	return "tags"
}

// TagRequest is the payload accepted by tag create/update endpoints.
type TagRequest struct {
	Name string `json:"name"`
}
