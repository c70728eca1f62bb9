package models

import "time"

// Folder groups notes for a single owner. The (name, user_id) pair is
// unique, enforced by the database rather than application-level locking.
type Folder struct {
	// FolderID is the unique identifier of the folder (UUID).
	FolderID string `json:"id"`

	// UserID identifies the owning user. Folders are never shared:
	// every read and write is scoped to this owner.
	UserID string `json:"userId"`

	// Name is the display name, unique per owner.
	Name string `json:"name"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Folder model.
func (f Folder) TableName() string {
	return "folders"
}

// FolderRequest is the payload accepted by folder create/update endpoints.
type FolderRequest struct {
	Name string `json:"name"`
}
