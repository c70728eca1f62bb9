package models

import "time"

// Note is the central entity of the system. A note may reference at most
// one folder and any number of tags, all belonging to the note's owner.
//
// FolderID is a soft reference: there is no foreign key behind it. The
// reference is validated against the owner at write time and actively
// cleared when the folder is deleted, so it never points at another user's
// folder but may briefly dangle between a concurrent validation and delete.
type Note struct {
	// NoteID is the unique identifier of the note (UUID).
	NoteID string `json:"id"`

	// UserID identifies the owning user.
	UserID string `json:"userId"`

	// Title is required and has no uniqueness constraint.
	Title string `json:"title"`

	// Content is the optional note body.
	Content string `json:"content"`

	// FolderID is the optional folder reference. Empty means the note is
	// not filed into any folder.
	FolderID string `json:"folderId,omitempty"`

	// TagIDs is the set of tag references. Cleared of any tag removed
	// from the system; never left pointing at a deleted tag.
	TagIDs []string `json:"tagIds"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Note model.
func (n Note) TableName() string {
	return "notes"
}

// NoteRequest is the payload accepted by note create/update endpoints.
// FolderID and TagIDs are client-supplied foreign references and must pass
// ownership validation before any write is committed.
type NoteRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	FolderID string   `json:"folderId"`
	TagIDs   []string `json:"tagIds"`
}

// NoteFilter narrows note listings. UserID is always set by the server
// from the authenticated identity, never by the client.
type NoteFilter struct {
	UserID string

	// FolderID, when non-empty, restricts the listing to one folder.
	FolderID string

	// SearchTerm, when non-empty, matches title or content
	// case-insensitively.
	SearchTerm string
}
