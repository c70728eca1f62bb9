package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/mlevich/noteful-server/models"
)

// AuthService handles account registration, credential verification, and
// the JWT token lifecycle. Credential verification happens only at login;
// every later request is authenticated purely from the token.
type AuthService interface {
	RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, username, password string) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	RefreshToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// OwnershipValidator confirms that client-supplied foreign references
// (folderId, tagIds) resolve to entities of the requesting user before a
// note write is committed.
type OwnershipValidator interface {
	// ValidateFolderOwnership succeeds when folderID is empty (the folder
	// is optional) or resolves to exactly one folder of ownerID.
	ValidateFolderOwnership(ctx context.Context, folderID, ownerID string) error

	// ValidateTagOwnership succeeds when tagIDs is empty or every id
	// resolves to exactly one tag of ownerID. Malformed ids fail before
	// any store access; duplicated ids fail the exact-count match.
	ValidateTagOwnership(ctx context.Context, tagIDs []string, ownerID string) error

	// ValidateNoteRefs runs both checks to completion and reports the
	// folder failure first when both fail.
	ValidateNoteRefs(ctx context.Context, folderID string, tagIDs []string, ownerID string) error
}

// FolderService exposes the owner-scoped folder CRUD surface.
type FolderService interface {
	GetFolders(ctx context.Context, userID string) ([]models.Folder, error)
	GetFolder(ctx context.Context, folderID, userID string) (models.Folder, error)
	CreateFolder(ctx context.Context, userID string, req models.FolderRequest) (models.Folder, error)
	UpdateFolder(ctx context.Context, folderID, userID string, req models.FolderRequest) (models.Folder, error)
	DeleteFolder(ctx context.Context, folderID, userID string) error
}

// TagService exposes the owner-scoped tag CRUD surface.
type TagService interface {
	GetTags(ctx context.Context, userID string) ([]models.Tag, error)
	GetTag(ctx context.Context, tagID, userID string) (models.Tag, error)
	CreateTag(ctx context.Context, userID string, req models.TagRequest) (models.Tag, error)
	UpdateTag(ctx context.Context, tagID, userID string, req models.TagRequest) (models.Tag, error)
	DeleteTag(ctx context.Context, tagID, userID string) error
}

// NoteService exposes the owner-scoped note CRUD surface. Every write runs
// the ownership validation of the supplied references before touching the
// note store.
type NoteService interface {
	GetNotes(ctx context.Context, filter models.NoteFilter) ([]models.Note, error)
	GetNote(ctx context.Context, noteID, userID string) (models.Note, error)
	CreateNote(ctx context.Context, userID string, req models.NoteRequest) (models.Note, error)
	UpdateNote(ctx context.Context, noteID, userID string, req models.NoteRequest) (models.Note, error)
	DeleteNote(ctx context.Context, noteID, userID string) error
}
