package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/mlevich/noteful-server/models"
)

// UserRepository persists user accounts. Username uniqueness is enforced by
// the database; a duplicate insert surfaces as [ErrUsernameAlreadyExists].
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
}

// FolderRepository persists folders with per-owner name uniqueness.
// Every method except CreateFolder is scoped by both entity id and owner id,
// so one user can never read or mutate another user's folders.
type FolderRepository interface {
	CreateFolder(ctx context.Context, folder models.Folder) (models.Folder, error)
	GetFolders(ctx context.Context, userID string) ([]models.Folder, error)
	GetFolderByID(ctx context.Context, folderID, userID string) (models.Folder, error)
	UpdateFolder(ctx context.Context, folder models.Folder) (models.Folder, error)

	// DeleteFolder removes the folder and clears the folder reference on
	// every note of the same owner that pointed at it. Notes themselves
	// survive the deletion.
	DeleteFolder(ctx context.Context, folderID, userID string) error

	// CountOwned reports how many folders match both the given id and
	// owner; used by ownership validation, possible results are 0 and 1.
	CountOwned(ctx context.Context, folderID, userID string) (int64, error)
}

// TagRepository persists tags with per-owner name uniqueness.
type TagRepository interface {
	CreateTag(ctx context.Context, tag models.Tag) (models.Tag, error)
	GetTags(ctx context.Context, userID string) ([]models.Tag, error)
	GetTagByID(ctx context.Context, tagID, userID string) (models.Tag, error)
	UpdateTag(ctx context.Context, tag models.Tag) (models.Tag, error)

	// DeleteTag removes the tag and detaches it from every note that
	// referenced it, so note tag sets never point at a deleted tag.
	DeleteTag(ctx context.Context, tagID, userID string) error

	// CountOwned reports how many of the given tag ids resolve to tags of
	// the given owner. Duplicate ids in the input are not deduplicated:
	// the count is over matching rows, so duplicates can never inflate it.
	CountOwned(ctx context.Context, tagIDs []string, userID string) (int64, error)
}

// NoteRepository persists notes together with their tag reference sets.
type NoteRepository interface {
	CreateNote(ctx context.Context, note models.Note) (models.Note, error)
	GetNotes(ctx context.Context, filter models.NoteFilter) ([]models.Note, error)
	GetNoteByID(ctx context.Context, noteID, userID string) (models.Note, error)
	UpdateNote(ctx context.Context, note models.Note) (models.Note, error)
	DeleteNote(ctx context.Context, noteID, userID string) error
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying. See [PostgresErrorClassifier] for the PostgreSQL implementation.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
