package store

import "github.com/mlevich/noteful-server/internal/logger"

// Repositories aggregates all persistence interfaces so that the service
// layer can be wired from a single value.
type Repositories struct {
	Users   UserRepository
	Folders FolderRepository
	Tags    TagRepository
	Notes   NoteRepository
}

// NewRepositories constructs all repositories over one shared database
// connection pool.
func NewRepositories(db *DB, logger *logger.Logger) *Repositories {
	return &Repositories{
		Users:   NewUserRepository(db, logger),
		Folders: NewFolderRepository(db, logger),
		Tags:    NewTagRepository(db, logger),
		Notes:   NewNoteRepository(db, logger),
	}
}
