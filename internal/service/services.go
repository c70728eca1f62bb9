package service

import (
	"github.com/mlevich/noteful-server/internal/config"
	"github.com/mlevich/noteful-server/internal/logger"
	"github.com/mlevich/noteful-server/internal/store"
)

// Services aggregates every business-logic service of the application.
type Services struct {
	Auth      AuthService
	Ownership OwnershipValidator
	Folders   FolderService
	Tags      TagService
	Notes     NoteService
}

// NewServices wires all services over the given repositories. The note
// service receives the ownership validator so that every note write checks
// its folder and tag references first.
func NewServices(repos *store.Repositories, cfg config.Auth, logger *logger.Logger) *Services {
	ownership := NewOwnershipValidator(repos.Folders, repos.Tags, logger)

	return &Services{
		Auth:      NewAuthService(repos.Users, cfg, logger),
		Ownership: ownership,
		Folders:   NewFolderService(repos.Folders, logger),
		Tags:      NewTagService(repos.Tags, logger),
		Notes:     NewNoteService(repos.Notes, ownership, logger),
	}
}
