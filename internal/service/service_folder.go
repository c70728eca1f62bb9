package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/mlevich/noteful-server/internal/logger"
	"github.com/mlevich/noteful-server/internal/store"
	"github.com/mlevich/noteful-server/internal/utils"
	"github.com/mlevich/noteful-server/models"
)

// folderService implements the owner-scoped folder CRUD surface on top of
// a FolderRepository.
type folderService struct {
	folderRepository store.FolderRepository
	uuid             *utils.UUIDGenerator
	logger           *logger.Logger
}

// NewFolderService constructs a FolderService over the given repository.
func NewFolderService(folderRepository store.FolderRepository, logger *logger.Logger) FolderService {
	return &folderService{
		folderRepository: folderRepository,
		uuid:             utils.NewUUIDGenerator(),
		logger:           logger,
	}
}

// GetFolders returns every folder of the given user, ordered by name.
func (s *folderService) GetFolders(ctx context.Context, userID string) ([]models.Folder, error) {
	folders, err := s.folderRepository.GetFolders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("folder listing failed: %w", err)
	}

	return folders, nil
}

// GetFolder returns a single folder of the given user. A malformed id is
// rejected as a validation failure before any store access.
func (s *folderService) GetFolder(ctx context.Context, folderID, userID string) (models.Folder, error) {
	if !utils.IsValidID(folderID) {
		return models.Folder{}, newValidationError("id", "The `id` is not valid")
	}

	folder, err := s.folderRepository.GetFolderByID(ctx, folderID, userID)
	if err != nil {
		return models.Folder{}, fmt.Errorf("folder search by id failed: %w", err)
	}

	return folder, nil
}

// CreateFolder creates a folder with a generated id. The name is required;
// a per-owner duplicate surfaces as store.ErrFolderNameAlreadyExists.
func (s *folderService) CreateFolder(ctx context.Context, userID string, req models.FolderRequest) (models.Folder, error) {
	log := logger.FromContext(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.Folder{}, newValidationError("name", "Missing `name` in request body")
	}

	folder := models.Folder{
		FolderID: s.uuid.Generate(),
		UserID:   userID,
		Name:     name,
	}

	createdFolder, err := s.folderRepository.CreateFolder(ctx, folder)
	if err != nil {
		log.Err(err).Str("folder_name", name).Msg("folder creation ended with error")
		return models.Folder{}, fmt.Errorf("folder creation ended with error: %w", err)
	}

	return createdFolder, nil
}

// UpdateFolder renames an existing folder of the given user.
func (s *folderService) UpdateFolder(ctx context.Context, folderID, userID string, req models.FolderRequest) (models.Folder, error) {
	if !utils.IsValidID(folderID) {
		return models.Folder{}, newValidationError("id", "The `id` is not valid")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.Folder{}, newValidationError("name", "Missing `name` in request body")
	}

	folder := models.Folder{
		FolderID: folderID,
		UserID:   userID,
		Name:     name,
	}

	updatedFolder, err := s.folderRepository.UpdateFolder(ctx, folder)
	if err != nil {
		return models.Folder{}, fmt.Errorf("folder update ended with error: %w", err)
	}

	return updatedFolder, nil
}

// DeleteFolder removes the folder and clears the folder reference on the
// owner's notes that pointed at it. The notes themselves survive.
func (s *folderService) DeleteFolder(ctx context.Context, folderID, userID string) error {
	if !utils.IsValidID(folderID) {
		return newValidationError("id", "The `id` is not valid")
	}

	if err := s.folderRepository.DeleteFolder(ctx, folderID, userID); err != nil {
		return fmt.Errorf("folder deletion ended with error: %w", err)
	}

	return nil
}
