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

// tagService implements the owner-scoped tag CRUD surface on top of a
// TagRepository. It mirrors folderService; the one behavioural difference
// lives in the repository, where deleting a tag detaches it from notes
// instead of clearing a column.
type tagService struct {
	tagRepository store.TagRepository
	uuid          *utils.UUIDGenerator
	logger        *logger.Logger
}

// NewTagService constructs a TagService over the given repository.
func NewTagService(tagRepository store.TagRepository, logger *logger.Logger) TagService {
	return &tagService{
		tagRepository: tagRepository,
		uuid:          utils.NewUUIDGenerator(),
		logger:        logger,
	}
}

// GetTags returns every tag of the given user, ordered by name.
func (s *tagService) GetTags(ctx context.Context, userID string) ([]models.Tag, error) {
	tags, err := s.tagRepository.GetTags(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("tag listing failed: %w", err)
	}

	return tags, nil
}

// GetTag returns a single tag of the given user.
func (s *tagService) GetTag(ctx context.Context, tagID, userID string) (models.Tag, error) {
	if !utils.IsValidID(tagID) {
		return models.Tag{}, newValidationError("id", "The `id` is not valid")
	}

	tag, err := s.tagRepository.GetTagByID(ctx, tagID, userID)
	if err != nil {
		return models.Tag{}, fmt.Errorf("tag search by id failed: %w", err)
	}

	return tag, nil
}

// CreateTag creates a tag with a generated id. The name is required; a
// per-owner duplicate surfaces as store.ErrTagNameAlreadyExists.
func (s *tagService) CreateTag(ctx context.Context, userID string, req models.TagRequest) (models.Tag, error) {
	log := logger.FromContext(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.Tag{}, newValidationError("name", "Missing `name` in request body")
	}

	tag := models.Tag{
		TagID:  s.uuid.Generate(),
		UserID: userID,
		Name:   name,
	}

	createdTag, err := s.tagRepository.CreateTag(ctx, tag)
	if err != nil {
		log.Err(err).Str("tag_name", name).Msg("tag creation ended with error")
		return models.Tag{}, fmt.Errorf("tag creation ended with error: %w", err)
	}

	return createdTag, nil
}

// UpdateTag renames an existing tag of the given user.
func (s *tagService) UpdateTag(ctx context.Context, tagID, userID string, req models.TagRequest) (models.Tag, error) {
	if !utils.IsValidID(tagID) {
		return models.Tag{}, newValidationError("id", "The `id` is not valid")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.Tag{}, newValidationError("name", "Missing `name` in request body")
	}

	tag := models.Tag{
		TagID:  tagID,
		UserID: userID,
		Name:   name,
	}

	updatedTag, err := s.tagRepository.UpdateTag(ctx, tag)
	if err != nil {
		return models.Tag{}, fmt.Errorf("tag update ended with error: %w", err)
	}

	return updatedTag, nil
}

// DeleteTag removes the tag and detaches it from every note that carried it.
func (s *tagService) DeleteTag(ctx context.Context, tagID, userID string) error {
	if !utils.IsValidID(tagID) {
		return newValidationError("id", "The `id` is not valid")
	}

	if err := s.tagRepository.DeleteTag(ctx, tagID, userID); err != nil {
		return fmt.Errorf("tag deletion ended with error: %w", err)
	}

	return nil
}
