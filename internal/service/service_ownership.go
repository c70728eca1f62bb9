package service

import (
	"context"
	"fmt"

	"github.com/mlevich/noteful-server/internal/logger"
	"github.com/mlevich/noteful-server/internal/store"
	"github.com/mlevich/noteful-server/internal/utils"
)

// Validation failure locations reported for bad note references.
const (
	locationFolder = "folder"
	locationTags   = "tags"
)

// ownershipValidator checks client-supplied folder and tag references
// against the folder and tag stores. A reference passes only when it is a
// well-formed id that resolves to an entity of the requesting user, so a
// note can never point into another user's data.
type ownershipValidator struct {
	folderRepository store.FolderRepository
	tagRepository    store.TagRepository
	logger           *logger.Logger
}

// NewOwnershipValidator constructs an OwnershipValidator over the given
// folder and tag repositories.
func NewOwnershipValidator(folderRepository store.FolderRepository, tagRepository store.TagRepository, logger *logger.Logger) OwnershipValidator {
	return &ownershipValidator{
		folderRepository: folderRepository,
		tagRepository:    tagRepository,
		logger:           logger,
	}
}

// ValidateFolderOwnership checks the single optional folder reference.
// An empty folderID passes immediately. A malformed id fails without any
// store access; a well-formed id must resolve to a folder of ownerID.
func (v *ownershipValidator) ValidateFolderOwnership(ctx context.Context, folderID, ownerID string) error {
	if folderID == "" {
		return nil
	}

	if !utils.IsValidID(folderID) {
		return newValidationError(locationFolder, "The `folderId` is not valid")
	}

	count, err := v.folderRepository.CountOwned(ctx, folderID, ownerID)
	if err != nil {
		return fmt.Errorf("folder ownership check failed: %w", err)
	}

	if count == 0 {
		return newValidationError(locationFolder, "The `folderId` is not valid")
	}

	return nil
}

// ValidateTagOwnership checks the tag reference set. An empty set passes
// immediately. Any malformed id fails the whole set without a store access.
// Otherwise the number of matching owned tags must equal len(tagIDs):
// duplicates in the input cannot inflate the row count, so a duplicated id
// fails the exact-count match.
func (v *ownershipValidator) ValidateTagOwnership(ctx context.Context, tagIDs []string, ownerID string) error {
	if len(tagIDs) == 0 {
		return nil
	}

	for _, tagID := range tagIDs {
		if !utils.IsValidID(tagID) {
			return newValidationError(locationTags, "The `tags` array contains an invalid id")
		}
	}

	count, err := v.tagRepository.CountOwned(ctx, tagIDs, ownerID)
	if err != nil {
		return fmt.Errorf("tag ownership check failed: %w", err)
	}

	if count != int64(len(tagIDs)) {
		return newValidationError(locationTags, "The `tags` array contains an invalid id")
	}

	return nil
}

// ValidateNoteRefs validates the folder reference and the tag references
// of a pending note write. Both checks always run to completion; when both
// fail the folder failure is reported.
func (v *ownershipValidator) ValidateNoteRefs(ctx context.Context, folderID string, tagIDs []string, ownerID string) error {
	log := logger.FromContext(ctx)

	folderErr := v.ValidateFolderOwnership(ctx, folderID, ownerID)
	tagErr := v.ValidateTagOwnership(ctx, tagIDs, ownerID)

	if folderErr != nil {
		log.Warn().Err(folderErr).Str("folder_id", folderID).Msg("note folder reference rejected")
		return folderErr
	}

	if tagErr != nil {
		log.Warn().Err(tagErr).Strs("tag_ids", tagIDs).Msg("note tag reference rejected")
		return tagErr
	}

	return nil
}
