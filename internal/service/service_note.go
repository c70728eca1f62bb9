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

// noteService implements the owner-scoped note CRUD surface. Every write
// path validates the supplied folder and tag references through the
// OwnershipValidator before the note store is touched, so a committed note
// can only ever reference entities of its own author.
type noteService struct {
	noteRepository store.NoteRepository
	validator      OwnershipValidator
	uuid           *utils.UUIDGenerator
	logger         *logger.Logger
}

// NewNoteService constructs a NoteService over the given repository and
// reference validator.
func NewNoteService(noteRepository store.NoteRepository, validator OwnershipValidator, logger *logger.Logger) NoteService {
	return &noteService{
		noteRepository: noteRepository,
		validator:      validator,
		uuid:           utils.NewUUIDGenerator(),
		logger:         logger,
	}
}

// GetNotes returns the notes matching the filter. The filter is always
// owner-scoped; folder and search-term constraints are optional.
func (s *noteService) GetNotes(ctx context.Context, filter models.NoteFilter) ([]models.Note, error) {
	if filter.FolderID != "" && !utils.IsValidID(filter.FolderID) {
		return nil, newValidationError("folderId", "The `folderId` is not valid")
	}

	notes, err := s.noteRepository.GetNotes(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("note listing failed: %w", err)
	}

	return notes, nil
}

// GetNote returns a single note of the given user with its tag set.
func (s *noteService) GetNote(ctx context.Context, noteID, userID string) (models.Note, error) {
	if !utils.IsValidID(noteID) {
		return models.Note{}, newValidationError("id", "The `id` is not valid")
	}

	note, err := s.noteRepository.GetNoteByID(ctx, noteID, userID)
	if err != nil {
		return models.Note{}, fmt.Errorf("note search by id failed: %w", err)
	}

	return note, nil
}

// CreateNote validates the request and persists a new note.
//
// The title is required. The folder and tag references are checked for
// ownership before the insert; a note pointing at another user's folder or
// tags is rejected with a validation failure and never reaches the store.
func (s *noteService) CreateNote(ctx context.Context, userID string, req models.NoteRequest) (models.Note, error) {
	log := logger.FromContext(ctx)

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return models.Note{}, newValidationError("title", "Missing `title` in request body")
	}

	if err := s.validator.ValidateNoteRefs(ctx, req.FolderID, req.TagIDs, userID); err != nil {
		return models.Note{}, err
	}

	note := models.Note{
		NoteID:   s.uuid.Generate(),
		UserID:   userID,
		Title:    title,
		Content:  req.Content,
		FolderID: req.FolderID,
		TagIDs:   req.TagIDs,
	}

	createdNote, err := s.noteRepository.CreateNote(ctx, note)
	if err != nil {
		log.Err(err).Str("note_title", title).Msg("note creation ended with error")
		return models.Note{}, fmt.Errorf("note creation ended with error: %w", err)
	}

	return createdNote, nil
}

// UpdateNote validates the request and overwrites an existing note of the
// given user, including its tag set. Reference ownership is re-checked on
// every update: a note that was valid at creation cannot be redirected at
// foreign entities later.
func (s *noteService) UpdateNote(ctx context.Context, noteID, userID string, req models.NoteRequest) (models.Note, error) {
	if !utils.IsValidID(noteID) {
		return models.Note{}, newValidationError("id", "The `id` is not valid")
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return models.Note{}, newValidationError("title", "Missing `title` in request body")
	}

	if err := s.validator.ValidateNoteRefs(ctx, req.FolderID, req.TagIDs, userID); err != nil {
		return models.Note{}, err
	}

	note := models.Note{
		NoteID:   noteID,
		UserID:   userID,
		Title:    title,
		Content:  req.Content,
		FolderID: req.FolderID,
		TagIDs:   req.TagIDs,
	}

	updatedNote, err := s.noteRepository.UpdateNote(ctx, note)
	if err != nil {
		return models.Note{}, fmt.Errorf("note update ended with error: %w", err)
	}

	return updatedNote, nil
}

// DeleteNote removes a note of the given user together with its tag links.
func (s *noteService) DeleteNote(ctx context.Context, noteID, userID string) error {
	if !utils.IsValidID(noteID) {
		return newValidationError("id", "The `id` is not valid")
	}

	if err := s.noteRepository.DeleteNote(ctx, noteID, userID); err != nil {
		return fmt.Errorf("note deletion ended with error: %w", err)
	}

	return nil
}
