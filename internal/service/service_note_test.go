package service

import (
	"context"
	"testing"

	"github.com/mlevich/noteful-server/internal/logger"
	"github.com/mlevich/noteful-server/internal/mock"
	"github.com/mlevich/noteful-server/internal/store"
	"github.com/mlevich/noteful-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestNoteService(t *testing.T, ctrl *gomock.Controller) (NoteService, *mock.MockNoteRepository, *mock.MockOwnershipValidator) {
	t.Helper()
	notes := mock.NewMockNoteRepository(ctrl)
	validator := mock.NewMockOwnershipValidator(ctrl)
	svc := NewNoteService(notes, validator, logger.Nop())
	return svc, notes, validator
}

func TestCreateNote_ValidatesRefsBeforeStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, validator := newTestNoteService(t, ctrl)
	ctx := context.Background()

	// the note repository must never be touched when validation fails
	validator.EXPECT().
		ValidateNoteRefs(ctx, testFolderID, []string{testTagID1}, testOwnerID).
		Return(newValidationError("folder", "The `folderId` is not valid"))

	_, err := svc.CreateNote(ctx, testOwnerID, models.NoteRequest{
		Title:    "groceries",
		FolderID: testFolderID,
		TagIDs:   []string{testTagID1},
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestCreateNote_TitleRequired(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestNoteService(t, ctrl)

	_, err := svc.CreateNote(context.Background(), testOwnerID, models.NoteRequest{Content: "body"})
	require.ErrorIs(t, err, ErrValidation)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "title", validationErr.Location)
}

func TestCreateNote_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, notes, validator := newTestNoteService(t, ctrl)
	ctx := context.Background()

	validator.EXPECT().
		ValidateNoteRefs(ctx, testFolderID, []string{testTagID1}, testOwnerID).
		Return(nil)

	var persisted models.Note
	notes.EXPECT().
		CreateNote(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, note models.Note) (models.Note, error) {
			persisted = note
			return note, nil
		})

	created, err := svc.CreateNote(ctx, testOwnerID, models.NoteRequest{
		Title:    "  groceries  ",
		Content:  "milk, eggs",
		FolderID: testFolderID,
		TagIDs:   []string{testTagID1},
	})
	require.NoError(t, err)

	assert.Equal(t, "groceries", persisted.Title)
	assert.Equal(t, testOwnerID, persisted.UserID)
	assert.NotEmpty(t, persisted.NoteID)
	assert.Equal(t, persisted.NoteID, created.NoteID)
}

func TestUpdateNote_RevalidatesRefs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, validator := newTestNoteService(t, ctrl)
	ctx := context.Background()

	noteID := "018f3b2a-0000-7000-8000-0000000000c1"

	// an update redirecting the note at a foreign folder is rejected
	validator.EXPECT().
		ValidateNoteRefs(ctx, testFolderID, gomock.Nil(), testOwnerID).
		Return(newValidationError("folder", "The `folderId` is not valid"))

	_, err := svc.UpdateNote(ctx, noteID, testOwnerID, models.NoteRequest{
		Title:    "updated",
		FolderID: testFolderID,
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestUpdateNote_MalformedID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestNoteService(t, ctrl)

	_, err := svc.UpdateNote(context.Background(), "not-a-uuid", testOwnerID, models.NoteRequest{Title: "x"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestGetNotes_MalformedFolderFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestNoteService(t, ctrl)

	_, err := svc.GetNotes(context.Background(), models.NoteFilter{
		UserID:   testOwnerID,
		FolderID: "not-a-uuid",
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestGetNotes_Delegates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, notes, _ := newTestNoteService(t, ctrl)
	ctx := context.Background()

	filter := models.NoteFilter{UserID: testOwnerID, SearchTerm: "milk"}
	notes.EXPECT().
		GetNotes(ctx, filter).
		Return([]models.Note{{NoteID: "note-1", Title: "groceries"}}, nil)

	result, err := svc.GetNotes(ctx, filter)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "groceries", result[0].Title)
}

func TestDeleteNote_NotFoundPassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, notes, _ := newTestNoteService(t, ctrl)
	ctx := context.Background()

	noteID := "018f3b2a-0000-7000-8000-0000000000c1"
	notes.EXPECT().
		DeleteNote(ctx, noteID, testOwnerID).
		Return(store.ErrNoteNotFound)

	err := svc.DeleteNote(ctx, noteID, testOwnerID)
	require.ErrorIs(t, err, store.ErrNoteNotFound)
}
