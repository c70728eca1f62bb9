package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mlevich/noteful-server/internal/logger"
	"github.com/mlevich/noteful-server/internal/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testOwnerID  = "018f3b2a-0000-7000-8000-000000000001"
	testFolderID = "018f3b2a-0000-7000-8000-00000000000a"
	testTagID1   = "018f3b2a-0000-7000-8000-0000000000b1"
	testTagID2   = "018f3b2a-0000-7000-8000-0000000000b2"
)

func newTestValidator(t *testing.T, ctrl *gomock.Controller) (OwnershipValidator, *mock.MockFolderRepository, *mock.MockTagRepository) {
	t.Helper()
	folders := mock.NewMockFolderRepository(ctrl)
	tags := mock.NewMockTagRepository(ctrl)
	v := NewOwnershipValidator(folders, tags, logger.Nop())
	return v, folders, tags
}

func TestValidateFolderOwnership_EmptySucceedsWithoutQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	v, _, _ := newTestValidator(t, ctrl)

	err := v.ValidateFolderOwnership(context.Background(), "", testOwnerID)
	require.NoError(t, err)
}

func TestValidateFolderOwnership_MalformedIDShortCircuits(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// CountOwned must never be called for a malformed id
	v, _, _ := newTestValidator(t, ctrl)

	err := v.ValidateFolderOwnership(context.Background(), "not-a-uuid", testOwnerID)
	require.ErrorIs(t, err, ErrValidation)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "folder", validationErr.Location)
}

func TestValidateFolderOwnership_ForeignFolderRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	v, folders, _ := newTestValidator(t, ctrl)

	folders.EXPECT().
		CountOwned(gomock.Any(), testFolderID, testOwnerID).
		Return(int64(0), nil)

	err := v.ValidateFolderOwnership(context.Background(), testFolderID, testOwnerID)
	require.ErrorIs(t, err, ErrValidation)
}

func TestValidateFolderOwnership_OwnedFolderPasses(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	v, folders, _ := newTestValidator(t, ctrl)

	folders.EXPECT().
		CountOwned(gomock.Any(), testFolderID, testOwnerID).
		Return(int64(1), nil)

	err := v.ValidateFolderOwnership(context.Background(), testFolderID, testOwnerID)
	require.NoError(t, err)
}

func TestValidateTagOwnership_EmptySucceedsWithoutQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	v, _, _ := newTestValidator(t, ctrl)

	require.NoError(t, v.ValidateTagOwnership(context.Background(), nil, testOwnerID))
	require.NoError(t, v.ValidateTagOwnership(context.Background(), []string{}, testOwnerID))
}

func TestValidateTagOwnership_MalformedIDShortCircuits(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	v, _, _ := newTestValidator(t, ctrl)

	err := v.ValidateTagOwnership(context.Background(), []string{testTagID1, "not-a-uuid"}, testOwnerID)
	require.ErrorIs(t, err, ErrValidation)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "tags", validationErr.Location)
}

func TestValidateTagOwnership_ExactCountRequired(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	v, _, tags := newTestValidator(t, ctrl)

	// one of the two ids belongs to another user
	tags.EXPECT().
		CountOwned(gomock.Any(), []string{testTagID1, testTagID2}, testOwnerID).
		Return(int64(1), nil)

	err := v.ValidateTagOwnership(context.Background(), []string{testTagID1, testTagID2}, testOwnerID)
	require.ErrorIs(t, err, ErrValidation)
}

func TestValidateTagOwnership_DuplicateIDFailsExactCount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	v, _, tags := newTestValidator(t, ctrl)

	// a duplicated id yields one matching row against two requested
	tags.EXPECT().
		CountOwned(gomock.Any(), []string{testTagID1, testTagID1}, testOwnerID).
		Return(int64(1), nil)

	err := v.ValidateTagOwnership(context.Background(), []string{testTagID1, testTagID1}, testOwnerID)
	require.ErrorIs(t, err, ErrValidation)
}

func TestValidateTagOwnership_AllOwnedPasses(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	v, _, tags := newTestValidator(t, ctrl)

	tags.EXPECT().
		CountOwned(gomock.Any(), []string{testTagID1, testTagID2}, testOwnerID).
		Return(int64(2), nil)

	err := v.ValidateTagOwnership(context.Background(), []string{testTagID1, testTagID2}, testOwnerID)
	require.NoError(t, err)
}

func TestValidateNoteRefs_BothChecksRunFolderTakesPrecedence(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	v, folders, tags := newTestValidator(t, ctrl)

	// both references are foreign; both repositories must still be consulted
	folders.EXPECT().
		CountOwned(gomock.Any(), testFolderID, testOwnerID).
		Return(int64(0), nil)
	tags.EXPECT().
		CountOwned(gomock.Any(), []string{testTagID1}, testOwnerID).
		Return(int64(0), nil)

	err := v.ValidateNoteRefs(context.Background(), testFolderID, []string{testTagID1}, testOwnerID)
	require.ErrorIs(t, err, ErrValidation)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "folder", validationErr.Location)
}

func TestValidateNoteRefs_TagFailureSurfacesWhenFolderValid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	v, folders, tags := newTestValidator(t, ctrl)

	folders.EXPECT().
		CountOwned(gomock.Any(), testFolderID, testOwnerID).
		Return(int64(1), nil)
	tags.EXPECT().
		CountOwned(gomock.Any(), []string{testTagID1}, testOwnerID).
		Return(int64(0), nil)

	err := v.ValidateNoteRefs(context.Background(), testFolderID, []string{testTagID1}, testOwnerID)
	require.ErrorIs(t, err, ErrValidation)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "tags", validationErr.Location)
}

func TestValidateNoteRefs_StoreErrorIsNotValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	v, folders, tags := newTestValidator(t, ctrl)

	dbErr := errors.New("connection reset")
	folders.EXPECT().
		CountOwned(gomock.Any(), testFolderID, testOwnerID).
		Return(int64(0), dbErr)
	tags.EXPECT().
		CountOwned(gomock.Any(), []string{testTagID1}, testOwnerID).
		Return(int64(1), nil)

	err := v.ValidateNoteRefs(context.Background(), testFolderID, []string{testTagID1}, testOwnerID)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrValidation))
	assert.ErrorIs(t, err, dbErr)
}
