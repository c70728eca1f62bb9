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

func newTestTagService(t *testing.T, ctrl *gomock.Controller) (TagService, *mock.MockTagRepository) {
	t.Helper()
	tags := mock.NewMockTagRepository(ctrl)
	svc := NewTagService(tags, logger.Nop())
	return svc, tags
}

func TestCreateTag_AssignsIDAndTrimsName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, tags := newTestTagService(t, ctrl)
	ctx := context.Background()

	var persisted models.Tag
	tags.EXPECT().
		CreateTag(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, tag models.Tag) (models.Tag, error) {
			persisted = tag
			return tag, nil
		})

	_, err := svc.CreateTag(ctx, testOwnerID, models.TagRequest{Name: " work "})
	require.NoError(t, err)

	assert.Equal(t, "work", persisted.Name)
	assert.Equal(t, testOwnerID, persisted.UserID)
	assert.NotEmpty(t, persisted.TagID)
}

func TestCreateTag_NameRequired(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestTagService(t, ctrl)

	_, err := svc.CreateTag(context.Background(), testOwnerID, models.TagRequest{})
	require.ErrorIs(t, err, ErrValidation)
}

func TestCreateTag_DuplicateNamePassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, tags := newTestTagService(t, ctrl)
	ctx := context.Background()

	tags.EXPECT().
		CreateTag(ctx, gomock.Any()).
		Return(models.Tag{}, store.ErrTagNameAlreadyExists)

	_, err := svc.CreateTag(ctx, testOwnerID, models.TagRequest{Name: "work"})
	require.ErrorIs(t, err, store.ErrTagNameAlreadyExists)
}

func TestUpdateTag_MalformedID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestTagService(t, ctrl)

	_, err := svc.UpdateTag(context.Background(), "not-a-uuid", testOwnerID, models.TagRequest{Name: "work"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestDeleteTag_NotFoundPassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, tags := newTestTagService(t, ctrl)
	ctx := context.Background()

	tags.EXPECT().
		DeleteTag(ctx, testTagID1, testOwnerID).
		Return(store.ErrTagNotFound)

	err := svc.DeleteTag(ctx, testTagID1, testOwnerID)
	require.ErrorIs(t, err, store.ErrTagNotFound)
}
