package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mlevich/noteful-server/internal/store"
	"github.com/mlevich/noteful-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCreateTag_DuplicateName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, svcs := newTestRouter(t, ctrl)
	expectAuth(svcs, models.User{UserID: "user-1"})

	svcs.tags.EXPECT().
		CreateTag(gomock.Any(), "user-1", gomock.Any()).
		Return(models.Tag{}, store.ErrTagNameAlreadyExists)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/tags", `{"name":"urgent"}`))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeErrorBody(t, rec.Body.String())
	assert.Equal(t, "The tag name already exists", resp.Message)
	assert.Equal(t, "ValidationError", resp.Reason)
	assert.Equal(t, "name", resp.Location)
}

func TestUpdateTag_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, svcs := newTestRouter(t, ctrl)
	expectAuth(svcs, models.User{UserID: "user-1"})

	svcs.tags.EXPECT().
		UpdateTag(gomock.Any(), "tag-1", "user-1", models.TagRequest{Name: "later"}).
		Return(models.Tag{TagID: "tag-1", UserID: "user-1", Name: "later"}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/api/tags/tag-1", `{"name":"later"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"later"`)
}

func TestDeleteTag_NoContent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, svcs := newTestRouter(t, ctrl)
	expectAuth(svcs, models.User{UserID: "user-1"})

	svcs.tags.EXPECT().
		DeleteTag(gomock.Any(), "tag-1", "user-1").
		Return(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodDelete, "/api/tags/tag-1", ""))

	require.Equal(t, http.StatusNoContent, rec.Code)
}
