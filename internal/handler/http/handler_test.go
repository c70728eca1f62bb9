package http

import (
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/mlevich/noteful-server/internal/logger"
	"github.com/mlevich/noteful-server/internal/mock"
	"github.com/mlevich/noteful-server/internal/service"
	"go.uber.org/mock/gomock"
)

// testServices bundles the per-interface gomock services wired into a
// Handler for transport-level tests.
type testServices struct {
	auth    *mock.MockAuthService
	folders *mock.MockFolderService
	tags    *mock.MockTagService
	notes   *mock.MockNoteService
}

func newTestRouter(t *testing.T, ctrl *gomock.Controller) (*chi.Mux, *testServices) {
	t.Helper()

	svcs := &testServices{
		auth:    mock.NewMockAuthService(ctrl),
		folders: mock.NewMockFolderService(ctrl),
		tags:    mock.NewMockTagService(ctrl),
		notes:   mock.NewMockNoteService(ctrl),
	}

	h := NewHandler(&service.Services{
		Auth:    svcs.auth,
		Folders: svcs.folders,
		Tags:    svcs.tags,
		Notes:   svcs.notes,
	}, logger.Nop())

	return h.Init(), svcs
}

func TestNewHandler(t *testing.T) {
	h := NewHandler(&service.Services{}, logger.Nop())
	if h == nil {
		t.Fatal("expected handler to be created")
	}
}
