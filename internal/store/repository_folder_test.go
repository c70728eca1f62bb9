package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/mlevich/noteful-server/internal/logger"
	"github.com/mlevich/noteful-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFolderRepo(t *testing.T) (*folderRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	l := logger.Nop()
	repo := &folderRepository{
		db:     &DB{DB: db, logger: l, errorClassificator: NewPostgresErrorClassifier()},
		logger: l,
	}
	return repo, mock
}

func TestCreateFolder_Success(t *testing.T) {
	repo, mock := newTestFolderRepo(t)

	ctx := context.Background()
	folder := models.Folder{
		FolderID: "018f3b2a-0000-7000-8000-00000000000a",
		UserID:   "018f3b2a-0000-7000-8000-000000000001",
		Name:     "Archive",
	}

	now := time.Now()
	rows := sqlmock.
		NewRows([]string{"folder_id", "user_id", "name", "created_at", "updated_at"}).
		AddRow(folder.FolderID, folder.UserID, folder.Name, now, now)

	mock.ExpectQuery("INSERT INTO folders").
		WithArgs(folder.FolderID, folder.UserID, folder.Name).
		WillReturnRows(rows)

	created, err := repo.CreateFolder(ctx, folder)
	require.NoError(t, err)
	assert.Equal(t, "Archive", created.Name)
}

func TestCreateFolder_DuplicateName(t *testing.T) {
	repo, mock := newTestFolderRepo(t)

	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO folders").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateFolder(ctx, models.Folder{Name: "Archive"})
	require.ErrorIs(t, err, ErrFolderNameAlreadyExists)
}

func TestGetFolders_EmptyResult(t *testing.T) {
	repo, mock := newTestFolderRepo(t)

	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM folders").
		WithArgs("owner-1").
		WillReturnRows(sqlmock.NewRows([]string{"folder_id", "user_id", "name", "created_at", "updated_at"}))

	folders, err := repo.GetFolders(ctx, "owner-1")
	require.NoError(t, err)
	require.NotNil(t, folders)
	assert.Empty(t, folders)
}

func TestGetFolders_RecoversAfterTransientFailure(t *testing.T) {
	repo, mock := newTestFolderRepo(t)

	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM folders").
		WithArgs("owner-1").
		WillReturnError(pgError(pgerrcode.ConnectionFailure))
	mock.ExpectQuery("SELECT (.+) FROM folders").
		WithArgs("owner-1").
		WillReturnRows(sqlmock.
			NewRows([]string{"folder_id", "user_id", "name", "created_at", "updated_at"}).
			AddRow("folder-1", "owner-1", "Archive", now, now))

	folders, err := repo.GetFolders(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, folders, 1)
	assert.Equal(t, "Archive", folders[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetFolders_DoesNotRetryNonTransientFailure(t *testing.T) {
	repo, mock := newTestFolderRepo(t)

	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM folders").
		WithArgs("owner-1").
		WillReturnError(pgError(pgerrcode.UndefinedTable))

	_, err := repo.GetFolders(ctx, "owner-1")
	require.ErrorIs(t, err, ErrExecutingQuery)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetFolderByID_NotFound(t *testing.T) {
	repo, mock := newTestFolderRepo(t)

	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM folders").
		WithArgs("missing-id", "owner-1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetFolderByID(ctx, "missing-id", "owner-1")
	require.ErrorIs(t, err, ErrFolderNotFound)
}

func TestUpdateFolder_NotFound(t *testing.T) {
	repo, mock := newTestFolderRepo(t)

	ctx := context.Background()

	mock.ExpectQuery("UPDATE folders").
		WithArgs("New Name", "missing-id", "owner-1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateFolder(ctx, models.Folder{FolderID: "missing-id", UserID: "owner-1", Name: "New Name"})
	require.ErrorIs(t, err, ErrFolderNotFound)
}

func TestDeleteFolder_ClearsNoteReferences(t *testing.T) {
	repo, mock := newTestFolderRepo(t)

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM folders").
		WithArgs("folder-1", "owner-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE notes").
		WithArgs("folder-1", "owner-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteFolder(ctx, "folder-1", "owner-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteFolder_NotFoundRollsBack(t *testing.T) {
	repo, mock := newTestFolderRepo(t)

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM folders").
		WithArgs("missing-id", "owner-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.DeleteFolder(ctx, "missing-id", "owner-1")
	require.ErrorIs(t, err, ErrFolderNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountOwnedFolders(t *testing.T) {
	repo, mock := newTestFolderRepo(t)

	ctx := context.Background()

	mock.ExpectQuery("SELECT count").
		WithArgs("folder-1", "owner-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	count, err := repo.CountOwned(ctx, "folder-1", "owner-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
