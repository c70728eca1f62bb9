package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/mlevich/noteful-server/internal/logger"
	"github.com/mlevich/noteful-server/models"
)

// folderRepository is the PostgreSQL-backed implementation of
// [FolderRepository]. All reads and mutations are scoped by the owning user;
// the per-owner name uniqueness lives in the folders_user_id_name_key
// constraint, not in application logic.
type folderRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewFolderRepository constructs a [FolderRepository] backed by the provided
// database connection and logger.
func NewFolderRepository(db *DB, logger *logger.Logger) FolderRepository {
	logger.Debug().Msg("creating folder repository")
	return &folderRepository{
		db:     db,
		logger: logger,
	}
}

// CreateFolder persists a new folder and returns the canonical database
// representation with server-assigned timestamps.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrFolderNameAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *folderRepository) CreateFolder(ctx context.Context, folder models.Folder) (models.Folder, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createFolder, folder.FolderID, folder.UserID, folder.Name)

	var created models.Folder
	if err := row.Scan(&created.FolderID, &created.UserID, &created.Name, &created.CreatedAt, &created.UpdatedAt); err != nil {
		log.Err(err).Str("func", "*folderRepository.CreateFolder").Str("user_id", folder.UserID).Msg("error creating folder")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Folder{}, ErrFolderNameAlreadyExists
		default:
			return models.Folder{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

// GetFolders lists all folders of the given owner, sorted by name ascending.
// Transient failures are retried through the connection's classificator.
func (r *folderRepository) GetFolders(ctx context.Context, userID string) ([]models.Folder, error) {
	log := logger.FromContext(ctx)

	var folders []models.Folder
	err := r.db.withRetry(ctx, func(ctx context.Context) error {
		rows, err := r.db.QueryContext(ctx, getFolders, userID)
		if err != nil {
			log.Err(err).Str("func", "*folderRepository.GetFolders").Str("user_id", userID).Msg("failed to execute folders query")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		defer rows.Close()

		scanned := make([]models.Folder, 0)
		for rows.Next() {
			var folder models.Folder
			if scanErr := rows.Scan(&folder.FolderID, &folder.UserID, &folder.Name, &folder.CreatedAt, &folder.UpdatedAt); scanErr != nil {
				log.Err(scanErr).Str("func", "*folderRepository.GetFolders").Str("user_id", userID).Msg("failed to scan folder row")
				return fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
			}
			scanned = append(scanned, folder)
		}

		if rowsErr := rows.Err(); rowsErr != nil {
			log.Err(rowsErr).Str("func", "*folderRepository.GetFolders").Str("user_id", userID).Msg("error occurred during rows iteration")
			return fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
		}

		folders = scanned
		return nil
	})
	if err != nil {
		return nil, err
	}

	return folders, nil
}

// GetFolderByID retrieves a single folder scoped by (folder_id, user_id).
// Returns [ErrFolderNotFound] when no owned folder matches.
func (r *folderRepository) GetFolderByID(ctx context.Context, folderID, userID string) (models.Folder, error) {
	log := logger.FromContext(ctx)

	var folder models.Folder
	err := r.db.withRetry(ctx, func(ctx context.Context) error {
		row := r.db.QueryRowContext(ctx, getFolderByID, folderID, userID)
		return row.Scan(&folder.FolderID, &folder.UserID, &folder.Name, &folder.CreatedAt, &folder.UpdatedAt)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Folder{}, ErrFolderNotFound
		}

		log.Err(err).Str("func", "*folderRepository.GetFolderByID").Str("folder_id", folderID).Msg("error finding folder")
		return models.Folder{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return folder, nil
}

// UpdateFolder renames an owned folder.
//
// Error handling:
//   - no matching owned row → [ErrFolderNotFound].
//   - unique_violation on the new name → [ErrFolderNameAlreadyExists].
func (r *folderRepository) UpdateFolder(ctx context.Context, folder models.Folder) (models.Folder, error) {
	log := logger.FromContext(ctx)

	var updated models.Folder
	row := r.db.QueryRowContext(ctx, updateFolder, folder.Name, folder.FolderID, folder.UserID)
	if err := row.Scan(&updated.FolderID, &updated.UserID, &updated.Name, &updated.CreatedAt, &updated.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Folder{}, ErrFolderNotFound
		}

		log.Err(err).Str("func", "*folderRepository.UpdateFolder").Str("folder_id", folder.FolderID).Msg("error updating folder")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Folder{}, ErrFolderNameAlreadyExists
		default:
			return models.Folder{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return updated, nil
}

// DeleteFolder removes an owned folder and clears the folder reference on
// the owner's notes that pointed at it. Both statements run in one
// transaction, so a note can never keep referencing a folder row that is
// already gone.
//
// Returns [ErrFolderNotFound] when the folder does not exist or belongs to
// another user; in that case nothing is modified.
func (r *folderRepository) DeleteFolder(ctx context.Context, folderID, userID string) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*folderRepository.DeleteFolder").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, deleteFolder, folderID, userID)
	if err != nil {
		log.Err(err).Str("func", "*folderRepository.DeleteFolder").Str("folder_id", folderID).Msg("failed to delete folder")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrFolderNotFound
	}

	if _, err := tx.ExecContext(ctx, clearNotesFolder, folderID, userID); err != nil {
		log.Err(err).Str("func", "*folderRepository.DeleteFolder").Str("folder_id", folderID).Msg("failed to clear folder references on notes")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*folderRepository.DeleteFolder").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// CountOwned reports how many folders match both the given id and owner.
// With folder_id being the primary key the result is always 0 or 1.
func (r *folderRepository) CountOwned(ctx context.Context, folderID, userID string) (int64, error) {
	log := logger.FromContext(ctx)

	var count int64
	err := r.db.withRetry(ctx, func(ctx context.Context) error {
		row := r.db.QueryRowContext(ctx, countOwnedFolders, folderID, userID)
		return row.Scan(&count)
	})
	if err != nil {
		log.Err(err).Str("func", "*folderRepository.CountOwned").Str("folder_id", folderID).Msg("error counting owned folders")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}
