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

// tagRepository is the PostgreSQL-backed implementation of [TagRepository].
// Mirrors folderRepository: owner-scoped access, uniqueness by constraint.
type tagRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTagRepository constructs a [TagRepository] backed by the provided
// database connection and logger.
func NewTagRepository(db *DB, logger *logger.Logger) TagRepository {
	logger.Debug().Msg("creating tag repository")
	return &tagRepository{
		db:     db,
		logger: logger,
	}
}

// CreateTag persists a new tag and returns the canonical database
// representation with server-assigned timestamps.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrTagNameAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *tagRepository) CreateTag(ctx context.Context, tag models.Tag) (models.Tag, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createTag, tag.TagID, tag.UserID, tag.Name)

	var created models.Tag
	if err := row.Scan(&created.TagID, &created.UserID, &created.Name, &created.CreatedAt, &created.UpdatedAt); err != nil {
		log.Err(err).Str("func", "*tagRepository.CreateTag").Str("user_id", tag.UserID).Msg("error creating tag")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Tag{}, ErrTagNameAlreadyExists
		default:
			return models.Tag{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

// GetTags lists all tags of the given owner, sorted by name ascending.
// Transient failures are retried through the connection's classificator.
func (r *tagRepository) GetTags(ctx context.Context, userID string) ([]models.Tag, error) {
	log := logger.FromContext(ctx)

	var tags []models.Tag
	err := r.db.withRetry(ctx, func(ctx context.Context) error {
		rows, err := r.db.QueryContext(ctx, getTags, userID)
		if err != nil {
			log.Err(err).Str("func", "*tagRepository.GetTags").Str("user_id", userID).Msg("failed to execute tags query")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		defer rows.Close()

		scanned := make([]models.Tag, 0)
		for rows.Next() {
			var tag models.Tag
			if scanErr := rows.Scan(&tag.TagID, &tag.UserID, &tag.Name, &tag.CreatedAt, &tag.UpdatedAt); scanErr != nil {
				log.Err(scanErr).Str("func", "*tagRepository.GetTags").Str("user_id", userID).Msg("failed to scan tag row")
				return fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
			}
			scanned = append(scanned, tag)
		}

		if rowsErr := rows.Err(); rowsErr != nil {
			log.Err(rowsErr).Str("func", "*tagRepository.GetTags").Str("user_id", userID).Msg("error occurred during rows iteration")
			return fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
		}

		tags = scanned
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tags, nil
}

// GetTagByID retrieves a single tag scoped by (tag_id, user_id).
// Returns [ErrTagNotFound] when no owned tag matches.
func (r *tagRepository) GetTagByID(ctx context.Context, tagID, userID string) (models.Tag, error) {
	log := logger.FromContext(ctx)

	var tag models.Tag
	err := r.db.withRetry(ctx, func(ctx context.Context) error {
		row := r.db.QueryRowContext(ctx, getTagByID, tagID, userID)
		return row.Scan(&tag.TagID, &tag.UserID, &tag.Name, &tag.CreatedAt, &tag.UpdatedAt)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Tag{}, ErrTagNotFound
		}

		log.Err(err).Str("func", "*tagRepository.GetTagByID").Str("tag_id", tagID).Msg("error finding tag")
		return models.Tag{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return tag, nil
}

// UpdateTag renames an owned tag.
//
// Error handling:
//   - no matching owned row → [ErrTagNotFound].
//   - unique_violation on the new name → [ErrTagNameAlreadyExists].
func (r *tagRepository) UpdateTag(ctx context.Context, tag models.Tag) (models.Tag, error) {
	log := logger.FromContext(ctx)

	var updated models.Tag
	row := r.db.QueryRowContext(ctx, updateTag, tag.Name, tag.TagID, tag.UserID)
	if err := row.Scan(&updated.TagID, &updated.UserID, &updated.Name, &updated.CreatedAt, &updated.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Tag{}, ErrTagNotFound
		}

		log.Err(err).Str("func", "*tagRepository.UpdateTag").Str("tag_id", tag.TagID).Msg("error updating tag")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Tag{}, ErrTagNameAlreadyExists
		default:
			return models.Tag{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return updated, nil
}

// DeleteTag removes an owned tag and detaches it from every note that
// referenced it. The tag attachments of other users' notes are untouched by
// construction: a tag can only ever be attached to its owner's notes.
//
// Returns [ErrTagNotFound] when the tag does not exist or belongs to another
// user; in that case nothing is modified.
func (r *tagRepository) DeleteTag(ctx context.Context, tagID, userID string) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*tagRepository.DeleteTag").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, deleteTag, tagID, userID)
	if err != nil {
		log.Err(err).Str("func", "*tagRepository.DeleteTag").Str("tag_id", tagID).Msg("failed to delete tag")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrTagNotFound
	}

	if _, err := tx.ExecContext(ctx, detachTagFromNotes, tagID); err != nil {
		log.Err(err).Str("func", "*tagRepository.DeleteTag").Str("tag_id", tagID).Msg("failed to detach tag from notes")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*tagRepository.DeleteTag").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// CountOwned reports how many of the given tag ids resolve to tags of the
// given owner. The count is over matching rows: duplicate input ids cannot
// inflate it, so a caller comparing the count against len(tagIDs) gets the
// strict "every id matched exactly one owned tag" semantics.
func (r *tagRepository) CountOwned(ctx context.Context, tagIDs []string, userID string) (int64, error) {
	log := logger.FromContext(ctx)

	var count int64
	err := r.db.withRetry(ctx, func(ctx context.Context) error {
		row := r.db.QueryRowContext(ctx, countOwnedTags, tagIDs, userID)
		return row.Scan(&count)
	})
	if err != nil {
		log.Err(err).Str("func", "*tagRepository.CountOwned").Str("user_id", userID).Msg("error counting owned tags")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}
