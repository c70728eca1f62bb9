package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/mlevich/noteful-server/internal/logger"
	"github.com/mlevich/noteful-server/models"
)

// noteRepository is the PostgreSQL-backed implementation of [NoteRepository].
//
// A note row carries the soft folder reference; the tag reference set lives
// in the note_tags table. Neither reference is backed by a foreign key: both
// are validated against the owner before a write and actively cleared when
// the referenced entity is deleted.
type noteRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewNoteRepository constructs a [NoteRepository] backed by the provided
// database connection and logger.
func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	logger.Debug().Msg("creating note repository")
	return &noteRepository{
		db:     db,
		logger: logger,
	}
}

// CreateNote persists a note together with its tag attachments in a single
// transaction and returns the note with server-assigned timestamps.
func (r *noteRepository) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.CreateNote").Msg("failed to begin transaction")
		return models.Note{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, createNote, note.NoteID, note.UserID, note.Title, note.Content, nullIfEmpty(note.FolderID))
	if err := row.Scan(&note.CreatedAt, &note.UpdatedAt); err != nil {
		log.Err(err).Str("func", "*noteRepository.CreateNote").Str("user_id", note.UserID).Msg("error inserting note")
		return models.Note{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	for _, tagID := range note.TagIDs {
		if _, err := tx.ExecContext(ctx, attachNoteTag, note.NoteID, tagID); err != nil {
			log.Err(err).Str("func", "*noteRepository.CreateNote").Str("tag_id", tagID).Msg("error attaching tag to note")
			return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*noteRepository.CreateNote").Msg("failed to commit transaction")
		return models.Note{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	note.TagIDs = normalizeTagIDs(note.TagIDs)
	return note, nil
}

// GetNotes lists the owner's notes matching the filter, most recently
// updated first, with tag reference sets attached.
func (r *noteRepository) GetNotes(ctx context.Context, filter models.NoteFilter) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetNotesQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.GetNotes").Str("user_id", filter.UserID).Msg("failed to build notes query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var notes []models.Note
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		rows, err := r.db.QueryContext(ctx, query, args...)
		if err != nil {
			log.Err(err).Str("func", "*noteRepository.GetNotes").Str("user_id", filter.UserID).Msg("failed to execute notes query")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		defer rows.Close()

		scanned := make([]models.Note, 0)
		for rows.Next() {
			note, scanErr := scanNote(rows)
			if scanErr != nil {
				log.Err(scanErr).Str("func", "*noteRepository.GetNotes").Str("user_id", filter.UserID).Msg("failed to scan note row")
				return fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
			}
			scanned = append(scanned, note)
		}

		if rowsErr := rows.Err(); rowsErr != nil {
			log.Err(rowsErr).Str("func", "*noteRepository.GetNotes").Str("user_id", filter.UserID).Msg("error occurred during rows iteration")
			return fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
		}

		notes = scanned
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := r.attachTags(ctx, notes); err != nil {
		return nil, err
	}

	return notes, nil
}

// GetNoteByID retrieves a single note scoped by (note_id, user_id) with its
// tag set attached. Returns [ErrNoteNotFound] when no owned note matches.
func (r *noteRepository) GetNoteByID(ctx context.Context, noteID, userID string) (models.Note, error) {
	log := logger.FromContext(ctx)

	var note models.Note
	err := r.db.withRetry(ctx, func(ctx context.Context) error {
		row := r.db.QueryRowContext(ctx, getNoteByID, noteID, userID)
		var scanErr error
		note, scanErr = scanNote(row)
		return scanErr
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}

		log.Err(err).Str("func", "*noteRepository.GetNoteByID").Str("note_id", noteID).Msg("error finding note")
		return models.Note{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	notes := []models.Note{note}
	if err := r.attachTags(ctx, notes); err != nil {
		return models.Note{}, err
	}

	return notes[0], nil
}

// UpdateNote replaces the mutable fields of an owned note: title, content,
// the folder reference, and the whole tag set. The previous tag attachments
// are dropped and the supplied set is written in their place, all in one
// transaction.
//
// Returns [ErrNoteNotFound] when no owned note matches.
func (r *noteRepository) UpdateNote(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateNoteQuery(note)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.UpdateNote").Str("note_id", note.NoteID).Msg("failed to build update query")
		return models.Note{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.UpdateNote").Msg("failed to begin transaction")
		return models.Note{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&note.CreatedAt, &note.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}

		log.Err(err).Str("func", "*noteRepository.UpdateNote").Str("note_id", note.NoteID).Msg("error updating note")
		return models.Note{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if _, err := tx.ExecContext(ctx, detachNoteTags, note.NoteID); err != nil {
		log.Err(err).Str("func", "*noteRepository.UpdateNote").Str("note_id", note.NoteID).Msg("error detaching old tags")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	for _, tagID := range note.TagIDs {
		if _, err := tx.ExecContext(ctx, attachNoteTag, note.NoteID, tagID); err != nil {
			log.Err(err).Str("func", "*noteRepository.UpdateNote").Str("tag_id", tagID).Msg("error attaching tag to note")
			return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*noteRepository.UpdateNote").Msg("failed to commit transaction")
		return models.Note{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	note.TagIDs = normalizeTagIDs(note.TagIDs)
	return note, nil
}

// DeleteNote removes an owned note and its tag attachments.
// Returns [ErrNoteNotFound] when no owned note matches.
func (r *noteRepository) DeleteNote(ctx context.Context, noteID, userID string) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.DeleteNote").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, deleteNote, noteID, userID)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.DeleteNote").Str("note_id", noteID).Msg("failed to delete note")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoteNotFound
	}

	if _, err := tx.ExecContext(ctx, detachNoteTags, noteID); err != nil {
		log.Err(err).Str("func", "*noteRepository.DeleteNote").Str("note_id", noteID).Msg("failed to detach tags")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*noteRepository.DeleteNote").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// attachTags loads the tag reference sets of the given notes in one query
// and distributes them in place. Notes without attachments keep an empty,
// non-nil set so they serialize as [] rather than null.
func (r *noteRepository) attachTags(ctx context.Context, notes []models.Note) error {
	log := logger.FromContext(ctx)

	if len(notes) == 0 {
		return nil
	}

	noteIDs := make([]string, 0, len(notes))
	index := make(map[string]int, len(notes))
	for i := range notes {
		noteIDs = append(noteIDs, notes[i].NoteID)
		index[notes[i].NoteID] = i
	}

	return r.db.withRetry(ctx, func(ctx context.Context) error {
		// Reset on entry so a retried attempt does not double the sets.
		for i := range notes {
			notes[i].TagIDs = make([]string, 0)
		}

		rows, err := r.db.QueryContext(ctx, getNoteTags, noteIDs)
		if err != nil {
			log.Err(err).Str("func", "*noteRepository.attachTags").Msg("failed to execute note tags query")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		defer rows.Close()

		for rows.Next() {
			var noteID, tagID string
			if scanErr := rows.Scan(&noteID, &tagID); scanErr != nil {
				log.Err(scanErr).Str("func", "*noteRepository.attachTags").Msg("failed to scan note tag row")
				return fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
			}
			if i, ok := index[noteID]; ok {
				notes[i].TagIDs = append(notes[i].TagIDs, tagID)
			}
		}

		if rowsErr := rows.Err(); rowsErr != nil {
			log.Err(rowsErr).Str("func", "*noteRepository.attachTags").Msg("error occurred during rows iteration")
			return fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
		}

		return nil
	})
}

// scanner abstracts *sql.Row and *sql.Rows for shared note scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanNote(s scanner) (models.Note, error) {
	var note models.Note
	var folderID sql.NullString

	if err := s.Scan(&note.NoteID, &note.UserID, &note.Title, &note.Content, &folderID, &note.CreatedAt, &note.UpdatedAt); err != nil {
		return models.Note{}, err
	}

	note.FolderID = folderID.String
	note.TagIDs = make([]string, 0)
	return note, nil
}

func normalizeTagIDs(tagIDs []string) []string {
	normalized := make([]string, len(tagIDs))
	copy(normalized, tagIDs)
	sort.Strings(normalized)
	return normalized
}
