package store

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/mlevich/noteful-server/models"
)

const (
	createUser = `INSERT INTO users (user_id, username, password_hash, fullname)
    VALUES ($1, $2, $3, $4)
    RETURNING user_id, username, password_hash, fullname, created_at;`

	findUserByUsername = `SELECT user_id, username, password_hash, fullname, created_at
    FROM users
    WHERE username = $1;`

	createFolder = `INSERT INTO folders (folder_id, user_id, name)
    VALUES ($1, $2, $3)
    RETURNING folder_id, user_id, name, created_at, updated_at;`

	getFolders = `SELECT folder_id, user_id, name, created_at, updated_at
    FROM folders
    WHERE user_id = $1
    ORDER BY name ASC;`

	getFolderByID = `SELECT folder_id, user_id, name, created_at, updated_at
    FROM folders
    WHERE folder_id = $1 AND user_id = $2;`

	updateFolder = `UPDATE folders
    SET name = $1, updated_at = now()
    WHERE folder_id = $2 AND user_id = $3
    RETURNING folder_id, user_id, name, created_at, updated_at;`

	deleteFolder = `DELETE FROM folders
    WHERE folder_id = $1 AND user_id = $2;`

	clearNotesFolder = `UPDATE notes
    SET folder_id = NULL, updated_at = now()
    WHERE folder_id = $1 AND user_id = $2;`

	countOwnedFolders = `SELECT count(*)
    FROM folders
    WHERE folder_id = $1 AND user_id = $2;`

	createTag = `INSERT INTO tags (tag_id, user_id, name)
    VALUES ($1, $2, $3)
    RETURNING tag_id, user_id, name, created_at, updated_at;`

	getTags = `SELECT tag_id, user_id, name, created_at, updated_at
    FROM tags
    WHERE user_id = $1
    ORDER BY name ASC;`

	getTagByID = `SELECT tag_id, user_id, name, created_at, updated_at
    FROM tags
    WHERE tag_id = $1 AND user_id = $2;`

	updateTag = `UPDATE tags
    SET name = $1, updated_at = now()
    WHERE tag_id = $2 AND user_id = $3
    RETURNING tag_id, user_id, name, created_at, updated_at;`

	deleteTag = `DELETE FROM tags
    WHERE tag_id = $1 AND user_id = $2;`

	detachTagFromNotes = `DELETE FROM note_tags
    WHERE tag_id = $1;`

	countOwnedTags = `SELECT count(*)
    FROM tags
    WHERE tag_id = ANY($1) AND user_id = $2;`

	createNote = `INSERT INTO notes (note_id, user_id, title, content, folder_id)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING created_at, updated_at;`

	getNoteByID = `SELECT note_id, user_id, title, content, folder_id, created_at, updated_at
    FROM notes
    WHERE note_id = $1 AND user_id = $2;`

	deleteNote = `DELETE FROM notes
    WHERE note_id = $1 AND user_id = $2;`

	attachNoteTag = `INSERT INTO note_tags (note_id, tag_id)
    VALUES ($1, $2);`

	detachNoteTags = `DELETE FROM note_tags
    WHERE note_id = $1;`

	getNoteTags = `SELECT note_id, tag_id
    FROM note_tags
    WHERE note_id = ANY($1)
    ORDER BY tag_id ASC;`
)

// buildGetNotesQuery assembles the note listing query for the given filter.
// Owner scoping is unconditional; folder and search narrowing are appended
// only when requested.
func buildGetNotesQuery(filter models.NoteFilter) (string, []any, error) {
	qb := sq.Select("note_id", "user_id", "title", "content", "folder_id", "created_at", "updated_at").
		From("notes").
		Where(sq.Eq{"user_id": filter.UserID}).
		OrderBy("updated_at DESC").
		PlaceholderFormat(sq.Dollar)

	if filter.FolderID != "" {
		qb = qb.Where(sq.Eq{"folder_id": filter.FolderID})
	}

	if filter.SearchTerm != "" {
		term := "%" + filter.SearchTerm + "%"
		qb = qb.Where(sq.Or{
			sq.ILike{"title": term},
			sq.ILike{"content": term},
		})
	}

	return qb.ToSql()
}

// buildUpdateNoteQuery assembles the owner-scoped note update. The folder
// reference is always written: an empty FolderID clears the column rather
// than leaving a stale reference behind.
func buildUpdateNoteQuery(note models.Note) (string, []any, error) {
	return sq.Update("notes").
		Set("title", note.Title).
		Set("content", note.Content).
		Set("folder_id", nullIfEmpty(note.FolderID)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"note_id": note.NoteID, "user_id": note.UserID}).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

// nullIfEmpty maps the domain's empty-string "no reference" convention to a
// SQL NULL.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
