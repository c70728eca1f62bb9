package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mlevich/noteful-server/internal/logger"
	"github.com/mlevich/noteful-server/internal/utils"
	"github.com/mlevich/noteful-server/models"
)

// listNotes handles GET /api/notes. The optional query parameters
// `folderId` and `searchTerm` narrow the owner-scoped result set.
func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		writeUnauthenticatedError(w)
		return
	}

	filter := models.NoteFilter{
		UserID:     user.UserID,
		FolderID:   r.URL.Query().Get("folderId"),
		SearchTerm: r.URL.Query().Get("searchTerm"),
	}

	notes, err := h.services.Notes.GetNotes(ctx, filter)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listNotes").Msg("note listing failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, notes, http.StatusOK)
}

func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		writeUnauthenticatedError(w)
		return
	}

	note, err := h.services.Notes.GetNote(ctx, chi.URLParam(r, "id"), user.UserID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getNote").Msg("note search failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		writeUnauthenticatedError(w)
		return
	}

	var req models.NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.createNote").Msg("Invalid JSON was passed")
		writeBadJSONError(w)
		return
	}

	note, err := h.services.Notes.CreateNote(ctx, user.UserID, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createNote").Msg("note creation failed")
		writeError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/notes/%s", note.NoteID))
	utils.WriteJSON(w, note, http.StatusCreated)
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		writeUnauthenticatedError(w)
		return
	}

	var req models.NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.updateNote").Msg("Invalid JSON was passed")
		writeBadJSONError(w)
		return
	}

	note, err := h.services.Notes.UpdateNote(ctx, chi.URLParam(r, "id"), user.UserID, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateNote").Msg("note update failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		writeUnauthenticatedError(w)
		return
	}

	if err := h.services.Notes.DeleteNote(ctx, chi.URLParam(r, "id"), user.UserID); err != nil {
		log.Err(err).Str("func", "*Handler.deleteNote").Msg("note deletion failed")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
