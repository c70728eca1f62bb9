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

func (h *Handler) listFolders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		writeUnauthenticatedError(w)
		return
	}

	folders, err := h.services.Folders.GetFolders(ctx, user.UserID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listFolders").Msg("folder listing failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, folders, http.StatusOK)
}

func (h *Handler) getFolder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		writeUnauthenticatedError(w)
		return
	}

	folder, err := h.services.Folders.GetFolder(ctx, chi.URLParam(r, "id"), user.UserID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getFolder").Msg("folder search failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, folder, http.StatusOK)
}

func (h *Handler) createFolder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		writeUnauthenticatedError(w)
		return
	}

	var req models.FolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.createFolder").Msg("Invalid JSON was passed")
		writeBadJSONError(w)
		return
	}

	folder, err := h.services.Folders.CreateFolder(ctx, user.UserID, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createFolder").Msg("folder creation failed")
		writeError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/folders/%s", folder.FolderID))
	utils.WriteJSON(w, folder, http.StatusCreated)
}

func (h *Handler) updateFolder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		writeUnauthenticatedError(w)
		return
	}

	var req models.FolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.updateFolder").Msg("Invalid JSON was passed")
		writeBadJSONError(w)
		return
	}

	folder, err := h.services.Folders.UpdateFolder(ctx, chi.URLParam(r, "id"), user.UserID, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateFolder").Msg("folder update failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, folder, http.StatusOK)
}

func (h *Handler) deleteFolder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		writeUnauthenticatedError(w)
		return
	}

	if err := h.services.Folders.DeleteFolder(ctx, chi.URLParam(r, "id"), user.UserID); err != nil {
		log.Err(err).Str("func", "*Handler.deleteFolder").Msg("folder deletion failed")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
