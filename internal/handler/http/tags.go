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

func (h *Handler) listTags(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		writeUnauthenticatedError(w)
		return
	}

	tags, err := h.services.Tags.GetTags(ctx, user.UserID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listTags").Msg("tag listing failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, tags, http.StatusOK)
}

func (h *Handler) getTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		writeUnauthenticatedError(w)
		return
	}

	tag, err := h.services.Tags.GetTag(ctx, chi.URLParam(r, "id"), user.UserID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getTag").Msg("tag search failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, tag, http.StatusOK)
}

func (h *Handler) createTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		writeUnauthenticatedError(w)
		return
	}

	var req models.TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.createTag").Msg("Invalid JSON was passed")
		writeBadJSONError(w)
		return
	}

	tag, err := h.services.Tags.CreateTag(ctx, user.UserID, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createTag").Msg("tag creation failed")
		writeError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/tags/%s", tag.TagID))
	utils.WriteJSON(w, tag, http.StatusCreated)
}

func (h *Handler) updateTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		writeUnauthenticatedError(w)
		return
	}

	var req models.TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.updateTag").Msg("Invalid JSON was passed")
		writeBadJSONError(w)
		return
	}

	tag, err := h.services.Tags.UpdateTag(ctx, chi.URLParam(r, "id"), user.UserID, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateTag").Msg("tag update failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, tag, http.StatusOK)
}

func (h *Handler) deleteTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		writeUnauthenticatedError(w)
		return
	}

	if err := h.services.Tags.DeleteTag(ctx, chi.URLParam(r, "id"), user.UserID); err != nil {
		log.Err(err).Str("func", "*Handler.deleteTag").Msg("tag deletion failed")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
