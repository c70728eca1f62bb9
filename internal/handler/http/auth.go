package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mlevich/noteful-server/internal/logger"
	"github.com/mlevich/noteful-server/internal/utils"
	"github.com/mlevich/noteful-server/models"
)

// register handles POST /api/users. On success it responds with 201 Created,
// a Location header pointing at the new resource, and the sanitized user.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.register").Msg("Invalid JSON was passed")
		writeBadJSONError(w)
		return
	}

	registeredUser, err := h.services.Auth.RegisterUser(ctx, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.register").Msg("user registration failed")
		writeError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/users/%s", registeredUser.UserID))
	utils.WriteJSON(w, registeredUser, http.StatusCreated)
}

// login handles POST /api/login. It verifies the credentials and responds
// with a fresh auth token. Unknown usernames and wrong passwords are
// indistinguishable in the response.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("Invalid JSON was passed")
		writeBadJSONError(w)
		return
	}

	foundUser, err := h.services.Auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		log.Err(err).Str("func", "*Handler.login").Str("username", req.Username).Msg("login failed")
		writeError(w, err)
		return
	}

	token, err := h.services.Auth.CreateToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("creation of token failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.AuthResponse{AuthToken: token.SignedString}, http.StatusOK)
}

// refresh handles POST /api/refresh. The auth middleware has already
// verified the presented token, so the identity from the request context is
// simply re-issued with a fresh expiration.
func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.refresh").Msg("no user identity in request context")
		writeUnauthenticatedError(w)
		return
	}

	token, err := h.services.Auth.RefreshToken(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "*Handler.refresh").Msg("token refresh failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.AuthResponse{AuthToken: token.SignedString}, http.StatusOK)
}
