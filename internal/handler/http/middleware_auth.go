package http

import (
	"context"
	"net/http"

	"github.com/mlevich/noteful-server/internal/logger"
	"github.com/mlevich/noteful-server/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer token,
// validates it via [service.AuthService.ParseToken], and on success stores
// the authenticated user in the request context under [utils.UserCtxKey]
// before delegating to the next handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized when:
//   - The "Authorization" header is absent ([ErrEmptyAuthorizationHeader]).
//   - The header value is not a well-formed "Bearer <token>"
//     ([ErrInvalidAuthorizationHeader]).
//   - The token is expired, forged, signed with an unexpected algorithm,
//     or otherwise invalid.
//
// Verification is purely cryptographic; no user store lookup happens here.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			writeUnauthenticatedError(w)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(ErrInvalidAuthorizationHeader).Send()
			writeUnauthenticatedError(w)
			return
		}

		ctx := r.Context()
		token, err := h.services.Auth.ParseToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("bearer token rejected")
			writeUnauthenticatedError(w)
			return
		}

		// Store the authenticated user in the context so that downstream
		// handlers can retrieve it without re-parsing the token.
		ctx = context.WithValue(ctx, utils.UserCtxKey, token.User)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
