package http

import (
	"errors"
	"net/http"

	"github.com/mlevich/noteful-server/internal/service"
	"github.com/mlevich/noteful-server/internal/store"
	"github.com/mlevich/noteful-server/internal/utils"
)

// validationReason is the machine-readable reason carried by every
// user-correctable error response.
const validationReason = "ValidationError"

// errorResponse is the JSON body of every non-2xx response.
type errorResponse struct {
	Status   int    `json:"status"`
	Message  string `json:"message"`
	Reason   string `json:"reason,omitempty"`
	Location string `json:"location,omitempty"`
}

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,

	store.ErrUsernameAlreadyExists:   http.StatusBadRequest,
	store.ErrFolderNameAlreadyExists: http.StatusBadRequest,
	store.ErrTagNameAlreadyExists:    http.StatusBadRequest,
	store.ErrNoUserWasFound:          http.StatusNotFound,
	store.ErrFolderNotFound:          http.StatusNotFound,
	store.ErrTagNotFound:             http.StatusNotFound,
	store.ErrNoteNotFound:            http.StatusNotFound,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError maps a service or store error to an HTTP status code and a
// JSON error body. Validation failures carry a reason and a location so
// clients can highlight the offending field; everything mapped to 500 gets
// a generic message so internals never leak.
func writeError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		utils.WriteJSON(w, errorResponse{
			Status:   http.StatusBadRequest,
			Message:  validationErr.Message,
			Reason:   validationReason,
			Location: validationErr.Location,
		}, http.StatusBadRequest)
		return
	}

	status := statusFromError(err)
	body := errorResponse{
		Status:  status,
		Message: http.StatusText(status),
	}

	switch {
	case errors.Is(err, store.ErrUsernameAlreadyExists):
		body.Message = "The username already exists"
		body.Reason = validationReason
		body.Location = "username"
	case errors.Is(err, store.ErrFolderNameAlreadyExists):
		body.Message = "The folder name already exists"
		body.Reason = validationReason
		body.Location = "name"
	case errors.Is(err, store.ErrTagNameAlreadyExists):
		body.Message = "The tag name already exists"
		body.Reason = validationReason
		body.Location = "name"
	case errors.Is(err, service.ErrInvalidCredentials):
		body.Message = service.ErrInvalidCredentials.Error()
	case errors.Is(err, service.ErrTokenIsExpiredOrInvalid):
		body.Message = service.ErrTokenIsExpiredOrInvalid.Error()
	case errors.Is(err, service.ErrInvalidDataProvided):
		body.Message = service.ErrInvalidDataProvided.Error()
	}

	utils.WriteJSON(w, body, status)
}

// writeBadJSONError reports an unparseable request body.
func writeBadJSONError(w http.ResponseWriter) {
	utils.WriteJSON(w, errorResponse{
		Status:  http.StatusBadRequest,
		Message: "Invalid JSON was passed",
	}, http.StatusBadRequest)
}

// writeUnauthenticatedError reports a missing or rejected bearer token.
func writeUnauthenticatedError(w http.ResponseWriter) {
	utils.WriteJSON(w, errorResponse{
		Status:  http.StatusUnauthorized,
		Message: "Unauthorized",
	}, http.StatusUnauthorized)
}
