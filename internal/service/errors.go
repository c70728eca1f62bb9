package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is the single externally visible login failure.
	// Whether the username was unknown or the password wrong is logged
	// internally but never distinguishable at the API boundary, so the
	// endpoint cannot be used to enumerate usernames.
	ErrInvalidCredentials = errors.New("invalid username/password")

	ErrTokenCreationFailed = errors.New("token creation failed")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrValidation is the match target for every *ValidationError;
	// use errors.Is(err, ErrValidation) to branch and errors.As to read
	// the offending location.
	ErrValidation = errors.New("validation error")
)

// ValidationError describes a user-correctable request defect: a malformed
// or cross-owner reference, or a missing/ill-formed required field. Location
// names the offending part of the request body.
type ValidationError struct {
	Message  string
	Location string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s (location: %s)", e.Message, e.Location)
}

// Is makes every ValidationError match the ErrValidation sentinel.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newValidationError(location, message string) *ValidationError {
	return &ValidationError{
		Message:  message,
		Location: location,
	}
}
