package models

import "time"

// User represents an account entity used for authentication and as the
// exclusive owner of folders, tags and notes. Sensitive fields must never
// be exposed outside trusted boundaries.
type User struct {
	// UserID is the unique identifier of the user (UUID).
	UserID string `json:"id"`

	// Username is the unique login identifier. Stored trimmed; the server
	// rejects credential values with surrounding whitespace instead of
	// trimming them silently.
	Username string `json:"username"`

	// FullName is the optional display name of the user.
	// It is non-sensitive and may be shown in UI.
	FullName string `json:"fullname"`

	// PasswordHash is the bcrypt digest of the user's password.
	// Never serialized; set once at registration, no update path.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"createdAt"`
}

// Sanitize returns a copy of the user with the password digest stripped.
// The sanitized copy is what gets embedded into tokens and API responses.
func (u User) Sanitize() User {
	u.PasswordHash = ""
	return u
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// RegisterRequest is the payload accepted by the registration endpoint.
// The password travels in plain text over the transport and is hashed
// before it ever reaches the store.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"fullname"`
}

// LoginRequest is the payload accepted by the login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
