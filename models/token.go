package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims is the claim set carried by every issued JWT.
//
// In addition to the registered claim set (iss, sub, iat, exp) it embeds a
// sanitized copy of the authenticated user. Identity is entirely
// self-contained in the token: verification never touches the store, so the
// embedded user reflects the account as of issuance time until expiry.
type TokenClaims struct {
	jwt.RegisteredClaims

	// User is the sanitized account the token was issued for.
	// The password digest is stripped before issuance.
	User User `json:"user"`
}

// Token wraps a JWT token with convenience accessors for authentication flows.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing).
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be transmitted in HTTP headers.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	// Excluded from JSON serialization because only the compact string form
	// is meaningful outside the server process.
	*jwt.Token `json:"-"`

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`

	// User is the sanitized owner identity extracted from the "user" claim.
	// Internal server-side cache populated during issuance and parsing.
	User User `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}

// AuthResponse is the body returned by the login and refresh endpoints.
type AuthResponse struct {
	AuthToken string `json:"authToken"`
}
