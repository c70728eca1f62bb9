package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the fixed work factor used when hashing passwords.
// 2^10 rounds of the adaptive bcrypt function; raising it invalidates
// nothing (the cost travels inside each digest) but slows new registrations.
const BcryptCost = 10

// HashPassword derives a salted one-way digest of plaintext using bcrypt.
//
// A fresh random salt is generated for every call, so hashing the same
// plaintext twice yields different digests. The salt and cost factor are
// embedded in the returned digest string.
//
// Returns an error if plaintext exceeds bcrypt's 72-byte input limit.
func HashPassword(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(digest), nil
}

// VerifyPassword reports whether plaintext matches the given bcrypt digest.
//
// The comparison recomputes the hash with the salt embedded in digest and
// compares in constant time. A malformed digest is never an error to the
// caller: it simply verifies as false, the same externally visible outcome
// as a wrong password.
func VerifyPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
