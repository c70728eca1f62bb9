package utils

import "github.com/google/uuid"

// UUIDGenerator produces time-ordered identifiers for new entities.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7 string, falling back to v4 if the system
// clock-based generation fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// IsValidID reports whether s is a well-formed entity identifier.
// Malformed client-supplied ids are rejected before any store access.
func IsValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
