// Package uuid generates the time-ordered identifiers used as primary
// keys across the ledger schema.
package uuid

import googleuuid "github.com/google/uuid"

// New returns a UUIDv7 string. UUIDv7 is time-ordered, which keeps
// ledger primary keys roughly insertion-ordered in the index.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		// NewV7 only fails if the random source does; fall back to v4.
		return googleuuid.New().String()
	}
	return id.String()
}

// Parse validates and canonicalizes a UUID string.
func Parse(s string) (string, error) {
	parsed, err := googleuuid.Parse(s)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

// IsValid checks if a string is a valid UUID.
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
