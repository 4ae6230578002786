// Package credential hashes and verifies user passwords. The stored form is
// opaque to the rest of the system.
package credential

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hash derives a verifiable credential from a plaintext secret.
func Hash(secret string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash credential: %w", err)
	}
	return hash, nil
}

// Verify reports whether the presented secret matches the stored credential.
// bcrypt's comparison does not leak prefix-match timing. Verify never errors
// on a well-formed stored hash, it only answers yes or no.
func Verify(storedHash []byte, presented string) bool {
	return bcrypt.CompareHashAndPassword(storedHash, []byte(presented)) == nil
}
