package services

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the acceptance policy for new passwords.
const MinPasswordLength = 6

// Credentials hashes and verifies account passwords.
type Credentials struct {
	cost int
}

func NewCredentials() *Credentials {
	return &Credentials{cost: bcrypt.DefaultCost}
}

func (c *Credentials) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), c.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches storedHash. A mismatch is a plain
// false, never an error.
func (c *Credentials) Verify(plaintext, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plaintext)) == nil
}
