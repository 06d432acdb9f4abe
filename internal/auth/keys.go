package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

const keyBytes = 32

// GenerateKey returns a new random API key encoded as 64 hex characters.
func GenerateKey() (string, error) {
	buf := make([]byte, keyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// DeriveKey returns the hex SHA-256 of email followed by secret. Keys made
// this way are reproducible by anyone holding the secret.
func DeriveKey(email, secret string) string {
	sum := sha256.Sum256([]byte(email + secret))
	return hex.EncodeToString(sum[:])
}

// KeyGenerator produces the API key for a newly registered user.
type KeyGenerator func(email string) (string, error)

// RandomKeys ignores the email and returns GenerateKey output.
func RandomKeys() KeyGenerator {
	return func(string) (string, error) {
		return GenerateKey()
	}
}

// DerivedKeys returns DeriveKey output for the given secret.
func DerivedKeys(secret string) KeyGenerator {
	return func(email string) (string, error) {
		return DeriveKey(email, secret), nil
	}
}
