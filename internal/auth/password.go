package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Password hashes are "salthex:hashhex" with a fixed iteration count.
// Changing pbkdf2Iterations invalidates every stored hash, so treat it as
// part of the storage format.
const (
	pbkdf2Iterations = 310000
	saltBytes        = 16
	keyBytes         = 32
)

func HashPassword(plaintext string) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(plaintext), salt, pbkdf2Iterations, keyBytes, sha256.New)

	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(key), nil
}

func VerifyPassword(stored, plaintext string) bool {
	parts := strings.SplitN(stored, ":", 2)
	if len(parts) != 2 {
		return false
	}

	salt, err := hex.DecodeString(parts[0])
	if err != nil || len(salt) == 0 {
		return false
	}

	expected, err := hex.DecodeString(parts[1])
	if err != nil {
		return false
	}

	key := pbkdf2.Key([]byte(plaintext), salt, pbkdf2Iterations, len(expected), sha256.New)

	return subtle.ConstantTimeCompare(key, expected) == 1
}
