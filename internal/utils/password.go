package utils

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLen        = 32
	keyLen         = 32
	hashIters      = 120_000
	MinPasswordLen = 8
)

// CreatePasswordHash derives a salted password hash with a fresh random salt.
// The same salt with the same password always yields the same hash, which is
// what VerifyPassword relies on.
func CreatePasswordHash(password string) (hash, salt []byte, err error) {
	salt = make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, fmt.Errorf("generate salt: %w", err)
	}
	return HashPassword(password, salt), salt, nil
}

// HashPassword derives the hash for a password under a known salt.
func HashPassword(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, hashIters, keyLen, sha512.New)
}

// VerifyPassword reports whether password matches the stored hash/salt pair.
// The comparison is constant-time.
func VerifyPassword(password string, hash, salt []byte) bool {
	computed := HashPassword(password, salt)
	return subtle.ConstantTimeCompare(computed, hash) == 1
}
