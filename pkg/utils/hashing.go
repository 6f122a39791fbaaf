package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func ComparePasswords(hashedPassword string, plainPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
}

// LegacyHash is the old hex-encoded SHA-256 scheme some admin records
// still carry. Matches are migrated to bcrypt on the next login.
func LegacyHash(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func CompareLegacyHash(legacyHash string, plainPassword string) bool {
	computed := LegacyHash(plainPassword)
	return subtle.ConstantTimeCompare([]byte(legacyHash), []byte(computed)) == 1
}

// GenerateSecureToken returns length random bytes as a hex string,
// read from crypto/rand so session tokens are not guessable.
func GenerateSecureToken(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("invalid token length")
	}

	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	return hex.EncodeToString(bytes), nil
}
