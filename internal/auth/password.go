package auth

import (
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a bcrypt hash suitable for storage. Empty
// passwords are rejected up front.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost())
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// ComparePasswordAndHash checks the cleartext password against the
// stored bcrypt hash.
func ComparePasswordAndHash(password, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatchedHashAndPassword
	}
	return err
}

// RandomPasswordHash returns the hash of a throwaway random password.
// No cleartext will ever compare equal to it; it backs the
// unknown-identifier compare in VerifyIdentity.
func RandomPasswordHash() string {
	h, err := HashPassword(uuid.NewString())
	if err != nil {
		// only reachable with an out-of-range bcrypt cost
		panic(err)
	}
	return h
}
