// Package service provides password hashing for user credentials.
package service

import (
	"strings"

	"github.com/allisson/go-pwdhash"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/codecollab/server/internal/errors"
)

// bcryptPrefixes are the identifiers of bcrypt hashes produced by the legacy store.
var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// argon2idPrefix identifies hashes produced by go-pwdhash.
const argon2idPrefix = "$argon2id$"

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	// Hash returns the Argon2id encoding of password.
	Hash(password string) (string, error)

	// Verify compares password with hash. needsRehash is true when the hash uses a
	// legacy algorithm and should be replaced after a successful login.
	Verify(password, hash string) (ok bool, needsRehash bool)

	// IsSupported reports whether hash can be verified by this hasher.
	IsSupported(hash string) bool
}

// passwordHasher implements PasswordHasher with Argon2id and a bcrypt fallback.
type passwordHasher struct {
	hasher *pwdhash.PasswordHasher
}

// NewPasswordHasher creates a PasswordHasher using the pwdhash interactive policy.
func NewPasswordHasher() (PasswordHasher, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}
	return &passwordHasher{hasher: hasher}, nil
}

func (p *passwordHasher) Hash(password string) (string, error) {
	hash, err := p.hasher.Hash([]byte(password))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hash, nil
}

func (p *passwordHasher) Verify(password, hash string) (bool, bool) {
	if isBcrypt(hash) {
		err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
		return err == nil, err == nil
	}

	ok, err := p.hasher.Verify([]byte(password), hash)
	if err != nil {
		return false, false
	}
	return ok, false
}

func (p *passwordHasher) IsSupported(hash string) bool {
	return isBcrypt(hash) || strings.HasPrefix(hash, argon2idPrefix)
}

func isBcrypt(hash string) bool {
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(hash, prefix) {
			return true
		}
	}
	return false
}
