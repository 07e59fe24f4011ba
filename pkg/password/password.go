// Package password provides password hashing and verification using
// PBKDF2-SHA256 with per-password random salts.
//
// Hashes are encoded as "pbkdf2-sha256$iterations$salt$hash" with base64
// segments, so the parameters travel with the hash and can be raised later
// without invalidating stored credentials.
package password

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultIterations is the PBKDF2 iteration count for new hashes.
	DefaultIterations = 210_000

	saltLength = 16
	keyLength  = 32
	scheme     = "pbkdf2-sha256"
)

var (
	// ErrEmptyPassword is returned when hashing an empty password.
	ErrEmptyPassword = errors.New("password: empty password")

	// ErrInvalidHash is returned when a stored hash cannot be parsed.
	ErrInvalidHash = errors.New("password: invalid hash encoding")

	// ErrMismatch is returned when the password does not match the hash.
	ErrMismatch = errors.New("password: mismatch")
)

// Hash derives a salted hash of the password using DefaultIterations.
func Hash(password string) (string, error) {
	return HashIterations(password, DefaultIterations)
}

// HashIterations derives a salted hash with an explicit iteration count.
func HashIterations(password string, iterations int) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if iterations < 1 {
		iterations = DefaultIterations
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	key := pbkdf2.Key([]byte(password), salt, iterations, keyLength, sha256.New)
	return fmt.Sprintf("%s$%d$%s$%s",
		scheme,
		iterations,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify checks a password against a stored hash. It returns nil on match,
// ErrMismatch on a wrong password, and ErrInvalidHash when the stored value
// is not a valid encoding. Comparison is constant-time.
func Verify(password, encoded string) error {
	parts := strings.Split(encoded, "$")
	if len(parts) != 4 || parts[0] != scheme {
		return ErrInvalidHash
	}

	iterations, err := strconv.Atoi(parts[1])
	if err != nil || iterations < 1 {
		return ErrInvalidHash
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[2])
	if err != nil {
		return ErrInvalidHash
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil || len(want) == 0 {
		return ErrInvalidHash
	}

	got := pbkdf2.Key([]byte(password), salt, iterations, len(want), sha256.New)
	if !hmac.Equal(got, want) {
		return ErrMismatch
	}
	return nil
}

// NeedsRehash reports whether a stored hash uses fewer iterations than
// DefaultIterations and should be re-hashed on next successful login.
func NeedsRehash(encoded string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 4 || parts[0] != scheme {
		return true
	}
	iterations, err := strconv.Atoi(parts[1])
	if err != nil {
		return true
	}
	return iterations < DefaultIterations
}
