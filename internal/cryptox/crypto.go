// Package cryptox isolates the hashing primitives used by the core.
//
// Password digests are deliberately unsalted single-round SHA-256 hex, for
// compatibility with the existing persisted collections. Every call site
// goes through HashPassword so the scheme can be upgraded in one place.
// Emergency verification codes are new surface and use bcrypt digests.
package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword computes the hex-encoded SHA-256 digest of the plaintext
// password. No salt, no iteration: this is a known weakness of the stored
// format, kept for compatibility. See the package comment.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// CheckPassword compares a stored password digest against the digest of a
// candidate password in constant time.
func CheckPassword(storedHash, candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(HashPassword(candidate))) == 1
}

// DigestCode produces a bcrypt digest of an emergency verification code.
// Only the digest is retained by the reset flow; the plaintext code goes to
// the delivery channel and is never stored.
func DigestCode(code string) ([]byte, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("digesting code: %w", err)
	}
	return digest, nil
}

// CheckCode reports whether code matches the stored bcrypt digest.
func CheckCode(digest []byte, code string) bool {
	return bcrypt.CompareHashAndPassword(digest, []byte(code)) == nil
}

// GenerateCode produces a random uppercase hexadecimal code of the given
// length, suitable as a one-time verification code.
func GenerateCode(length int) (string, error) {
	b := make([]byte, (length+1)/2)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating code: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(b))[:length], nil
}
