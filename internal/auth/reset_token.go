package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"
)

// ResetTokenTTL bounds how long a password-reset link stays valid.
const ResetTokenTTL = 15 * time.Minute

// NewResetToken generates a high-entropy single-use reset token. The raw
// token goes into the emailed link; only the hash is ever persisted.
func NewResetToken() (raw, hash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("generate reset token: %w", err)
	}
	raw = hex.EncodeToString(buf)
	return raw, HashResetToken(raw), nil
}

// HashResetToken produces the stored form of a raw reset token.
func HashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// ResetTokenMatches compares a raw token against a stored hash in constant time.
func ResetTokenMatches(raw, storedHash string) bool {
	return subtle.ConstantTimeCompare([]byte(HashResetToken(raw)), []byte(storedHash)) == 1
}
