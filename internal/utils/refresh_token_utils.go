package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashRefreshToken hashes a raw refresh token for storage. SHA-256 is enough
// here: the input is itself a high-entropy random string, not a password.
func HashRefreshToken(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(sum[:])
}

// CompareRefreshTokenHash compares a raw refresh token with a stored hash in
// constant time.
func CompareRefreshTokenHash(rawToken, storedHash string) bool {
	computed := HashRefreshToken(rawToken)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
