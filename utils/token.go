package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateToken returns a 256-bit random token rendered as 64 hex
// characters, used for invitation links.
func GenerateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
