package auth

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateResetToken returns a 256-bit random token, hex-encoded.
func GenerateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
