package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// TokenType is returned alongside every issued access token.
const TokenType = "Bearer"

// GenerateToken returns a new random bearer token and the hash to persist.
// The raw value is handed to the client once and never stored.
func GenerateToken() (raw string, hash string, err error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", "", err
	}
	secret, err := uuid.NewRandom()
	if err != nil {
		return "", "", err
	}
	raw = strings.ReplaceAll(id.String()+secret.String(), "-", "")
	return raw, HashToken(raw), nil
}

func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
