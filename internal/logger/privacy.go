package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
)

var hashSalt string

func init() {
	// In production, set LOG_HASH_SALT.
	hashSalt = os.Getenv("LOG_HASH_SALT")
	if hashSalt == "" {
		hashSalt = "default-salt-change-in-production"
	}
}

// HashUsername creates a privacy-preserving hash of a username so user
// actions can be traced in logs without exposing who they belong to.
func HashUsername(username string) string {
	hash := sha256.Sum256([]byte(username + ":" + hashSalt))
	// First 8 characters are enough to correlate log lines.
	return hex.EncodeToString(hash[:])[:8]
}
