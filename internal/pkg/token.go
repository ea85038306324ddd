package pkg

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

const gameIDLength = 24

// NewSessionID returns a fresh opaque session token.
func NewSessionID() string {
	return uuid.NewString()
}

// NewGameID returns a fresh game identifier: 24 hexadecimal characters, the
// format the repositories store and validate.
func NewGameID() string {
	buf := make([]byte, gameIDLength/2)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Errorf("failed to read random bytes: %w", err))
	}

	return hex.EncodeToString(buf)
}

// IsGameID reports whether id has the repository identifier format.
func IsGameID(id string) bool {
	if len(id) != gameIDLength {
		return false
	}

	_, err := hex.DecodeString(id)

	return err == nil
}
