package internal

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
)

// SessionID is a 16-byte random identifier. Collision probability is
// astronomically small; uniqueness is never re-checked here and, if it
// matters, belongs to the storage backend.
type SessionID [16]byte

// NewSessionID draws a fresh identifier from crypto/rand.
func NewSessionID() (SessionID, error) {
	var sid SessionID
	_, err := rand.Read(sid[:])
	return sid, err
}

func (s SessionID) Bytes() []byte {
	return s[:]
}

// String renders the id as 32 lowercase hex characters, the form that rides
// in session tokens.
func (s SessionID) String() string {
	return hex.EncodeToString(s[:])
}

// ParseSessionID decodes the hex form back into a SessionID.
func ParseSessionID(sessionID string) (SessionID, error) {
	var sid SessionID

	raw, err := hex.DecodeString(sessionID)
	if err != nil {
		return sid, err
	}
	if len(raw) != len(sid) {
		return sid, errors.New("invalid session id size")
	}

	copy(sid[:], raw)
	return sid, nil
}
