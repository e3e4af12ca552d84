package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strings"
)

const delimiter = "."

// Sign returns sessionID + "." + base64url(HMAC-SHA256(secret, sessionID)),
// without padding.
func Sign(sessionID string, secret []byte) string {
	return sessionID + delimiter + signature(sessionID, secret)
}

// Verify extracts and checks the session id carried by token. It returns the
// raw session id and true only when the token is well-formed and its
// signature matches; every other outcome is ("", false).
func Verify(token string, secret []byte) (string, bool) {
	if strings.Count(token, delimiter) != 1 {
		return "", false
	}

	sessionID, provided, _ := strings.Cut(token, delimiter)
	if sessionID == "" || provided == "" {
		return "", false
	}

	expected := signature(sessionID, secret)
	if len(provided) != len(expected) {
		return "", false
	}
	if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
		return "", false
	}

	return sessionID, true
}

func signature(sessionID string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(sessionID))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
