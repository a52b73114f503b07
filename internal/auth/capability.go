package auth

import (
	"crypto/rand"
	"encoding/hex"
)

const capabilityTokenBytes = 32

// NewCapabilityToken returns a cryptographically random, hex-encoded
// bearer token for verification and password-reset flows. The token
// carries no claims; all authority comes from the server-side lookup.
func NewCapabilityToken() (string, error) {
	buf := make([]byte, capabilityTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
