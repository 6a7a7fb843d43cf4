// Package crypto provides cryptographic utilities for Filebridge.
package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const (
	// VerificationTokenBytes is the entropy of a verification token.
	// 16 random bytes hex-encode to a 32-character token.
	VerificationTokenBytes = 16
)

// GenerateVerificationToken generates a cryptographically random,
// single-use verification token. The token is opaque: it carries no
// structure and is only meaningful as a key into the live token set.
func GenerateVerificationToken() (string, error) {
	buf := make([]byte, VerificationTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate verification token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
