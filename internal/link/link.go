// Package link implements the reversible filename obfuscation used in
// shareable download URLs. The encoding is raw URL-safe base64 with the
// padding stripped, so a token can sit directly in a path segment.
//
// The codec is deterministic and reversible but not tamper-evident: a
// forged token decodes to some unrelated filename, which downstream code
// treats as "file not found". That is acceptable for filenames, which are
// not secret-bearing; do not reuse this codec for sensitive identifiers
// without adding integrity protection.
package link

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"

	"github.com/stratovia/filebridge/internal/domain"
)

// Encode encodes a filename into a URL-safe opaque token.
// For every valid filename f, Decode(Encode(f)) == f.
func Encode(filename string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(filename))
}

// Decode decodes a token back into a filename. It tolerates both the
// padding-stripped form produced by Encode and a padded variant. Malformed
// input of any kind (wrong length, characters outside the URL-safe
// alphabet, payload that is not valid UTF-8) returns
// domain.ErrInvalidLink; Decode never panics.
func Decode(token string) (string, error) {
	if token == "" {
		return "", domain.ErrInvalidLink
	}

	// Accept tokens that arrive with padding attached.
	trimmed := strings.TrimRight(token, "=")
	if trimmed == "" || strings.Contains(trimmed, "=") {
		return "", domain.ErrInvalidLink
	}

	decoded, err := base64.RawURLEncoding.DecodeString(trimmed)
	if err != nil {
		return "", domain.ErrInvalidLink
	}

	if !utf8.Valid(decoded) {
		return "", domain.ErrInvalidLink
	}

	return string(decoded), nil
}
