// Package digest computes content fingerprints for file payloads.
//
// A digest is the lowercase hex SHA-256 of the full byte stream. It is the
// identity of a file everywhere in the system: the server stores files under
// it, and wallet signatures commit to it.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
)

// HexLen is the length of an encoded digest.
const HexLen = sha256.Size * 2

// Bytes returns the digest of b. Deterministic; the empty slice yields the
// digest of the empty byte sequence.
func Bytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// Reader returns the digest of everything readable from r. The stream is
// consumed through a single hash state, so buffering boundaries cannot
// affect the result.
func Reader(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("digest: read payload: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Valid reports whether s is a well-formed digest: exactly HexLen lowercase
// hex characters. Used to reject malformed digests before they reach a
// signature or a request path.
func Valid(s string) bool {
	if len(s) != HexLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
