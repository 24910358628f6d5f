// Package checksum computes vocabulary version fingerprints.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns a short digest of an ordered list of strings. Each
// part is terminated by a newline so that ("ab", "c") and ("a", "bc")
// differ.
func Fingerprint(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
