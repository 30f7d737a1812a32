package learning

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint computes the content hash addressing an entry: the lowercase
// hex SHA-256 digest of "source|title|details". It is a pure function of
// its inputs, so re-recording the same learning always collides with the
// stored entry.
func Fingerprint(source Source, title, details string) string {
	sum := sha256.Sum256([]byte(string(source) + "|" + title + "|" + details))
	return hex.EncodeToString(sum[:])
}
