// Package idempotency validates client-supplied Idempotency-Key values and
// fingerprints the request a key was first used with.
package idempotency

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

// MaxKeyLen bounds the header value; UUIDs and ULIDs fit comfortably.
const MaxKeyLen = 128

var reKey = regexp.MustCompile(`^[A-Za-z0-9_.:\-]{1,128}$`)

// Valid reports whether key matches ^[A-Za-z0-9_.:-]{1,128}$.
func Valid(key string) bool {
	return reKey.MatchString(key)
}

// Fingerprint hashes the request parts so a reused key can be checked
// against the request it was first seen with.
func Fingerprint(parts ...string) string {
	h := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return hex.EncodeToString(h[:])
}
