package utils

import (
	"crypto/md5"
	"encoding/hex"
)

// GenerateChatID maps an unordered pair of user emails to a reproducible
// chat identifier: both clients of a pair derive the same id without any
// coordination round-trip, so the chat record keyed by it is created
// idempotently. The digest is for routing only, not a security property.
func GenerateChatID(a, b string) string {
	if b < a {
		a, b = b, a
	}
	sum := md5.Sum([]byte(a + "_" + b))
	return hex.EncodeToString(sum[:])
}
