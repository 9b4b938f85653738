package cache

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
)

const (
	searchKeyPrefix = "eventum:search:"
	searchTTLSecs   = 30
)

// SearchKey derives a stable cache key from the canonical filter string.
// The sha1 keeps arbitrary query text out of the keyspace.
func SearchKey(canonical string) string {
	sum := sha1.Sum([]byte(canonical))
	return fmt.Sprintf("%s%s", searchKeyPrefix, hex.EncodeToString(sum[:]))
}
