// Package cache stores raw feed payloads between runs so a regeneration
// request minutes after a scheduled run does not refetch every feed.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the feed payload cache.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key from a feed URL.
func Key(feedURL string) string {
	sum := sha256.Sum256([]byte(feedURL))
	return "pressbrief:feed:v1:" + hex.EncodeToString(sum[:])
}
