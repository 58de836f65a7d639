// Package cache provides pluggable byte caches used by the fetch path.
//
// Search responses from the Twitter API are cached briefly so that
// repeated fetches of the same query within a window do not burn rate
// limit budget. Three backends exist: FileCache for normal CLI use,
// RedisCache when a shared cache is configured, and NullCache to disable
// caching entirely.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// SearchTTL is how long a cached search response stays valid. Recent
// search results drift quickly; fifteen minutes is long enough to cover a
// fetch-then-analyze session.
const SearchTTL = 15 * time.Minute

// Cache stores opaque byte values under string keys with a TTL.
type Cache interface {
	// Get retrieves a value. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// SearchKey builds the cache key for a search request. The key hashes the
// request parameters, so any change to query or page size is a miss.
func SearchKey(query string, maxResults int) string {
	return hashKey("search", query, maxResults)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
