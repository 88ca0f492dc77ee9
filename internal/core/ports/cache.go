package ports

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"
	"time"

	"strings"
)

// Cache is a generic read-through key/value layer with fixed TTLs.
// Implementations must treat their own failures as misses: callers fall
// through to the primary store and never fail a request on cache errors.
type Cache interface {
	// Get returns the raw cached value and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Cache expiries. Listings go stale after five minutes at worst; aggregated
// metrics tolerate ten.
const (
	ListingTTL = 300 * time.Second
	MetricsTTL = 600 * time.Second
)

// Well-known aggregate keys, invalidated explicitly on every mutation of the
// underlying collection. Parameter-derived listing keys are left to expire.
const (
	KeyAllUsers        = "users:all"
	KeyPipelineMetrics = "reports:pipeline"
)

// CacheKey builds a canonical cache key from a prefix and query parameters.
// Parameters are sorted by name and empty values dropped before hashing, so
// identical logical queries always map to the same entry regardless of
// parameter order or formatting.
func CacheKey(prefix string, params map[string]string) string {
	names := make([]string, 0, len(params))
	for name, value := range params {
		if value == "" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	h := fnv.New64a()
	for _, name := range names {
		_, _ = h.Write([]byte(name))
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(strings.TrimSpace(params[name])))
		_, _ = h.Write([]byte{0})
	}
	return fmt.Sprintf("%s:v1:%016x", prefix, h.Sum64())
}
