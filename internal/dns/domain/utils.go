package domain

import "fmt"

// GenerateCacheKey returns the cache key string for a (name, type) pair.
// The format is "name:type"; storage backends must split on the rightmost
// colon (see utils.SplitCacheKey) since domain names never contain a colon
// but the split point itself is specified as rightmost for robustness.
func GenerateCacheKey(name string, t RRType) string {
	return fmt.Sprintf("%s:%d", name, t)
}
