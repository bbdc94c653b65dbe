package utils

import (
	"strings"

	"golang.org/x/net/idna"
)

// CanonicalDNSName returns a DNS name in canonical form:
//   - Lowercased
//   - Trimmed of surrounding whitespace
//   - Trailing root dot removed (spec treats it as optional, not stored)
//
// Internationalized names are converted to their ASCII (punycode) form via
// idna.ToASCII; names that fail conversion (already-ASCII labels with
// characters idna rejects, e.g. underscores in SRV-style owners) fall back
// to a plain lowercase/trim, since comparison in this package is defined as
// case-insensitive ASCII regardless.
func CanonicalDNSName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimSuffix(name, ".")
	if ascii, err := idna.ToASCII(name); err == nil {
		name = ascii
	}
	return strings.ToLower(name)
}

// SplitCacheKey splits a "name:type" cache key on its rightmost colon, so
// that domain names containing colons (not valid in DNS, but tolerated by
// storage backends per spec §6) never break the split.
func SplitCacheKey(key string) (name string, typ string, ok bool) {
	idx := strings.LastIndexByte(key, ':')
	if idx < 0 {
		return "", "", false
	}
	return key[:idx], key[idx+1:], true
}
