package nsec3

import (
	"crypto/md5" //nolint:gosec
	"encoding/hex"
	"fmt"
)

const (
	cacheFilePrefix = "nsec3_"
	cacheFileSuffix = ".json"
	wireKeySuffix   = "_wire"
)

// CacheKey identifies the precomputed table of one salt/iteration pair.
// The salt is taken as given, not decoded.
func CacheKey(salt string, iterations uint32) string {
	return keyOf(fmt.Sprintf("%s_%d", salt, iterations))
}

// WireCacheKey is the CacheKey counterpart for tables built with WireHash
func WireCacheKey(salt string, iterations uint32) string {
	return keyOf(fmt.Sprintf("%s_%d%s", salt, iterations, wireKeySuffix))
}

// CacheFileName returns the file name of the table stored under key
func CacheFileName(key string) string {
	return cacheFilePrefix + key + cacheFileSuffix
}

func keyOf(input string) string {
	sum := md5.Sum([]byte(input)) //nolint:gosec

	return hex.EncodeToString(sum[:])
}
