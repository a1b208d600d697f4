// Package cache memoizes completed summary entries so that repeated
// analysis of the same letter (common in batch re-runs) does not repeat
// backend calls. Failed entries are never cached.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for summary memoization
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// SummaryKey derives a cache key from the variant, the model
// identifier and the cleaned text. Any change to the three inputs
// yields a distinct key.
func SummaryKey(variant, mdl, text string) string {
	hash := sha256.Sum256([]byte(variant + "|" + mdl + "|" + text))
	return "rtiscope:v1:" + hex.EncodeToString(hash[:])
}
