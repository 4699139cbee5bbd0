// Package cache provides a small content-addressed byte cache.
//
// qrsheet caches encoded symbol images so that regenerating a sheet with the
// same codes, size and error level skips QR encoding and rasterization.
//
// Two implementations are provided:
//   - FileCache: one file per entry under a directory (CLI default)
//   - NullCache: a no-op cache used with --no-cache and in tests
//
// Keys are produced by a [Keyer] so that every option affecting the cached
// bytes is part of the key.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Cache stores opaque byte values with an optional time-to-live.
type Cache interface {
	// Get returns the value and true on a hit. Expired or unreadable entries
	// are reported as a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl <= 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// TTLSymbol is the default lifetime of a cached symbol image.
const TTLSymbol = 7 * 24 * time.Hour

// SymbolKeyOpts are the encoding options that change a symbol image.
type SymbolKeyOpts struct {
	Size   int    `json:"size"`
	Level  string `json:"level"`
	Border int    `json:"border"`
}

// Keyer generates cache keys.
type Keyer interface {
	// SymbolKey returns the key of the encoded image for code.
	SymbolKey(code string, opts SymbolKeyOpts) string
}

// DefaultKeyer hashes every key component.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// keyVersion is bumped when the cached symbol format changes.
const keyVersion = "v1"

// SymbolKey implements Keyer. Keys look like "symbol:v1:<sha256 hex>".
func (DefaultKeyer) SymbolKey(code string, opts SymbolKeyOpts) string {
	parts, _ := json.Marshal(struct {
		Code string        `json:"code"`
		Opts SymbolKeyOpts `json:"opts"`
	}{code, opts})
	return "symbol:" + keyVersion + ":" + Hash(parts)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
