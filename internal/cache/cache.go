// Package cache memoizes compiled systems by source content hash, so
// hosts that rebuild the same model repeatedly skip recompilation. Core
// packages never depend on it; it wraps them.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/weftlab/weft/internal/ir"
)

// DefaultSize bounds the number of retained systems. Models are small;
// the bound exists to keep long-lived hosts from accumulating every
// variant they ever compiled.
const DefaultSize = 128

// CompileCache is a threadsafe LRU of compiled systems keyed by source
// content hash.
type CompileCache struct {
	lru *lru.Cache[string, *ir.SystemIR]
}

// New creates a cache retaining up to size systems. Non-positive sizes
// fall back to DefaultSize.
func New(size int) (*CompileCache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	inner, err := lru.New[string, *ir.SystemIR](size)
	if err != nil {
		return nil, fmt.Errorf("compile cache: %w", err)
	}
	return &CompileCache{lru: inner}, nil
}

// SourceKey derives the cache key for raw model source bytes.
func SourceKey(source []byte) string {
	sum := sha256.Sum256(source)
	return hex.EncodeToString(sum[:])
}

// GetOrCompile returns the cached system for key, or runs compile and
// caches its result. Compile errors are never cached.
func (c *CompileCache) GetOrCompile(key string, compile func() (*ir.SystemIR, error)) (*ir.SystemIR, error) {
	if system, ok := c.lru.Get(key); ok {
		return system, nil
	}
	system, err := compile()
	if err != nil {
		return nil, err
	}
	c.lru.Add(key, system)
	return system, nil
}

// Len returns the number of cached systems.
func (c *CompileCache) Len() int {
	return c.lru.Len()
}
