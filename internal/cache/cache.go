// Package cache is a two-tier cache for compressed output: an in-memory
// admission cache (tinylfu) in front of a persistent backing store
// (pebble), keyed by the xxhash of the raw bytes the output was compressed
// from. A hit returns the stored output, so input seen before skips the
// iterative parse entirely; input that differs in any byte gets a
// different key.
package cache

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/pebble/v2"
	"github.com/dgryski/go-tinylfu"
)

// Cache is safe for concurrent use: pebble.DB already is, and mu serializes
// access to the tinylfu hot tier, which is not. This matters now that the
// CLI's worker pool can have several files hitting the same Cache at once.
type Cache struct {
	mu   sync.Mutex
	hot  *tinylfu.T[uint64, []byte]
	cold *pebble.DB
}

// Open creates or reuses a pebble database at dir as the cold tier, backed
// by an in-memory tinylfu admission cache sized to hotEntries.
func Open(dir string, hotEntries int) (*Cache, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("zopfligo: cache: open %s: %w", dir, err)
	}
	return &Cache{
		hot:  tinylfu.New[uint64, []byte](hotEntries, hotEntries*10, identityHash),
		cold: db,
	}, nil
}

func identityHash(k uint64) uint64 { return k }

func (c *Cache) Close() error {
	return c.cold.Close()
}

// Key hashes a block's raw bytes into a cache key.
func Key(block []byte) uint64 {
	return xxhash.Sum64(block)
}

// Get returns the cached compressed bytes for key, if any. A hot-tier miss
// falls through to pebble and, on a cold-tier hit, promotes the value back
// into the hot tier.
func (c *Cache) Get(key uint64) ([]byte, bool) {
	c.mu.Lock()
	v, ok := c.hot.Get(key)
	c.mu.Unlock()
	if ok {
		return v, true
	}

	v, closer, err := c.cold.Get(keyBytes(key))
	if err != nil {
		return nil, false
	}
	out := append([]byte(nil), v...)
	closer.Close()

	c.mu.Lock()
	c.hot.Add(key, out)
	c.mu.Unlock()
	return out, true
}

// Put stores compressed for key in both tiers.
func (c *Cache) Put(key uint64, compressed []byte) error {
	c.mu.Lock()
	c.hot.Add(key, append([]byte(nil), compressed...))
	c.mu.Unlock()
	return c.cold.Set(keyBytes(key), compressed, pebble.NoSync)
}

func keyBytes(key uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, key)
	return b
}
