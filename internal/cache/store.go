// Package cache provides a content-addressed cache of extraction results.
// Keys are derived from the source bytes and the grammar dialect, so a file
// whose content has not changed is never re-parsed by the CLI or the
// watcher. The library extraction path itself stays cache-free.
package cache

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/maypok86/otter"

	"github.com/Kryft-Studios/parsee/extraction"
)

// DefaultCapacity bounds the number of cached extraction results.
const DefaultCapacity = 4096

// Store caches extraction results by content hash.
type Store struct {
	items otter.Cache[string, []extraction.Item]
}

// New creates a store with the given capacity. Capacity values below 1 fall
// back to DefaultCapacity.
func New(capacity int) (*Store, error) {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	items, err := otter.MustBuilder[string, []extraction.Item](capacity).Build()
	if err != nil {
		return nil, err
	}
	return &Store{items: items}, nil
}

// Key derives the cache key for a source unit: SHA-256 of the content,
// qualified by the dialect so the same bytes parsed as TSX and TypeScript
// never collide.
func Key(source []byte, dialect string) string {
	sum := sha256.Sum256(source)
	return dialect + ":" + hex.EncodeToString(sum[:])
}

// Get returns the cached items for a key.
func (s *Store) Get(key string) ([]extraction.Item, bool) {
	return s.items.Get(key)
}

// Put stores the items for a key.
func (s *Store) Put(key string, items []extraction.Item) {
	s.items.Set(key, items)
}

// Invalidate drops one key, used when a watched file is deleted.
func (s *Store) Invalidate(key string) {
	s.items.Delete(key)
}

// Len reports the number of cached entries.
func (s *Store) Len() int {
	return s.items.Size()
}

// Close releases the underlying cache.
func (s *Store) Close() {
	s.items.Close()
}
