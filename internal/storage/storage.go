package storage

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/dgraph-io/badger/v4"
)

const keySize = 9

// PerftCache wraps BadgerDB as a store of subtree node counts.
// Keys are the 8-byte board hash followed by one byte of remaining depth.
type PerftCache struct {
	db     *badger.DB
	hits   atomic.Uint64
	misses atomic.Uint64
}

// Open opens (or creates) the cache rooted at dir. An empty dir selects the
// platform cache directory.
func Open(dir string) (*PerftCache, error) {
	if dir == "" {
		var err error
		if dir, err = GetCacheDir(); err != nil {
			return nil, err
		}
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	return open(opts)
}

// OpenInMemory opens a cache that lives only as long as the process.
func OpenInMemory() (*PerftCache, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*PerftCache, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening perft cache: %w", err)
	}
	return &PerftCache{db: db}, nil
}

// Close closes the database
func (c *PerftCache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func cacheKey(hash uint64, depth int) []byte {
	key := make([]byte, keySize)
	binary.BigEndian.PutUint64(key, hash)
	key[8] = byte(depth)
	return key
}

// Get returns the stored node count for hash at depth.
func (c *PerftCache) Get(hash uint64, depth int) (uint64, bool, error) {
	var nodes uint64
	found := false

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(cacheKey(hash, depth))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) != 8 {
				return fmt.Errorf("perft cache: corrupt value of %d bytes", len(val))
			}
			nodes = binary.BigEndian.Uint64(val)
			found = true
			return nil
		})
	})
	if err != nil {
		return 0, false, err
	}

	if found {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return nodes, found, nil
}

// Put stores the node count for hash at depth.
func (c *PerftCache) Put(hash uint64, depth int, nodes uint64) error {
	val := make([]byte, 8)
	binary.BigEndian.PutUint64(val, nodes)

	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(cacheKey(hash, depth), val)
	})
}

// HitRate returns the cache hit rate as a percentage.
func (c *PerftCache) HitRate() float64 {
	hits, misses := c.hits.Load(), c.misses.Load()
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total) * 100
}
