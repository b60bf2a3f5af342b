package query

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketMovies    = []byte("movies")
	bucketFavorites = []byte("favorites")
)

// Cache persists query results in BoltDB with an in-memory promotion map
// for hot-path reads. Keys are hierarchical so a mutation can invalidate a
// whole namespace with one prefix scan.
type Cache struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	mem map[string][]byte
}

// NewCache opens the cache under dir. An empty dir runs memory-only
// (no persistence).
func NewCache(dir string) (*Cache, error) {
	if dir == "" {
		return &Cache{mem: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "filmoteca.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketMovies, bucketFavorites} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Cache{db: db, mem: make(map[string][]byte)}, nil
}

func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (c *Cache) get(bucket []byte, key string, dest any) bool {
	memKey := string(bucket) + ":" + key

	// Check memory cache first
	c.mu.RLock()
	if data, ok := c.mem[memKey]; ok {
		c.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	c.mu.RUnlock()

	if c.db == nil {
		return false
	}

	// Read from BoltDB
	var data []byte
	c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	c.mu.Lock()
	c.mem[memKey] = data
	c.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (c *Cache) set(bucket []byte, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	memKey := string(bucket) + ":" + key

	c.mu.Lock()
	c.mem[memKey] = data
	c.mu.Unlock()

	if c.db == nil {
		return nil // Memory-only mode
	}

	return c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

func (c *Cache) delete(bucket []byte, key string) {
	memKey := string(bucket) + ":" + key

	c.mu.Lock()
	delete(c.mem, memKey)
	c.mu.Unlock()

	if c.db == nil {
		return
	}

	c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b != nil {
			b.Delete([]byte(key))
		}
		return nil
	})
}

func (c *Cache) deletePrefix(bucket []byte, prefix string) {
	c.mu.Lock()
	memPrefix := string(bucket) + ":" + prefix
	for k := range c.mem {
		if strings.HasPrefix(k, memPrefix) {
			delete(c.mem, k)
		}
	}
	c.mu.Unlock()

	if c.db == nil {
		return
	}

	c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		cur := b.Cursor()
		prefixBytes := []byte(prefix)
		for k, _ := cur.Seek(prefixBytes); k != nil && strings.HasPrefix(string(k), prefix); k, _ = cur.Next() {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// === Movies ===

func (c *Cache) GetMovies(key string, dest any) bool {
	return c.get(bucketMovies, key, dest)
}

func (c *Cache) SaveMovies(key string, value any) error {
	return c.set(bucketMovies, key, value)
}

// === Favorites ===

func (c *Cache) GetFavorites(key string, dest any) bool {
	return c.get(bucketFavorites, key, dest)
}

func (c *Cache) SaveFavorites(key string, value any) error {
	return c.set(bucketFavorites, key, value)
}

// === Invalidation (hierarchical prefix deletion) ===

// InvalidateMovie wipes the single-movie entry plus every listing that
// could contain it
func (c *Cache) InvalidateMovie(id int) {
	c.delete(bucketMovies, MovieKey(id))
	c.InvalidateMovieLists()
}

// InvalidateMovieLists wipes every cached movie listing (paginated lists,
// searches, rankings, per-user lists) while keeping single-movie entries
func (c *Cache) InvalidateMovieLists() {
	for _, prefix := range ListPrefixes() {
		c.deletePrefix(bucketMovies, prefix)
	}
}

// InvalidateFavorites wipes a user's favorites snapshot
func (c *Cache) InvalidateFavorites(userID int) {
	c.deletePrefix(bucketFavorites, FavoritesPrefix(userID))
}

func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	c.mem = make(map[string][]byte)
	c.mu.Unlock()

	if c.db == nil {
		return
	}

	c.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketMovies, bucketFavorites} {
			b := tx.Bucket(bucket)
			if b == nil {
				continue
			}
			cur := b.Cursor()
			for k, _ := cur.First(); k != nil; k, _ = cur.Next() {
				if err := b.Delete(k); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
