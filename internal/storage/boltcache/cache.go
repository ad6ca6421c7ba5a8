// Package boltcache stores converted area documents in a bbolt file, keyed
// by the content they were converted from.
package boltcache

import (
	"crypto/sha256"
	"fmt"
	"strings"

	bbolt "go.etcd.io/bbolt"

	"github.com/cory-johannsen/mudarea/internal/area"
)

var bucketAreas = []byte("areas")

// Cache is a content-addressed store of converted areas.
type Cache struct {
	db *bbolt.DB
}

// Open opens or creates the cache file at path.
//
// Postcondition: Returns a Cache whose bucket exists, or a non-nil error.
func Open(path string) (*Cache, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("boltcache: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketAreas)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("boltcache: create bucket: %w", err)
	}
	return &Cache{db: db}, nil
}

// Key derives the cache key for raw area file bytes decoded with encoding
// and parsed as dialect d. Changing either the dialect or the encoding
// changes the key.
func Key(d area.Dialect, encoding string, data []byte) []byte {
	h := sha256.New()
	h.Write([]byte(d.String()))
	h.Write([]byte{0})
	h.Write([]byte(strings.ToLower(encoding)))
	h.Write([]byte{0})
	h.Write(data)
	return h.Sum(nil)
}

// Get returns a copy of the value stored under key.
//
// Postcondition: ok is false when the key is absent.
func (c *Cache) Get(key []byte) (value []byte, ok bool, err error) {
	err = c.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketAreas).Get(key)
		if v == nil {
			return nil
		}
		value = append([]byte(nil), v...)
		ok = true
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("boltcache: get: %w", err)
	}
	return value, ok, nil
}

// Put stores value under key, replacing any previous value.
func (c *Cache) Put(key, value []byte) error {
	err := c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketAreas).Put(key, value)
	})
	if err != nil {
		return fmt.Errorf("boltcache: put: %w", err)
	}
	return nil
}

// Len returns the number of cached entries.
func (c *Cache) Len() (int, error) {
	var n int
	err := c.db.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket(bucketAreas).Stats().KeyN
		return nil
	})
	return n, err
}

// Path returns the filesystem path of the cache file.
func (c *Cache) Path() string { return c.db.Path() }

// Close closes the underlying bbolt database.
func (c *Cache) Close() error {
	return c.db.Close()
}
