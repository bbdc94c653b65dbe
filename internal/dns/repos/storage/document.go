// Package storage implements the durable cache backends named by spec §4.5:
// a document store (bbolt) and, separately, a relational store. Both persist
// whole resolved domain.Message values so the message cache can survive a
// restart. Neither store expires entries: each Get returns the entry's
// insertion time, and the reader (the message cache) applies the TTL check,
// independent of whatever TTL mechanism, if any, the backend natively offers.
package storage

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/joshuafuller/cachedns/internal/dns/domain"
)

func init() {
	gob.Register(domain.AData{})
	gob.Register(domain.AAAAData{})
	gob.Register(domain.NSData{})
	gob.Register(domain.CNAMEData{})
	gob.Register(domain.PTRData{})
	gob.Register(domain.MXData{})
	gob.Register(domain.TXTData{})
	gob.Register(domain.SOAData{})
	gob.Register(domain.UnknownData{})
}

var bucketMessages = []byte("messages")

// record is the gob-encoded value stored per key: the cached message plus
// the timestamp it was inserted, so a reader can apply its own TTL policy
// independent of this store's retention.
type record struct {
	Message    domain.Message
	InsertedAt time.Time
}

// DocumentStore persists cached DNS messages in a single bbolt database
// file, keyed by the same "name:type" cache key the in-memory cache uses.
// Adapted from the teacher's bolt-backed blocklist store: same bbolt-open
// and bucket-per-concern shape, retargeted from block rules to cached
// messages and gob encoding instead of a hand-rolled binary layout.
type DocumentStore struct {
	db *bbolt.DB
}

// NewDocumentStore opens (or creates) a bbolt database at path and ensures
// its bucket exists.
func NewDocumentStore(path string) (*DocumentStore, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("storage: opening document store at %s: %w", path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketMessages)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: initializing document store at %s: %w", path, err)
	}
	return &DocumentStore{db: db}, nil
}

// Close releases the underlying database file.
func (s *DocumentStore) Close() error {
	return s.db.Close()
}

// Get returns the message stored for key along with the time it was
// inserted, so the caller can apply its own TTL check.
func (s *DocumentStore) Get(key string) (domain.Message, time.Time, bool, error) {
	var rec record
	found := false
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketMessages)
		if b == nil {
			return nil
		}
		v := b.Get([]byte(key))
		if v == nil {
			return nil
		}
		found = true
		return gob.NewDecoder(bytes.NewReader(v)).Decode(&rec)
	})
	if err != nil {
		return domain.Message{}, time.Time{}, false, fmt.Errorf("storage: reading %s: %w", key, err)
	}
	if !found {
		return domain.Message{}, time.Time{}, false, nil
	}
	return rec.Message, rec.InsertedAt, true, nil
}

// Put persists msg for key, stamped with insertedAt.
func (s *DocumentStore) Put(key string, msg domain.Message, insertedAt time.Time) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(record{Message: msg, InsertedAt: insertedAt}); err != nil {
		return fmt.Errorf("storage: encoding %s: %w", key, err)
	}
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketMessages)
		return b.Put([]byte(key), buf.Bytes())
	})
	if err != nil {
		return fmt.Errorf("storage: writing %s: %w", key, err)
	}
	return nil
}

// Delete removes the entry for key, if any.
func (s *DocumentStore) Delete(key string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketMessages)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("storage: deleting %s: %w", key, err)
	}
	return nil
}

// Len returns the number of persisted entries.
func (s *DocumentStore) Len() int {
	n := 0
	_ = s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketMessages)
		if b == nil {
			return nil
		}
		n = b.Stats().KeyN
		return nil
	})
	return n
}
