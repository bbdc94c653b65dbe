// Package dnscache implements the capacity-bounded, TTL-aware cache described
// in spec §4.4: entries are whole resolved messages keyed by "name:type",
// promoted to MRU on both read and write, and expired lazily on read. A
// bloom-filter prefilter short-circuits Get on a guaranteed miss, skipping
// the LRU lookup outright (and, when there's no durable backing store
// attached, the miss entirely).
package dnscache

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/joshuafuller/cachedns/internal/dns/common/clock"
	"github.com/joshuafuller/cachedns/internal/dns/common/log"
	"github.com/joshuafuller/cachedns/internal/dns/domain"
	"github.com/joshuafuller/cachedns/internal/dns/services/resolver"
)

// DefaultCapacity is the cache's default entry limit.
const DefaultCapacity = 1000

// DefaultTTL is applied to a cached message whose EffectiveTTL is zero.
const DefaultTTL = 300 * time.Second

// Backing is a durable store a Cache can read through on a miss and write
// through on every Put, per spec §4.5. *storage.DocumentStore and
// *storage.RelationalStore both satisfy this.
type Backing interface {
	Get(key string) (domain.Message, time.Time, bool, error)
	Put(key string, msg domain.Message, insertedAt time.Time) error
}

type entry struct {
	message    domain.Message
	insertedAt time.Time
	ttl        time.Duration
}

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Hits     uint64
	Misses   uint64
	Size     int
	Capacity int
}

// Entry is one (key, message, insertedAt) triple, as returned by Entries.
type Entry struct {
	Key        string
	Message    domain.Message
	InsertedAt time.Time
}

// Cache is an in-memory, thread-safe, LRU-evicted, TTL-expiring store of
// resolved DNS messages.
type Cache struct {
	mu         sync.Mutex
	lru        *lru.Cache[string, *entry]
	clock      clock.Clock
	capacity   int
	defaultTTL time.Duration
	hits       uint64
	misses     uint64
	backing    Backing
	logger     log.Logger
	prefilter  *prefilter
}

// UseBacking attaches a durable backing store: subsequent Gets consult it on
// an in-memory miss, and subsequent Puts write through to it. Passing a nil
// backing disables read/write-through.
//
// UseBacking does not retroactively populate the prefilter from the
// backing's existing contents, so a key written by an earlier process run
// misses the prefilter until this process Puts or loads it. Get still
// consults the backing store on such a prefilter miss, so the entry is
// found; only the LRU lookup is skipped.
func (c *Cache) UseBacking(b Backing, logger log.Logger) {
	if logger == nil {
		logger = log.GetLogger()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.backing = b
	c.logger = logger
}

// New returns a Cache with the given capacity and default TTL fallback,
// using clk to stamp and evaluate entries. A capacity <= 0 uses DefaultCapacity;
// a non-positive defaultTTL uses DefaultTTL.
func New(capacity int, defaultTTL time.Duration, clk clock.Clock) (*Cache, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	if clk == nil {
		clk = clock.RealClock{}
	}
	backing, err := lru.New[string, *entry](capacity)
	if err != nil {
		return nil, err
	}
	return &Cache{
		lru:        backing,
		clock:      clk,
		capacity:   capacity,
		defaultTTL: defaultTTL,
		prefilter:  newPrefilter(capacity, defaultPrefilterFPRate),
	}, nil
}

// Get returns the cached message for key if present and not yet expired.
// An expired entry is evicted and counted as a miss, matching spec §4.4.
func (c *Cache) Get(key string) (domain.Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// The prefilter only certifies "never Put (or backing-promoted) in this
	// process" — it says nothing about a durable backing store another
	// process wrote to, so a guaranteed miss only short-circuits the LRU
	// lookup entirely when there is no backing left to consult.
	certainMiss := c.prefilter != nil && !c.prefilter.mightContain(key)
	if certainMiss && c.backing == nil {
		c.misses++
		return domain.Message{}, false
	}

	var e *entry
	var ok bool
	if !certainMiss {
		e, ok = c.lru.Get(key)
		if ok && c.clock.Now().Sub(e.insertedAt) >= e.ttl {
			c.lru.Remove(key)
			ok = false
		}
	}
	if !ok && c.backing != nil {
		if loaded, found := c.loadFromBacking(key); found {
			e = loaded
			ok = true
		}
	}
	if !ok {
		c.misses++
		return domain.Message{}, false
	}
	c.hits++
	return e.message, true
}

// loadFromBacking consults the durable backing store on an in-memory miss,
// applying the same TTL rule as an in-memory entry: a message whose
// backing-recorded age exceeds its TTL is treated as not found and is not
// promoted into the LRU.
func (c *Cache) loadFromBacking(key string) (*entry, bool) {
	msg, insertedAt, found, err := c.backing.Get(key)
	if err != nil {
		c.logger.Warn(map[string]any{"key": key, "error": err.Error()}, "backing store read failed")
		return nil, false
	}
	if !found {
		return nil, false
	}
	ttl := c.defaultTTL
	if msg.EffectiveTTL > 0 {
		ttl = time.Duration(msg.EffectiveTTL) * time.Second
	}
	if c.clock.Now().Sub(insertedAt) >= ttl {
		return nil, false
	}
	e := &entry{message: msg, insertedAt: insertedAt, ttl: ttl}
	c.lru.Add(key, e)
	if c.prefilter != nil {
		c.prefilter.add(key)
	}
	return e, true
}

// Put inserts or overwrites the entry for key, stamping it with the current
// time and a TTL derived from msg.EffectiveTTL (falling back to defaultTTL
// when the message carries none). Overwriting an existing key promotes it
// to MRU without triggering eviction of another entry.
func (c *Cache) Put(key string, msg domain.Message) {
	ttl := c.defaultTTL
	if msg.EffectiveTTL > 0 {
		ttl = time.Duration(msg.EffectiveTTL) * time.Second
	}
	now := c.clock.Now()

	c.mu.Lock()
	c.lru.Add(key, &entry{message: msg, insertedAt: now, ttl: ttl})
	if c.prefilter != nil {
		c.prefilter.add(key)
	}
	backing := c.backing
	logger := c.logger
	c.mu.Unlock()

	if backing != nil {
		if err := backing.Put(key, msg, now); err != nil {
			logger.Warn(map[string]any{"key": key, "error": err.Error()}, "backing store write failed")
		}
	}
}

// Delete removes the entry for key, if any.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Remove(key)
}

// Clear removes every entry and resets the hit/miss counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Purge()
	c.hits = 0
	c.misses = 0
	if c.prefilter != nil {
		c.prefilter.clear()
	}
}

// Len returns the number of entries currently stored, including ones that
// have expired but have not yet been touched by a Get.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Stats returns a snapshot of the cache's hit/miss counters and occupancy.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Hits: c.hits, Misses: c.misses, Size: c.lru.Len(), Capacity: c.capacity}
}

// Entries enumerates every (key, message, insertedAt) triple currently
// stored, in the LRU's internal order (least-recently-used first).
func (c *Cache) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := c.lru.Keys()
	out := make([]Entry, 0, len(keys))
	for _, k := range keys {
		if e, ok := c.lru.Peek(k); ok {
			out = append(out, Entry{Key: k, Message: e.message, InsertedAt: e.insertedAt})
		}
	}
	return out
}

var _ resolver.Cache = (*Cache)(nil)
