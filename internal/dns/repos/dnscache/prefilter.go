package dnscache

import (
	"math"
	"sync"

	bitsbloom "github.com/bits-and-blooms/bloom/v3"
)

// defaultPrefilterFPRate is the target false-positive rate for the
// negative-lookup prefilter sized in New.
const defaultPrefilterFPRate = 0.01

// prefilter is a bloom filter over every key Put into a Cache, or loaded
// into it from the backing store, since the last Clear. A negative result
// is certain: Get uses it to skip the LRU lookup on a guaranteed miss, the
// same way the teacher's blocklist bloom filter short-circuits a bolt
// lookup. With a backing store attached, Get still consults the backing
// store on such a miss. A false positive just falls through to the normal
// lookup path, so correctness never depends on it.
type prefilter struct {
	mu sync.RWMutex
	bf *bitsbloom.BloomFilter
}

// newPrefilter sizes a filter for capacity entries at the given target
// false-positive rate, using the standard m/k formulas.
func newPrefilter(capacity int, fpRate float64) *prefilter {
	m, k := sizeFilter(uint64(capacity), fpRate)
	return &prefilter{bf: bitsbloom.New(uint(m), uint(k))}
}

func sizeFilter(n uint64, p float64) (uint64, uint8) {
	if n == 0 {
		n = 1
	}
	if !(p > 0 && p < 1) {
		p = defaultPrefilterFPRate
	}
	ln2 := math.Ln2
	m := uint64(math.Ceil(-float64(n) * math.Log(p) / (ln2 * ln2)))
	if m == 0 {
		m = 1
	}
	k := uint8(math.Max(1, math.Round((float64(m)/float64(n))*ln2)))
	return m, k
}

func (f *prefilter) add(key string) {
	f.mu.Lock()
	f.bf.Add([]byte(key))
	f.mu.Unlock()
}

func (f *prefilter) mightContain(key string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.bf.Test([]byte(key))
}

func (f *prefilter) clear() {
	f.mu.Lock()
	f.bf.ClearAll()
	f.mu.Unlock()
}
