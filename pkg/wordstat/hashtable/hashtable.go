package hashtable

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/cognicore/wordstat/pkg/wordstat/internalerr"
)

// DefaultCapacity is the bucket count used by NewDefault.
const DefaultCapacity = 10

// Entry is a key/value pair stored in a bucket chain.
type Entry[V any] struct {
	Key   string
	Value V
}

// MergeFunc combines the stored value with an incoming value when Put
// hits an existing key.
type MergeFunc[V any] func(existing, incoming V) V

// Growth selects what happens when the table fills up.
type Growth int

const (
	// GrowAppend appends empty buckets once size reaches capacity but keeps
	// the construction-time modulus, so existing and future keys never land in them.
	GrowAppend Growth = iota
	// GrowRehash doubles the bucket count and redistributes every entry.
	GrowRehash
)

// String returns the config name of the growth policy.
func (g Growth) String() string {
	switch g {
	case GrowAppend:
		return "append"
	case GrowRehash:
		return "rehash"
	default:
		return fmt.Sprintf("growth(%d)", int(g))
	}
}

// ParseGrowth maps a config name onto a growth policy.
func ParseGrowth(name string) (Growth, error) {
	switch name {
	case "", "append":
		return GrowAppend, nil
	case "rehash":
		return GrowRehash, nil
	default:
		return GrowAppend, fmt.Errorf("unknown growth policy %q: %w", name, internalerr.ErrInvalidConfig)
	}
}

// Option configures a Table at construction.
type Option[V any] func(*Table[V])

// WithMerge sets the duplicate-key merge policy.
func WithMerge[V any](fn MergeFunc[V]) Option[V] {
	return func(t *Table[V]) {
		if fn != nil {
			t.merge = fn
		}
	}
}

// WithGrowth sets the growth policy.
func WithGrowth[V any](g Growth) Option[V] {
	return func(t *Table[V]) {
		t.growth = g
	}
}

// Replace is the default merge policy: the incoming value wins.
func Replace[V any](_, incoming V) V {
	return incoming
}

// Sum accumulates integer values; repeated Put(word, 1) counts occurrences.
func Sum(existing, incoming int) int {
	return existing + incoming
}

// Table is a separate-chaining hash table keyed by text.
// Each bucket owns its chain as a slice; nil means the bucket is empty.
type Table[V any] struct {
	buckets  [][]Entry[V]
	capacity int // modulus used for indexing
	size     int // distinct keys
	merge    MergeFunc[V]
	growth   Growth
}

// New creates a table with the given number of buckets.
func New[V any](capacity int, opts ...Option[V]) (*Table[V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("table capacity %d: %w", capacity, internalerr.ErrInvalidInput)
	}
	t := &Table[V]{
		buckets:  make([][]Entry[V], capacity),
		capacity: capacity,
		merge:    Replace[V],
		growth:   GrowAppend,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// NewDefault creates a table with DefaultCapacity buckets.
func NewDefault[V any](opts ...Option[V]) *Table[V] {
	t, _ := New(DefaultCapacity, opts...)
	return t
}

// NewCounter creates an integer table whose Put adds to existing values.
func NewCounter(capacity int, opts ...Option[int]) (*Table[int], error) {
	return New(capacity, append([]Option[int]{WithMerge[int](Sum)}, opts...)...)
}

func (t *Table[V]) index(key string) int {
	return int(xxhash.Sum64String(key) % uint64(t.capacity))
}

// Get returns the value stored under key.
func (t *Table[V]) Get(key string) (V, error) {
	for _, e := range t.buckets[t.index(key)] {
		if e.Key == key {
			return e.Value, nil
		}
	}
	var zero V
	return zero, fmt.Errorf("key %q: %w", key, internalerr.ErrNotFound)
}

// Contains reports whether key is present.
func (t *Table[V]) Contains(key string) bool {
	_, err := t.Get(key)
	return err == nil
}

// Put stores value under key. An existing key is merged in place;
// a new key is appended to the tail of its bucket chain.
func (t *Table[V]) Put(key string, value V) {
	idx := t.index(key)
	chain := t.buckets[idx]
	for i := range chain {
		if chain[i].Key == key {
			chain[i].Value = t.merge(chain[i].Value, value)
			t.grow()
			return
		}
	}
	t.buckets[idx] = append(chain, Entry[V]{Key: key, Value: value})
	t.size++
	t.grow()
}

// Remove deletes key and returns the value it held.
func (t *Table[V]) Remove(key string) (V, error) {
	idx := t.index(key)
	chain := t.buckets[idx]
	for i, e := range chain {
		if e.Key != key {
			continue
		}
		if len(chain) == 1 {
			t.buckets[idx] = nil
		} else {
			t.buckets[idx] = append(chain[:i:i], chain[i+1:]...)
		}
		t.size--
		return e.Value, nil
	}
	var zero V
	return zero, fmt.Errorf("key %q: %w", key, internalerr.ErrNotFound)
}

func (t *Table[V]) grow() {
	if t.size/t.capacity != 1 {
		return
	}
	switch t.growth {
	case GrowRehash:
		t.rehash(t.capacity * 2)
	default:
		// Extra buckets sit past the modulus and stay empty.
		if len(t.buckets) < 2*t.capacity {
			t.buckets = append(t.buckets, make([][]Entry[V], 2*t.capacity-len(t.buckets))...)
		}
	}
}

func (t *Table[V]) rehash(capacity int) {
	old := t.buckets
	t.buckets = make([][]Entry[V], capacity)
	t.capacity = capacity
	for _, chain := range old {
		for _, e := range chain {
			idx := t.index(e.Key)
			t.buckets[idx] = append(t.buckets[idx], e)
		}
	}
}

// Entries returns a copy of every live entry in bucket-then-chain order.
func (t *Table[V]) Entries() []Entry[V] {
	out := make([]Entry[V], 0, t.size)
	for _, chain := range t.buckets {
		out = append(out, chain...)
	}
	return out
}

// Len returns the number of distinct keys.
func (t *Table[V]) Len() int {
	return t.size
}

// Capacity returns the modulus used to pick a bucket.
func (t *Table[V]) Capacity() int {
	return t.capacity
}

// BucketCount returns the number of allocated buckets, including any
// appended by GrowAppend that lie beyond Capacity.
func (t *Table[V]) BucketCount() int {
	return len(t.buckets)
}

// Growth returns the table's growth policy.
func (t *Table[V]) Growth() Growth {
	return t.growth
}
