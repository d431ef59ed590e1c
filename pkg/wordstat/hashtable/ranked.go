package hashtable

import (
	"cmp"
	"slices"
)

// Ranked copies the table's entries and sorts them by value, lowest first.
// Entries with equal values keep their bucket-then-chain order.
func Ranked[V cmp.Ordered](t *Table[V]) []Entry[V] {
	entries := t.Entries()
	slices.SortStableFunc(entries, func(a, b Entry[V]) int {
		return cmp.Compare(a.Value, b.Value)
	})
	return entries
}

// Keys returns the keys of entries in order.
func Keys[V any](entries []Entry[V]) []string {
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return keys
}
