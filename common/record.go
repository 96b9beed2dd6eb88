package common

import "hash/maphash"

// record is one entry of a DualMap. It is never mutated after creation;
// changing an entry replaces the record.
type record[T1 comparable, T2 comparable, V comparable] struct {
	key1  T1
	key2  T2
	value V
}

func newRecord[T1 comparable, T2 comparable, V comparable](key1 T1, key2 T2, value V) *record[T1, T2, V] {
	return &record[T1, T2, V]{key1: key1, key2: key2, value: value}
}

// Equal compares both keys and the value.
func (r *record[T1, T2, V]) Equal(other *record[T1, T2, V]) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.key1 == other.key1 && r.key2 == other.key2 && r.value == other.value
}

// Hash is consistent with Equal.
func (r *record[T1, T2, V]) Hash(seed maphash.Seed) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	maphash.WriteComparable(&h, r.key1)
	maphash.WriteComparable(&h, r.key2)
	maphash.WriteComparable(&h, r.value)
	return h.Sum64()
}
