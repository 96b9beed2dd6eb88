package common

import (
	"fmt"
	"hash/maphash"
)

// DualMap maps two disjoint key spaces onto the same values. Every entry is
// reachable through exactly one key1 and exactly one key2, and removing it by
// either key removes it from both sides.
//
// A DualMap is not safe for concurrent use; callers must serialize access.
type DualMap[T1 comparable, T2 comparable, V comparable] struct {
	key1Map map[T1]*record[T1, T2, V]
	key2Map map[T2]*record[T1, T2, V]
}

// NewDualMap returns an empty DualMap.
func NewDualMap[T1 comparable, T2 comparable, V comparable]() *DualMap[T1, T2, V] {
	return &DualMap[T1, T2, V]{
		key1Map: make(map[T1]*record[T1, T2, V]),
		key2Map: make(map[T2]*record[T1, T2, V]),
	}
}

// CheckPairing reports whether Put(key1, key2, ...) would be accepted: either
// both keys are unknown, or both are known and already belong to the same entry.
func (m *DualMap[T1, T2, V]) CheckPairing(key1 T1, key2 T2) error {
	r1, ok1 := m.key1Map[key1]
	r2, ok2 := m.key2Map[key2]
	switch {
	case !ok1 && !ok2:
		return nil
	case ok1 && ok2 && r1 == r2:
		return nil
	case ok1 && ok2:
		return NewError(UCodeInvalidKeyPairing,
			fmt.Sprintf("keys %v and %v belong to different entries", key1, key2), false)
	case ok1:
		return NewError(UCodeInvalidKeyPairing,
			fmt.Sprintf("key %v is already paired with %v", key1, r1.key2), false)
	default:
		return NewError(UCodeInvalidKeyPairing,
			fmt.Sprintf("key %v is already paired with %v", key2, r2.key1), false)
	}
}

// Put stores value under key1 and key2. If both keys already belong to the
// same entry, its value is replaced. Any other overlap with existing keys is
// rejected with an error matching ErrInvalidKeyPairing and the map is left
// untouched.
func (m *DualMap[T1, T2, V]) Put(key1 T1, key2 T2, value V) error {
	if err := m.CheckPairing(key1, key2); err != nil {
		return err
	}
	r := newRecord(key1, key2, value)
	if r.Equal(m.key1Map[key1]) {
		return nil
	}
	m.key1Map[key1] = r
	m.key2Map[key2] = r
	return nil
}

// GetByKey1 returns the value stored under key1, or false if key1 is unknown.
func (m *DualMap[T1, T2, V]) GetByKey1(key1 T1) (V, bool) {
	r, ok := m.key1Map[key1]
	if !ok {
		var zero V
		return zero, false
	}
	return r.value, true
}

// GetByKey2 returns the value stored under key2, or false if key2 is unknown.
func (m *DualMap[T1, T2, V]) GetByKey2(key2 T2) (V, bool) {
	r, ok := m.key2Map[key2]
	if !ok {
		var zero V
		return zero, false
	}
	return r.value, true
}

// PartnerOfKey1 returns the key2 paired with key1.
func (m *DualMap[T1, T2, V]) PartnerOfKey1(key1 T1) (T2, bool) {
	r, ok := m.key1Map[key1]
	if !ok {
		var zero T2
		return zero, false
	}
	return r.key2, true
}

// PartnerOfKey2 returns the key1 paired with key2.
func (m *DualMap[T1, T2, V]) PartnerOfKey2(key2 T2) (T1, bool) {
	r, ok := m.key2Map[key2]
	if !ok {
		var zero T1
		return zero, false
	}
	return r.key1, true
}

// DeleteByKey1 removes the entry under key1 together with its key2.
// It returns false if key1 is unknown.
func (m *DualMap[T1, T2, V]) DeleteByKey1(key1 T1) bool {
	r, ok := m.key1Map[key1]
	if !ok {
		return false
	}
	m.remove(r)
	return true
}

// DeleteByKey2 removes the entry under key2 together with its key1.
// It returns false if key2 is unknown.
func (m *DualMap[T1, T2, V]) DeleteByKey2(key2 T2) bool {
	r, ok := m.key2Map[key2]
	if !ok {
		return false
	}
	m.remove(r)
	return true
}

func (m *DualMap[T1, T2, V]) remove(r *record[T1, T2, V]) {
	if m.key1Map[r.key1] != r || m.key2Map[r.key2] != r {
		// both indexes are only written together, so this is a bug
		panic(NewError(UCodeInconsistentIndex,
			fmt.Sprintf("entry (%v, %v) is not referenced by both indexes", r.key1, r.key2), true))
	}
	delete(m.key1Map, r.key1)
	delete(m.key2Map, r.key2)
}

// Len returns the number of entries.
func (m *DualMap[T1, T2, V]) Len() int {
	return len(m.key1Map)
}

// Range calls fn for every entry until fn returns false. The order is
// unspecified. fn must not modify the map.
func (m *DualMap[T1, T2, V]) Range(fn func(key1 T1, key2 T2, value V) bool) {
	for _, r := range m.key1Map {
		if !fn(r.key1, r.key2, r.value) {
			return
		}
	}
}

// Fingerprint summarizes the stored entries. Two maps holding the same
// entries have the same fingerprint for the same seed, regardless of the
// order in which the entries were inserted.
func (m *DualMap[T1, T2, V]) Fingerprint(seed maphash.Seed) uint64 {
	var sum uint64
	for _, r := range m.key1Map {
		sum += r.Hash(seed)
	}
	return sum
}
