package leasemap

import "sync/atomic"

type item[V any] struct {
	value    V
	released *atomic.Bool
}

// leasemap.Map is a key value store where every inserted value is paired
// with a Lease held by the caller; releasing the lease makes the entry
// absent on the next lookup. Physical removal is deferred: reads evict the
// entry they find released, and an amortized GC pass sweeps the rest. It is
// not safe to call any method concurrently from different goroutines; only
// Lease.Release may race with map operations.
type Map[K comparable, V any] struct {
	m        map[K]*item[V]
	reclaims *atomic.Uint64
}

func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		m:        make(map[K]*item[V]),
		reclaims: new(atomic.Uint64),
	}
}

func (m *Map[K, V]) newLease() *Lease {
	return &Lease{
		released: new(atomic.Bool),
		reclaims: m.reclaims,
	}
}

// Insert stores v under k and returns the lease bound to the new entry.
// If a live entry already existed for k, its value is returned with found
// true; a previous entry whose lease was already released is overwritten
// silently and reported as not found. The previous entry's lease, if any,
// is orphaned: releasing it later has no effect on the new entry.
func (m *Map[K, V]) Insert(k K, v V) (lease *Lease, previous V, found bool) {
	m.GC()
	lease = m.newLease()
	old := m.m[k]
	m.m[k] = &item[V]{value: v, released: lease.released}
	if old != nil && !old.released.Load() {
		previous = old.value
		found = true
	}
	return
}

// Get returns the live value stored under k. A released entry is physically
// removed before being reported absent, so Get mutates the table and
// requires the same exclusive access as the other methods.
func (m *Map[K, V]) Get(k K) (V, bool) {
	if p := m.GetMut(k); p != nil {
		return *p, true
	}
	var zero V
	return zero, false
}

// GetMut returns a pointer to the live value stored under k for in-place
// mutation, or nil if there is none. Eviction semantics are those of Get.
func (m *Map[K, V]) GetMut(k K) *V {
	it := m.m[k]
	if it == nil {
		return nil
	}
	if it.released.Load() {
		delete(m.m, k)
		return nil
	}
	return &it.value
}

// Len is the physical occupancy of the table, including entries whose lease
// has been released but which have not been evicted yet. It is not a live
// entry count.
func (m *Map[K, V]) Len() int {
	return len(m.m)
}

// GC sweeps all released entries out of the table if the number of lease
// releases since the last sweep has reached half the table size, bounding
// the fraction of garbage entries. Every mutating operation runs it, so an
// explicit call is only useful to force eviction earlier.
func (m *Map[K, V]) GC() {
	if m.reclaims.Load() < uint64(len(m.m)/2) {
		return
	}
	m.reclaims.Store(0)
	// TODO sweeping could be limited to regions with a reclaim counter each
	for k, it := range m.m {
		if it.released.Load() {
			delete(m.m, k)
		}
	}
}

// Entry returns a one-shot handle on the slot for k. A released entry is
// evicted first, so the handle is occupied only by a live entry. The handle
// must be consumed before any further operation on the map.
func (m *Map[K, V]) Entry(k K) Entry[K, V] {
	m.GC()
	it := m.m[k]
	if it != nil && it.released.Load() {
		delete(m.m, k)
		it = nil
	}
	return Entry[K, V]{m: m, key: k, it: it}
}
