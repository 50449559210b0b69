package leasemap

import "fmt"

// An Entry is a view on a single slot of the map, either occupied by a live
// entry or vacant. It is obtained from Map.Entry and consumed by whichever
// terminal operation is invoked on it.
type Entry[K comparable, V any] struct {
	m   *Map[K, V]
	key K
	it  *item[V] // nil when the slot is vacant
}

func (e Entry[K, V]) Occupied() bool {
	return e.it != nil
}

// Value returns a pointer to the value of an occupied entry. It panics on a
// vacant entry.
func (e Entry[K, V]) Value() *V {
	if e.it == nil {
		panic(fmt.Errorf("leasemap: Value on vacant entry for key %v", e.key))
	}
	return &e.it.value
}

// InsertWith fills a vacant slot with the value produced by factory, which
// receives the lease about to be bound to the slot so the caller can keep
// it. The factory is invoked exactly once. InsertWith panics on an occupied
// entry.
func (e Entry[K, V]) InsertWith(factory func(*Lease) V) *V {
	if e.it != nil {
		panic(fmt.Errorf("leasemap: InsertWith on occupied entry for key %v", e.key))
	}
	lease := e.m.newLease()
	it := &item[V]{value: factory(lease), released: lease.released}
	e.m.m[e.key] = it
	return &it.value
}

// OrInsertWith returns a pointer to the value of an occupied entry without
// invoking factory, or behaves as InsertWith on a vacant one.
func (e Entry[K, V]) OrInsertWith(factory func(*Lease) V) *V {
	if e.it != nil {
		return &e.it.value
	}
	return e.InsertWith(factory)
}
