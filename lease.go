package leasemap

import "sync/atomic"

// A Lease is issued for every value inserted into a Map and is the sole
// handle on that entry's liveness: releasing the lease makes the entry
// absent to all subsequent lookups. A lease has no readable state; it only
// exists to be held while the entry must stay alive and released when it
// must not. A lease that is never released keeps its entry's storage (not
// its visibility to other keys) occupied until the entry is overwritten.
type Lease struct {
	released *atomic.Bool
	reclaims *atomic.Uint64
}

// Release marks the entry this lease was issued for as absent and notifies
// the map that garbage may be present. It may be called from any goroutine,
// concurrently with operations on the map; calling it more than once has no
// further effect. Once Release returns, the next lookup of the entry's key
// is guaranteed to report it absent.
func (l *Lease) Release() {
	if l.released.CompareAndSwap(false, true) {
		l.reclaims.Add(1)
	}
}
