package leasemap

import (
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
)

func Test_ReleaseOnce(t *testing.T) {
	m := New[int, int]()

	lease, _, _ := m.Insert(1, 1)
	lease.Release()
	lease.Release()

	// the flag flip is one-way and the counter sees a single increment
	assert.True(t, lease.released.Load())
	assert.Equal(t, uint64(1), m.reclaims.Load())
}

func Test_OrphanReleaseCounts(t *testing.T) {
	m := New[int, string]()

	lease1, _, _ := m.Insert(1, "a")
	lease2, _, _ := m.Insert(1, "b")

	// the orphan still feeds the reclaim counter but affects no entry
	lease1.Release()
	assert.Equal(t, uint64(1), m.reclaims.Load())

	v, ok := m.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "b", v)

	lease2.Release()
	_, ok = m.Get(1)
	assert.False(t, ok)
}

func Test_GCResetsCounter(t *testing.T) {
	m := New[int, int]()

	lease, _, _ := m.Insert(1, 1)
	lease.Release()

	m.GC()
	assert.Equal(t, uint64(0), m.reclaims.Load())
	assert.Equal(t, 0, m.Len())
}

func Test_ReleaseFromAnotherGoroutine(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m := New[int, string]()

		lease, _, _ := m.Insert(1, "hello")

		done := make(chan struct{})
		go func() {
			lease.Release()
			close(done)
		}()
		<-done

		// Release returned in the other goroutine, so the next read
		// must already observe the entry as absent
		_, ok := m.Get(1)
		assert.False(t, ok)
		assert.Equal(t, 0, m.Len())
	})
}
