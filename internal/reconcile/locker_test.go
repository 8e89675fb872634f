package reconcile

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/timecard/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestKeyedLocker_SerializesSameKey(t *testing.T) {
	l := NewKeyedLocker()
	key := domain.DayKey{SubjectID: "emp-1", WorkDate: "2025-01-14"}

	var inside, maxInside atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.Lock(key)
			defer unlock()
			n := inside.Add(1)
			for {
				m := maxInside.Load()
				if n <= m || maxInside.CompareAndSwap(m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			inside.Add(-1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside.Load())
	assert.Zero(t, l.Held(), "locks should be released once idle")
}

func TestKeyedLocker_DifferentKeysIndependent(t *testing.T) {
	l := NewKeyedLocker()
	a := domain.DayKey{SubjectID: "emp-1", WorkDate: "2025-01-14"}
	b := domain.DayKey{SubjectID: "emp-1", WorkDate: "2025-01-15"}

	unlockA := l.Lock(a)
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlock := l.Lock(b)
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different key blocked")
	}
}
