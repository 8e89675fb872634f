package reconcile

import (
	"sync"

	"github.com/alexanderramin/timecard/internal/domain"
)

// KeyedLocker serializes work per (subject, date). Different keys never
// block each other.
type KeyedLocker struct {
	mu    sync.Mutex
	locks map[domain.DayKey]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

func NewKeyedLocker() *KeyedLocker {
	return &KeyedLocker{locks: make(map[domain.DayKey]*keyLock)}
}

// Lock blocks until key is free and returns the matching unlock.
func (l *KeyedLocker) Lock(key domain.DayKey) (unlock func()) {
	l.mu.Lock()
	kl, ok := l.locks[key]
	if !ok {
		kl = &keyLock{}
		l.locks[key] = kl
	}
	kl.refs++
	l.mu.Unlock()

	kl.mu.Lock()
	return func() {
		kl.mu.Unlock()
		l.mu.Lock()
		kl.refs--
		if kl.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}

// Held returns the number of keys currently locked or waited on.
func (l *KeyedLocker) Held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
