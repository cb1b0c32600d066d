package booking

import (
	"strconv"
	"sync"
)

// slotKey identifies the serialization domain for the conflict check. Only
// requests touching the same hall on the same date contend for the lock;
// everything else proceeds in parallel.
func slotKey(hallID uint64, date string) string {
	return strconv.FormatUint(hallID, 10) + "@" + date
}

// keyedMutex provides a mutex per string key. Entries are reference counted
// and removed once the last holder unlocks, so the map stays proportional to
// the number of keys currently contended, not the number ever seen.
type keyedMutex struct {
	mu   sync.Mutex
	held map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{held: make(map[string]*lockEntry)}
}

// Lock acquires the mutex for key and returns the matching unlock function.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	e, ok := k.held[key]
	if !ok {
		e = &lockEntry{}
		k.held[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.held, key)
		}
		k.mu.Unlock()
	}
}
