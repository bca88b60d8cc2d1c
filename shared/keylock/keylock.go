package keylock

import (
	"sort"
	"sync"
)

// KeyLock provides mutual exclusion per string key. The reservation ledger uses it to
// serialize check-and-write sequences on a (table, date) pair so two concurrent bookings
// cannot both pass the availability pre-check.
type KeyLock struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func New() *KeyLock {
	return &KeyLock{
		locks: map[string]*lockEntry{},
	}
}

// Lock acquires the locks for all given keys. Keys are deduplicated and acquired in
// sorted order so callers locking overlapping key sets cannot deadlock each other.
func (k *KeyLock) Lock(keys ...string) {
	for _, key := range sortedUnique(keys) {
		k.acquire(key)
	}
}

// Unlock releases the locks for all given keys.
func (k *KeyLock) Unlock(keys ...string) {
	unique := sortedUnique(keys)

	for i := len(unique) - 1; i >= 0; i-- {
		k.release(unique[i])
	}
}

func (k *KeyLock) acquire(key string) {
	k.mu.Lock()

	entry, ok := k.locks[key]
	if !ok {
		entry = &lockEntry{}
		k.locks[key] = entry
	}

	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()
}

func (k *KeyLock) release(key string) {
	k.mu.Lock()

	entry, ok := k.locks[key]
	if !ok {
		k.mu.Unlock()

		return
	}

	entry.refs--
	if entry.refs == 0 {
		delete(k.locks, key)
	}

	k.mu.Unlock()

	entry.mu.Unlock()
}

func sortedUnique(keys []string) []string {
	unique := make([]string, 0, len(keys))
	seen := map[string]bool{}

	for _, key := range keys {
		if key == "" || seen[key] {
			continue
		}

		seen[key] = true
		unique = append(unique, key)
	}

	sort.Strings(unique)

	return unique
}
