// Package locking provides a keyed mutual-exclusion region used to serialize
// read-modify-write sequences on a single entity (one table, one ingredient)
// without a global lock across the whole collection.
package locking

import (
	"sync"

	"github.com/google/uuid"
)

// KeyedMutex serializes critical sections per uuid key. Locks are created
// lazily on first use and kept for the lifetime of the mutex; entity counts
// here (tables, ingredients) are small enough that reclamation is not needed.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// NewKeyedMutex returns an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[uuid.UUID]*sync.Mutex)}
}

// Lock acquires the mutex for key, blocking until it is available.
func (k *KeyedMutex) Lock(key uuid.UUID) {
	k.get(key).Lock()
}

// Unlock releases the mutex for key.
func (k *KeyedMutex) Unlock(key uuid.UUID) {
	k.get(key).Unlock()
}

// Do runs fn while holding the mutex for key. The critical section should
// contain the decision and state flip only, never surrounding computation.
func (k *KeyedMutex) Do(key uuid.UUID, fn func() error) error {
	m := k.get(key)
	m.Lock()
	defer m.Unlock()
	return fn()
}

func (k *KeyedMutex) get(key uuid.UUID) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}
