package room

import (
	"sync"

	"splitpot/internal/model"
)

// keyedMutex serializes mutations per room code. Operations on different
// codes proceed independently; two operations on the same code never
// interleave. Entries live for the process lifetime, matching rooms never
// being deleted by the coordinator.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[model.RoomCode]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{
		locks: make(map[model.RoomCode]*sync.Mutex),
	}
}

// lock acquires the mutex for the given code and returns its unlock func
func (k *keyedMutex) lock(code model.RoomCode) func() {
	k.mu.Lock()
	m, ok := k.locks[code]
	if !ok {
		m = &sync.Mutex{}
		k.locks[code] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
