package api

import "sync"

// roomLocks hands out one dispatch lock per room id, so mutation and
// fan-out for a room share a critical section without coupling unrelated
// rooms. Entries are refcounted and dropped once the last holder
// releases, mirroring the rooms' own lazy lifecycle.
type roomLocks struct {
	mu    sync.Mutex
	rooms map[string]*roomLock
}

type roomLock struct {
	mu   sync.Mutex
	id   string
	refs int
}

func newRoomLocks() *roomLocks {
	return &roomLocks{rooms: make(map[string]*roomLock)}
}

func (l *roomLocks) acquire(id string) *roomLock {
	l.mu.Lock()
	rl, ok := l.rooms[id]
	if !ok {
		rl = &roomLock{id: id}
		l.rooms[id] = rl
	}
	rl.refs++
	l.mu.Unlock()

	rl.mu.Lock()
	return rl
}

func (l *roomLocks) release(rl *roomLock) {
	rl.mu.Unlock()

	l.mu.Lock()
	rl.refs--
	if rl.refs == 0 {
		delete(l.rooms, rl.id)
	}
	l.mu.Unlock()
}
