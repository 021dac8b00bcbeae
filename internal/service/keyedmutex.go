package service

import "sync"

// keyedMutex hands out one mutex per tournament id so admissions to
// different tournaments never block each other. Entries are never
// reclaimed; a mutex is a few words and the set of tournaments is small.
type keyedMutex struct {
	locks sync.Map // uint -> *sync.Mutex
}

func (m *keyedMutex) Lock(key uint) {
	lock, _ := m.locks.LoadOrStore(key, &sync.Mutex{})
	lock.(*sync.Mutex).Lock()
}

func (m *keyedMutex) Unlock(key uint) {
	lock, ok := m.locks.Load(key)
	if !ok {
		return
	}

	lock.(*sync.Mutex).Unlock()
}
