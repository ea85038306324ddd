package service

import "sync"

// gameLocks serializes operations per game identifier. Entries are
// refcounted so the map does not grow with every game ever touched.
type gameLocks struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newGameLocks() *gameLocks {
	return &gameLocks{
		entries: make(map[string]*lockEntry),
	}
}

// acquire blocks until the exclusive section for id is free and returns the
// release function.
func (that *gameLocks) acquire(id string) func() {
	that.mu.Lock()
	entry, ok := that.entries[id]
	if !ok {
		entry = &lockEntry{}
		that.entries[id] = entry
	}
	entry.refs++
	that.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		that.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(that.entries, id)
		}
		that.mu.Unlock()
	}
}
