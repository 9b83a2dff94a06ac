package core

import "sync"

// Registry maps room ids to rooms with lazy creation. Rooms are never
// destroyed during the process lifetime.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// Get returns the room, creating it on first reference.
func (reg *Registry) Get(id string) *Room {
	reg.mu.RLock()
	room := reg.rooms[id]
	reg.mu.RUnlock()
	if room != nil {
		return room
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()
	room = reg.rooms[id]
	if room != nil {
		return room
	}
	room = NewRoom(id)
	reg.rooms[id] = room
	return room
}

// Lookup returns the room or nil when it was never created.
func (reg *Registry) Lookup(id string) *Room {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.rooms[id]
}
