package core

import "sync"

// TypingTracker keeps the per-room set of users currently typing. Entries
// are idempotent both ways and must never survive a disconnect; the hub
// clears them on leave and on connection loss.
type TypingTracker struct {
	mu    sync.Mutex
	rooms map[string]map[string]struct{}
}

// NewTypingTracker constructs an empty tracker.
func NewTypingTracker() *TypingTracker {
	return &TypingTracker{rooms: make(map[string]map[string]struct{})}
}

// Mark adds the user to the room's typing set. Returns false when the user
// was already typing.
func (t *TypingTracker) Mark(roomID, userID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	set := t.rooms[roomID]
	if set == nil {
		set = make(map[string]struct{})
		t.rooms[roomID] = set
	}
	if _, ok := set[userID]; ok {
		return false
	}
	set[userID] = struct{}{}
	return true
}

// Clear removes the user from the room's typing set. Removing a user who
// is not typing is a no-op; returns true when an entry was removed.
func (t *TypingTracker) Clear(roomID, userID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	set := t.rooms[roomID]
	if set == nil {
		return false
	}
	if _, ok := set[userID]; !ok {
		return false
	}
	delete(set, userID)
	return true
}

// Typing returns a snapshot of users currently typing in the room.
func (t *TypingTracker) Typing(roomID string) []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	set := t.rooms[roomID]
	users := make([]string, 0, len(set))
	for u := range set {
		users = append(users, u)
	}
	return users
}
