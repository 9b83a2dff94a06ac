package core

import "sync"

// Room groups clients subscribed to the same channel and owns their shared
// state: the member set, the ordered message history, and the monotonic
// timestamp counter. All mutations serialize on the room's own lock, so
// unrelated rooms never contend.
type Room struct {
	ID string

	mu      sync.Mutex
	members map[string]*Client
	history []Message
	nextTS  int64
}

// NewRoom constructs a room with no clients.
func NewRoom(id string) *Room {
	return &Room{
		ID:      id,
		members: make(map[string]*Client),
	}
}

// Join inserts a client into the room and returns a snapshot of the history
// for replay. Joining twice is a no-op beyond the fresh snapshot; membership
// holds the connection exactly once.
func (r *Room) Join(c *Client) []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[c.ID] = c

	snapshot := make([]Message, len(r.history))
	copy(snapshot, r.history)
	return snapshot
}

// Leave deletes a client from the room. Returns true if it was a member.
func (r *Room) Leave(c *Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[c.ID]; !ok {
		return false
	}
	delete(r.members, c.ID)
	return true
}

// Has reports whether the connection is currently a member.
func (r *Room) Has(connectionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.members[connectionID]
	return ok
}

// Members returns a snapshot of member connection ids.
func (r *Room) Members() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.members))
	for id := range r.members {
		ids = append(ids, id)
	}
	return ids
}

// Relay assigns the message its per-room timestamp, appends it to history
// and fans it out to every member, the sender included. Append and
// broadcast happen under one lock acquisition, so members observe messages
// in the exact order the relay accepted them.
func (r *Room) Relay(msg Message) Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextTS++
	msg.Room = r.ID
	msg.Timestamp = r.nextTS
	msg.Status = StatusSent
	r.history = append(r.history, msg)

	ev := &Event{Kind: EventRoomMessage, Room: r.ID, User: msg.Sender.UserID, Message: msg}
	for _, client := range r.members {
		client.deliver(ev)
	}
	return msg
}

// Broadcast sends an event to all members, optionally excluding one
// connection (the originator of typing events).
func (r *Room) Broadcast(ev *Event, excludeID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, client := range r.members {
		if id == excludeID {
			continue
		}
		client.deliver(ev)
	}
}

// MarkRead advances the status of the message with the given timestamp to
// read. Status only moves forward. Returns false when no message in this
// room carries that timestamp.
func (r *Room) MarkRead(timestamp int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.history) - 1; i >= 0; i-- {
		if r.history[i].Timestamp == timestamp {
			if r.history[i].Status < StatusRead {
				r.history[i].Status = StatusRead
			}
			return true
		}
	}
	return false
}

// History returns a snapshot of the room's message history.
func (r *Room) History() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	snapshot := make([]Message, len(r.history))
	copy(snapshot, r.history)
	return snapshot
}
