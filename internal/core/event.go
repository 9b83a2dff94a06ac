package core

// EventKind is a notification the relay emits to clients.
type EventKind int

const (
	// EventHistory delivers a room's message history to a client upon joining.
	EventHistory EventKind = iota
	// EventRoomMessage notifies room members about a relayed message.
	EventRoomMessage
	// EventUserTyping notifies room members that a user started typing.
	EventUserTyping
	// EventUserStoppedTyping notifies room members that a user stopped typing.
	EventUserStoppedTyping
	// EventMessageRead notifies room members that a user read a message.
	EventMessageRead
	// EventError notifies a client about a domain error.
	EventError
)

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind     EventKind
	Room     string
	User     string
	Message  Message
	Messages []Message // For EventHistory
	ReadTS   int64     // For EventMessageRead: the target message's timestamp
	Error    *CoreError
}
