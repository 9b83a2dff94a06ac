package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandHello introduces the connection and carries its user identity.
	CommandHello CommandKind = iota
	// CommandJoinRoom subscribes the client to a room.
	CommandJoinRoom
	// CommandLeaveRoom unsubscribes the client from a room.
	CommandLeaveRoom
	// CommandSendMessage relays a payload to room participants.
	CommandSendMessage
	// CommandTyping marks the user as typing in a room.
	CommandTyping
	// CommandStoppedTyping clears the user's typing state in a room.
	CommandStoppedTyping
	// CommandReadReceipt marks a room message as read.
	CommandReadReceipt
)

// Command represents an action requested by a client.
type Command struct {
	Kind CommandKind
	Room string

	// Hello fields.
	User string

	// Send fields. PublicKey is the PEM-encoded recipient key the payload
	// is sealed for; Encrypted marks a payload the client sealed itself.
	PublicKey string
	Payload   []byte
	Encrypted bool
	MsgKind   MessageKind
	FileName  string

	// Read receipt target: the message's per-room timestamp.
	Timestamp int64
}
