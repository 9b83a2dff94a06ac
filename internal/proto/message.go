package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	ProtocolVersion = 1

	InboundTypeHello         = "hello"
	InboundTypeJoin          = "join"
	InboundTypeLeave         = "leave"
	InboundTypeSend          = "send"
	InboundTypeTyping        = "typing"
	InboundTypeStoppedTyping = "stopped_typing"
	InboundTypeReadReceipt   = "read_receipt"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"

	EventNamePreviousMessages  = "previous_messages"
	EventNameMessage           = "message"
	EventNameUserTyping        = "user_typing"
	EventNameUserStoppedTyping = "user_stopped_typing"
	EventNameMessageRead       = "message_read"

	KindText = "text"
	KindFile = "file"
)

// HelloData is sent by the client to introduce itself. User is taken at
// face value; PublicKey optionally announces the session's exported key so
// peers can encrypt back.
type HelloData struct {
	User      string `json:"user"`
	PublicKey string `json:"public_key,omitempty"`
	Protocol  int    `json:"protocol,omitempty"`
}

// JoinData requests to join (or leave) a specific room.
type JoinData struct {
	Room string `json:"room"`
}

// SendData is a chat payload from the client. Payload is UTF-8 plaintext
// for text sends and base64 for file or pre-encrypted sends. PublicKey is
// the PEM recipient key the relay seals the payload for; Encrypted marks a
// payload the client sealed itself.
type SendData struct {
	Room      string `json:"room"`
	Payload   string `json:"payload"`
	PublicKey string `json:"public_key,omitempty"`
	Kind      string `json:"kind,omitempty"`
	FileName  string `json:"file_name,omitempty"`
	Encrypted bool   `json:"encrypted,omitempty"`
}

// TypingData marks typing activity in a room.
type TypingData struct {
	Room string `json:"room"`
}

// ReadReceiptData marks a message as read, identified by its per-room
// timestamp.
type ReadReceiptData struct {
	Room      string `json:"room"`
	Timestamp int64  `json:"timestamp"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// EventMessage carries one relayed message. Ciphertext is base64.
type EventMessage struct {
	Room       string `json:"room"`
	Sender     string `json:"sender"`
	Synthetic  bool   `json:"synthetic,omitempty"`
	Ciphertext string `json:"ciphertext"`
	TS         int64  `json:"ts"`
	Status     string `json:"status"`
	Kind       string `json:"kind"`
	FileName   string `json:"file_name,omitempty"`
}

// EventHistory replays a room's message history to a joining client.
type EventHistory struct {
	Room     string         `json:"room"`
	Messages []EventMessage `json:"messages"`
}

// EventTyping notifies that a user started or stopped typing.
type EventTyping struct {
	Room string `json:"room"`
	User string `json:"user"`
}

// EventMessageRead notifies that a user read a message.
type EventMessageRead struct {
	Room      string `json:"room"`
	User      string `json:"user"`
	Timestamp int64  `json:"timestamp"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
