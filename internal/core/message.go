package core

// SenderAI is the synthetic participant identity used for AI replies.
// It has no connection of its own.
const SenderAI = "AI"

// Sender identifies who produced a message: a connected user or the
// synthetic AI participant.
type Sender struct {
	UserID    string
	Synthetic bool
}

// HumanSender tags a message as coming from a connected user.
func HumanSender(userID string) Sender {
	return Sender{UserID: userID}
}

// SyntheticSender tags a message as coming from the AI participant.
func SyntheticSender() Sender {
	return Sender{UserID: SenderAI, Synthetic: true}
}

// MessageStatus tracks delivery progress. Transitions are monotonic:
// sent -> delivered -> read, never backwards. StatusDelivered is part of
// the wire vocabulary but no relay path assigns it: without per-recipient
// acks a message jumps from sent straight to read.
type MessageStatus int

const (
	StatusSent MessageStatus = iota
	StatusDelivered
	StatusRead
)

func (s MessageStatus) String() string {
	switch s {
	case StatusDelivered:
		return "delivered"
	case StatusRead:
		return "read"
	default:
		return "sent"
	}
}

// MessageKind distinguishes plain text from file payloads.
type MessageKind int

const (
	KindText MessageKind = iota
	KindFile
)

func (k MessageKind) String() string {
	if k == KindFile {
		return "file"
	}
	return "text"
}

// Message is the domain model for a relayed chat message. The payload is
// ciphertext, opaque to the relay. Timestamp is a per-room monotonic
// counter assigned on append, unique within the room's arrival stream.
type Message struct {
	Room       string
	Sender     Sender
	Ciphertext []byte
	Timestamp  int64
	Status     MessageStatus
	Kind       MessageKind
	FileName   string
}
