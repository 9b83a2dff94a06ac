package core

import (
	"context"
	"crypto/rsa"
	"errors"
	"runtime"
	"sync"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/cipherchat-server/internal/crypto"
	"github.com/vovakirdan/cipherchat-server/internal/metrics"
)

// Responder is the AI bridge contract. MaybeRespond inspects the relayed
// plaintext and, when triggered, injects a synthetic reply back through the
// hub without blocking the caller.
type Responder interface {
	MaybeRespond(ctx context.Context, roomID, text, recipientKey string)
}

// Hub is the relay engine. It owns the room registry and typing tracker,
// serializes room mutations through per-room locks, and runs one dispatch
// goroutine per registered client.
type Hub struct {
	log      zerolog.Logger
	registry *Registry
	typing   *TypingTracker
	notifier Notifier

	mu        sync.Mutex
	clients   map[string]*Client
	responder Responder
	runCtx    context.Context

	cryptoJobs chan func()
}

// NewHub constructs the relay engine. Pass nil for notifier to disable
// notifications.
func NewHub(logger zerolog.Logger, notifier Notifier) *Hub {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Hub{
		log:        logger,
		registry:   NewRegistry(),
		typing:     NewTypingTracker(),
		notifier:   notifier,
		clients:    make(map[string]*Client),
		cryptoJobs: make(chan func(), 64),
	}
}

// SetResponder attaches the AI bridge. Must be called before Run.
func (h *Hub) SetResponder(r Responder) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.responder = r
}

// Registry exposes room state for transports and tests.
func (h *Hub) Registry() *Registry { return h.registry }

// Typing exposes the typing tracker for tests.
func (h *Hub) Typing() *TypingTracker { return h.typing }

// Run starts the crypto worker pool and blocks until ctx is cancelled.
// Cancellation also cancels in-flight AI completions.
func (h *Hub) Run(ctx context.Context) {
	h.mu.Lock()
	h.runCtx = ctx
	h.mu.Unlock()

	workers := runtime.GOMAXPROCS(0)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case job := <-h.cryptoJobs:
					job()
				case <-ctx.Done():
					return
				}
			}
		}()
	}
	wg.Wait()
}

// RegisterClient adds a connection and starts its dispatch goroutine.
func (h *Hub) RegisterClient(c *Client) {
	h.mu.Lock()
	h.clients[c.ID] = c
	h.mu.Unlock()

	go func() {
		defer close(c.done)
		for cmd := range c.Commands {
			h.handle(c, cmd)
		}
	}()
}

// UnregisterClient tears a connection down: it stops the dispatch
// goroutine, then leaves every joined room and clears the user's typing
// state there. A disconnect is an implicit leave; there is deliberately no
// user-left broadcast.
func (h *Hub) UnregisterClient(c *Client) {
	c.closeCommands()
	<-c.done

	for roomID := range c.Rooms {
		if room := h.registry.Lookup(roomID); room != nil {
			room.Leave(c)
		}
		h.typing.Clear(roomID, c.UserID)
		delete(c.Rooms, roomID)
	}

	h.mu.Lock()
	delete(h.clients, c.ID)
	h.mu.Unlock()

	h.log.Debug().Str("client_id", c.ID).Str("user", c.UserID).Msg("client unregistered")
}

func (h *Hub) handle(c *Client, cmd *Command) {
	if cmd.Kind == CommandHello {
		h.handleHello(c, cmd)
		return
	}
	if c.UserID == "" {
		c.deliver(&Event{Kind: EventError, Error: coreError(ErrCodeAuth, "hello required before any command")})
		return
	}

	switch cmd.Kind {
	case CommandJoinRoom:
		h.handleJoin(c, cmd)
	case CommandLeaveRoom:
		h.handleLeave(c, cmd)
	case CommandSendMessage:
		h.handleSend(c, cmd)
	case CommandTyping:
		h.handleTyping(c, cmd, true)
	case CommandStoppedTyping:
		h.handleTyping(c, cmd, false)
	case CommandReadReceipt:
		h.handleReadReceipt(c, cmd)
	default:
		c.deliver(&Event{Kind: EventError, Error: coreError(ErrCodeBadRequest, "unknown command")})
	}
}

// handleHello takes the client-supplied identity at face value. There is no
// stronger verification. A connection authenticates exactly once: swapping
// the identity mid-session would orphan room membership and typing state
// recorded under the old one.
func (h *Hub) handleHello(c *Client, cmd *Command) {
	if cmd.User == "" {
		c.deliver(&Event{Kind: EventError, Error: coreError(ErrCodeAuth, "user id is required")})
		return
	}
	if c.UserID != "" {
		c.deliver(&Event{Kind: EventError, Error: coreError(ErrCodeBadRequest, "already authenticated")})
		return
	}
	c.UserID = cmd.User
	c.PublicKey = cmd.PublicKey
	h.log.Debug().Str("client_id", c.ID).Str("user", c.UserID).Msg("client authenticated")
}

// handleJoin is idempotent: rejoining only replays the current history.
func (h *Hub) handleJoin(c *Client, cmd *Command) {
	room := h.registry.Get(cmd.Room)
	history := room.Join(c)
	c.Rooms[cmd.Room] = struct{}{}

	c.deliver(&Event{Kind: EventHistory, Room: cmd.Room, Messages: history})
}

func (h *Hub) handleLeave(c *Client, cmd *Command) {
	if _, joined := c.Rooms[cmd.Room]; !joined {
		c.deliver(&Event{Kind: EventError, Room: cmd.Room, Error: coreError(ErrCodeNotInRoom, "not in room")})
		return
	}
	if room := h.registry.Lookup(cmd.Room); room != nil {
		room.Leave(c)
	}
	delete(c.Rooms, cmd.Room)
	h.typing.Clear(cmd.Room, c.UserID)
}

// handleSend builds the message, seals the payload for the recipient key
// attached to the request and relays the result to every member, sender
// included. The relay is key-agnostic: it never picks key roles itself, and
// payloads the client already sealed pass through untouched (the
// single-key-pair scheme cannot give the relay a correct choice, so the
// choice stays with the client).
func (h *Hub) handleSend(c *Client, cmd *Command) {
	if _, joined := c.Rooms[cmd.Room]; !joined {
		c.deliver(&Event{Kind: EventError, Room: cmd.Room, Error: coreError(ErrCodeNotInRoom, "not in room")})
		return
	}

	room := h.registry.Get(cmd.Room)
	msg := Message{
		Sender:   HumanSender(c.UserID),
		Kind:     cmd.MsgKind,
		FileName: cmd.FileName,
	}

	plaintext := cmd.Payload
	if cmd.Encrypted {
		// Client ran the envelope itself; relay as-is.
		msg.Ciphertext = cmd.Payload
	} else {
		if len(plaintext) > crypto.MaxPayloadSize {
			c.deliver(&Event{Kind: EventError, Room: cmd.Room, Error: coreError(ErrCodePayloadTooLarge, "payload exceeds encryption size limit")})
			return
		}
		pub, err := crypto.ImportPublicKey(cmd.PublicKey)
		if err != nil {
			metrics.CryptoFailures.Inc()
			c.deliver(&Event{Kind: EventError, Room: cmd.Room, Error: coreError(ErrCodeCrypto, "malformed recipient key")})
			return
		}
		ciphertext, err := h.encrypt(plaintext, pub)
		if err != nil {
			metrics.CryptoFailures.Inc()
			if errors.Is(err, crypto.ErrPayloadTooLarge) {
				c.deliver(&Event{Kind: EventError, Room: cmd.Room, Error: coreError(ErrCodePayloadTooLarge, "payload exceeds encryption size limit")})
				return
			}
			h.log.Warn().Err(err).Str("room", cmd.Room).Str("user", c.UserID).Msg("encrypt failed")
			c.deliver(&Event{Kind: EventError, Room: cmd.Room, Error: coreError(ErrCodeCrypto, "encryption failed")})
			return
		}
		msg.Ciphertext = ciphertext
	}

	stored := room.Relay(msg)
	metrics.MessagesRelayed.WithLabelValues(stored.Kind.String()).Inc()
	h.notifier.Notify(room.ID, stored)

	// The AI bridge looks at the original plaintext, not the ciphertext.
	// It runs off the dispatch path and never blocks ingress.
	if responder := h.currentResponder(); responder != nil && !cmd.Encrypted {
		responder.MaybeRespond(h.runContext(), cmd.Room, string(plaintext), cmd.PublicKey)
	}
}

func (h *Hub) handleTyping(c *Client, cmd *Command, typing bool) {
	if _, joined := c.Rooms[cmd.Room]; !joined {
		c.deliver(&Event{Kind: EventError, Room: cmd.Room, Error: coreError(ErrCodeNotInRoom, "not in room")})
		return
	}
	room := h.registry.Get(cmd.Room)

	kind := EventUserStoppedTyping
	if typing {
		h.typing.Mark(cmd.Room, c.UserID)
		kind = EventUserTyping
	} else {
		h.typing.Clear(cmd.Room, c.UserID)
	}

	// Everyone but the originator hears about it.
	room.Broadcast(&Event{Kind: kind, Room: cmd.Room, User: c.UserID}, c.ID)
}

// handleReadReceipt looks the message up by its per-room timestamp. An
// unknown timestamp is a logged no-op, not an error: answering would let a
// client probe history it never received.
func (h *Hub) handleReadReceipt(c *Client, cmd *Command) {
	if _, joined := c.Rooms[cmd.Room]; !joined {
		c.deliver(&Event{Kind: EventError, Room: cmd.Room, Error: coreError(ErrCodeNotInRoom, "not in room")})
		return
	}
	room := h.registry.Get(cmd.Room)
	if !room.MarkRead(cmd.Timestamp) {
		h.log.Debug().Str("room", cmd.Room).Int64("ts", cmd.Timestamp).Msg("read receipt for unknown message")
		return
	}
	room.Broadcast(&Event{Kind: EventMessageRead, Room: cmd.Room, User: c.UserID, ReadTS: cmd.Timestamp}, "")
}

// RelaySynthetic injects an AI reply into a room as the synthetic
// participant. A reply for a room that never existed is discarded.
func (h *Hub) RelaySynthetic(roomID, text, recipientKey string) {
	room := h.registry.Lookup(roomID)
	if room == nil {
		h.log.Debug().Str("room", roomID).Msg("dropping synthetic reply for unknown room")
		return
	}

	pub, err := crypto.ImportPublicKey(recipientKey)
	if err != nil {
		metrics.CryptoFailures.Inc()
		h.log.Warn().Err(err).Str("room", roomID).Msg("synthetic reply: malformed recipient key")
		return
	}
	ciphertext, err := h.encrypt([]byte(text), pub)
	if err != nil {
		metrics.CryptoFailures.Inc()
		h.log.Warn().Err(err).Str("room", roomID).Msg("synthetic reply: encrypt failed")
		return
	}

	stored := room.Relay(Message{Sender: SyntheticSender(), Ciphertext: ciphertext})
	metrics.MessagesRelayed.WithLabelValues(stored.Kind.String()).Inc()
	h.notifier.Notify(roomID, stored)
}

// encrypt runs the CPU-bound OAEP call on the bounded worker pool so a
// burst of sends cannot saturate every scheduler thread. The dispatch
// goroutine waits for its own result, which keeps per-sender ordering.
func (h *Hub) encrypt(plaintext []byte, pub *rsa.PublicKey) ([]byte, error) {
	type result struct {
		ciphertext []byte
		err        error
	}
	done := make(chan result, 1)

	job := func() {
		ciphertext, err := crypto.Encrypt(plaintext, pub)
		done <- result{ciphertext, err}
	}

	ctx := h.runContext()
	select {
	case h.cryptoJobs <- job:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case res := <-done:
		return res.ciphertext, res.err
	case <-ctx.Done():
		// Workers are gone; the queued job will never run.
		return nil, ctx.Err()
	}
}

func (h *Hub) currentResponder() Responder {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.responder
}

func (h *Hub) runContext() context.Context {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.runCtx == nil {
		return context.Background()
	}
	return h.runCtx
}
