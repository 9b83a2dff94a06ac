package core

import "sync"

// eventBufferSize bounds the per-client outbound queue. A consumer more
// than this many events behind starts losing them: deliver drops instead
// of letting one stalled socket hold a room's lock during broadcast, so
// delivery is exactly-once only for clients that keep up.
const eventBufferSize = 32

// Client is a connection as seen by the relay. UserID is empty until the
// hello handshake succeeds. Rooms is touched only by the client's dispatch
// goroutine and by UnregisterClient after that goroutine has exited.
type Client struct {
	ID       string
	UserID   string
	// PublicKey is the PEM key the client announced at hello, if any, so
	// peers can encrypt back to this session.
	PublicKey string
	Commands  chan *Command
	Events    chan *Event
	Rooms     map[string]struct{}

	done      chan struct{}
	closeOnce sync.Once
}

// NewClient constructs a client with initialized channels.
func NewClient(id string) *Client {
	return &Client{
		ID:       id,
		Commands: make(chan *Command, 32),
		Events:   make(chan *Event, eventBufferSize),
		Rooms:    make(map[string]struct{}),
		done:     make(chan struct{}),
	}
}

// closeCommands stops the dispatch goroutine. Safe to call more than once.
func (c *Client) closeCommands() {
	c.closeOnce.Do(func() { close(c.Commands) })
}

// deliver queues an event without blocking. Consumers that fall behind
// eventBufferSize lose events rather than stalling the broadcaster.
func (c *Client) deliver(ev *Event) {
	select {
	case c.Events <- ev:
	default:
	}
}
