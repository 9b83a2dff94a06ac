package core

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/cipherchat-server/internal/crypto"
)

var (
	testKeyOnce sync.Once
	testKeyPair *crypto.KeyPair
	testKeyPEM  string
)

// testKey returns one shared RSA key pair; generating a fresh 2048-bit key
// per test would dominate the suite's runtime.
func testKey(t *testing.T) (*crypto.KeyPair, string) {
	t.Helper()

	testKeyOnce.Do(func() {
		kp, err := crypto.GenerateKeyPair()
		if err != nil {
			t.Fatalf("generate test key pair: %v", err)
		}
		pem, err := crypto.ExportPublicKey(kp.Public)
		if err != nil {
			t.Fatalf("export test key: %v", err)
		}
		testKeyPair, testKeyPEM = kp, pem
	})
	return testKeyPair, testKeyPEM
}

func newTestHub(t *testing.T) *Hub {
	t.Helper()

	hub := NewHub(zerolog.Nop(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

// connect registers a client and completes the hello handshake.
func connect(hub *Hub, id, user string) *Client {
	c := NewClient(id)
	hub.RegisterClient(c)
	c.Commands <- &Command{Kind: CommandHello, User: user}
	return c
}

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

func mustNoEvent(t *testing.T, ch <-chan *Event, wait time.Duration) {
	t.Helper()

	select {
	case ev := <-ch:
		t.Fatalf("unexpected event: %+v", ev)
	case <-time.After(wait):
	}
}
