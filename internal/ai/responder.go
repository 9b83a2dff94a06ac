// Package ai bridges the relay to an external text-completion service.
// Messages that mention the trigger token get a synthetic reply injected
// back into the room; failures degrade to a fixed fallback line and never
// surface to room members as errors.
package ai

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/cipherchat-server/internal/crypto"
	"github.com/vovakirdan/cipherchat-server/internal/metrics"
)

const (
	// Trigger is the in-band token that summons the AI participant,
	// matched case-insensitively anywhere in the message.
	Trigger = "@ai"

	// Fallback replaces the completion on any failure.
	Fallback = "I'm sorry, I couldn't process that request."
)

// Completer produces a reply for a prompt. Implementations wrap an
// external service and are expected to honor ctx cancellation.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Relay re-enters the hub's send path with a synthetic sender identity.
type Relay interface {
	RelaySynthetic(roomID, text, recipientKey string)
}

// Responder watches relayed plaintext for the trigger token and requests
// completions off the dispatch path.
type Responder struct {
	completer Completer
	relay     Relay
	timeout   time.Duration
	log       zerolog.Logger

	wg sync.WaitGroup
}

// NewResponder wires the bridge. A non-positive timeout falls back to 15s.
func NewResponder(completer Completer, relay Relay, timeout time.Duration, logger zerolog.Logger) *Responder {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Responder{
		completer: completer,
		relay:     relay,
		timeout:   timeout,
		log:       logger,
	}
}

// MaybeRespond checks text for the trigger and, when present, requests a
// completion in the background and injects the reply (or the fallback) into
// the room. Returns immediately. A reply whose parent context was cancelled
// in the meantime is discarded, not injected.
func (r *Responder) MaybeRespond(ctx context.Context, roomID, text, recipientKey string) {
	if !strings.Contains(strings.ToLower(text), Trigger) {
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		cctx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()

		reply, err := r.completer.Complete(cctx, text)
		outcome := "ok"
		switch {
		case err != nil:
			r.log.Warn().Err(err).Str("room", roomID).Msg("completion failed, using fallback")
			reply, outcome = Fallback, "fallback"
		case strings.TrimSpace(reply) == "":
			reply, outcome = Fallback, "fallback"
		case len(reply) > crypto.MaxPayloadSize:
			// The envelope has a hard size ceiling; an overlong completion
			// cannot be sealed, so it degrades like any other failure.
			reply, outcome = Fallback, "fallback"
		}

		if ctx.Err() != nil {
			// Relay is tearing down; nobody is left to receive this.
			return
		}

		metrics.AIRequests.WithLabelValues(outcome).Inc()
		r.relay.RelaySynthetic(roomID, reply, recipientKey)
	}()
}

// Wait blocks until all in-flight completions finish. Used in tests and
// during shutdown.
func (r *Responder) Wait() {
	r.wg.Wait()
}
