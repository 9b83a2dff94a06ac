package app

import (
	"context"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/cipherchat-server/internal/ai"
	"github.com/vovakirdan/cipherchat-server/internal/config"
	"github.com/vovakirdan/cipherchat-server/internal/core"
	transporthttp "github.com/vovakirdan/cipherchat-server/internal/transport/http"
)

// App wires together the relay core and transport layers.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	hub             *core.Hub
	responder       *ai.Responder
	log             *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(cfg *config.Config, logger *zerolog.Logger) *App {
	hub := core.NewHub(*logger, nil)

	var responder *ai.Responder
	if cfg.AIAPIKey != "" {
		completer := ai.NewOpenAICompleter(cfg.AIAPIKey, cfg.AIModel)
		responder = ai.NewResponder(completer, hub, cfg.AITimeout, *logger)
		hub.SetResponder(responder)
		logger.Info().Str("model", cfg.AIModel).Msg("ai responder enabled")
	} else {
		logger.Info().Msg("ai responder disabled: no api key configured")
	}

	server := transporthttp.NewServer(hub, cfg, logger)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		hub:             hub,
		responder:       responder,
		log:             logger,
	}
}

// Run starts the HTTP server and blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go a.hub.Run(ctx)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		a.cleanup()
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.cleanup()
			return err
		}

		a.cleanup()
		return <-serverErr
	}
}

// cleanup drains in-flight AI completions so none race process exit.
func (a *App) cleanup() {
	if a.responder != nil {
		a.responder.Wait()
		a.log.Info().Msg("ai responder drained")
	}
}
