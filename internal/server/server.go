package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/scythe504/skribblr-party/internal/game"
	"github.com/scythe504/skribblr-party/internal/websocket"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	port           int
	allowedOrigins []string

	engine  *game.Engine
	gateway *websocket.Gateway
}

func NewServer(port int, allowedOrigins []string, engine *game.Engine, gateway *websocket.Gateway) *Server {
	return &Server{
		port:           port,
		allowedOrigins: allowedOrigins,
		engine:         engine,
		gateway:        gateway,
	}
}

// Run serves until ctx is cancelled, then drains HTTP connections and the engine.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.RegisterRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", s.port).Msg("[Run] server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("[Run] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Hijacked websocket connections are not tracked by Shutdown; they close with the process.
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return s.engine.Shutdown(shutdownCtx)
}
