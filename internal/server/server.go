// Package server runs the HTTP listener in front of the router.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/f4ah6o/lime-go/internal/config"
)

const (
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// Server serves one handler at the configured address.
type Server struct {
	hs *http.Server
}

// New wraps h with access logging and panic recovery.
func New(cfg *config.Config, h http.Handler) *Server {
	return &Server{
		hs: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           AccessLog(Recover(h)),
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.hs.Addr
}

// Run listens on the configured address and serves until ctx is done or the
// process receives SIGINT or SIGTERM.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.hs.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.hs.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln and shuts down gracefully when ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		errc <- s.hs.Serve(ln)
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Println("server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.hs.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
