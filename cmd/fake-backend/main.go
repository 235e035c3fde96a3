// ABOUTME: Minimal assistant backend for E2E testing, echoes the last user message.
// ABOUTME: Usage: fake-backend [-addr localhost:8787] [-jwt-secret SECRET] [-log-level info]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/2389/assistant-client/internal/auth"
	"github.com/2389/assistant-client/internal/fakebackend"
	"github.com/2389/assistant-client/internal/logging"
)

func main() {
	addr := flag.String("addr", "localhost:8787", "HTTP listen address")
	secret := flag.String("jwt-secret", os.Getenv("ASSISTANT_JWT_SECRET"), "HS256 secret; enables bearer auth when set")
	level := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	format := flag.String("log-format", "text", "Log format (text, json)")
	flag.Parse()

	logger := logging.New(os.Stderr, *level, *format)

	if err := run(*addr, *secret, logger); err != nil {
		logger.Error("fake backend failed", "error", err)
		os.Exit(1)
	}
}

func run(addr, secret string, logger *slog.Logger) error {
	var opts []fakebackend.Option
	if secret != "" {
		verifier, err := auth.NewVerifier([]byte(secret))
		if err != nil {
			return fmt.Errorf("invalid jwt secret: %w", err)
		}
		opts = append(opts, fakebackend.WithVerifier(verifier))
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := &http.Server{
		Handler:           fakebackend.New(logger, opts...),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("fake backend listening", "addr", ln.Addr().String(), "auth", secret != "")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		return fmt.Errorf("HTTP server: %w", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}
