package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jkantola/smalltalk/internal/errors"
)

func (app *application) configureAndStartServer(ctx context.Context, addr string) error {
	var err error
	shutdownComplete := make(chan struct{})
	idleTimeout := time.Minute
	// LLM-backed handlers wait on the gateway's retry loop, so the write
	// timeout has to cover three attempts with pauses in between.
	writeTimeout := 60 * time.Second
	srv := &http.Server{
		ErrorLog:          slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
		Handler:           app.routes(),
		IdleTimeout:       idleTimeout,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      writeTimeout,
		ReadHeaderTimeout: time.Second,
	}
	go func() {
		sigint := make(chan os.Signal, 1)

		signal.Notify(sigint, os.Interrupt)
		signal.Notify(sigint, syscall.SIGTERM)

		<-sigint
		app.logger.LogAttrs(ctx, slog.LevelInfo, "shutting down server")

		// We received an interrupt signal, shut down.
		shutdownContext, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err = srv.Shutdown(shutdownContext); err != nil {
			err = errors.Wrap(err, "shutdown server")
			app.logger.LogAttrs(ctx, slog.LevelError, "error shutting down server", errors.SlogError(err))
		}
		close(shutdownComplete)
	}()

	var listener net.Listener
	if listener, err = net.Listen("tcp", addr); err != nil {
		return errors.Wrap(err, "TCP listen")
	}
	app.logger.LogAttrs(ctx, slog.LevelInfo, "starting server", slog.Any("addr", listener.Addr().String()))
	if err = srv.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server serve")
	}
	<-shutdownComplete

	return nil
}
