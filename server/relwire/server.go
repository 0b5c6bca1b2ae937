package relwire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/tuannm99/novarel"
)

type ServerConfig struct {
	Addr string
	// Shared, when set, is used by every connection. Otherwise each
	// connection gets its own empty database.
	Shared *novarel.Database
}

// Run listens on sc.Addr and serves until ctx is cancelled.
func Run(ctx context.Context, sc ServerConfig) error {
	ln, err := net.Listen("tcp", sc.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	slog.Info("relwire: listening", "addr", ln.Addr().String(), "shared", sc.Shared != nil)
	return Serve(ctx, ln, sc)
}

// Serve accepts connections on ln until ctx is cancelled, then closes ln
// and waits for open connections to finish.
func Serve(ctx context.Context, ln net.Listener, sc ServerConfig) error {
	defer func() { _ = ln.Close() }()

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			slog.Warn("relwire: accept", "err", err)
			continue
		}

		db := sc.Shared
		if db == nil {
			db = novarel.NewDatabase()
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			handleConn(ctx, conn, db)
		}()
	}
}

func handleConn(ctx context.Context, conn net.Conn, db *novarel.Database) {
	defer func() { _ = conn.Close() }()

	// unblock the pending read on shutdown
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})
	defer stop()

	remote := conn.RemoteAddr().String()
	slog.Debug("relwire: session opened", "remote", remote)
	defer slog.Debug("relwire: session closed", "remote", remote)

	for {
		var req ExecuteRequest
		if err := ReadFrame(conn, &req); err != nil {
			// client closed, shutdown or bad frame
			if ctx.Err() == nil && !isClosed(err) {
				slog.Warn("relwire: read request", "remote", remote, "err", err)
			}
			return
		}

		if err := WriteFrame(conn, dispatch(db, req)); err != nil {
			slog.Warn("relwire: write response", "remote", remote, "err", err)
			return
		}
	}
}

func isClosed(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, net.ErrClosed)
}
