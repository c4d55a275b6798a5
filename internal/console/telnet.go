package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"syscall"

	"github.com/iammegalith/telnet"
)

// TelnetListener serves the console over plain telnet.
type TelnetListener struct {
	port uint16
	cm   *ConnectionManager
}

func NewTelnetListener(port uint16, cm *ConnectionManager) *TelnetListener {
	return &TelnetListener{port: port, cm: cm}
}

func (l *TelnetListener) Start(ctx context.Context) error {
	// Attached consoles keep the request values but are only cancelled once
	// the listener shuts down.
	connCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	defer cancel()
	sessions := &telnetSessions{ctx: connCtx, cancel: cancel, accept: l.cm.AcceptConnection}

	svr := telnet.NewServer(fmt.Sprintf(":%d", l.port), sessions)

	stop := context.AfterFunc(ctx, func() {
		svr.Stop()
		sessions.Stop()
	})
	defer stop()

	slog.InfoContext(ctx, "listening for telnet", "port", l.port)

	err := svr.ListenAndServe()
	switch {
	case errors.Is(err, syscall.EADDRINUSE):
		return fmt.Errorf("telnet port %d is already in use", l.port)
	case err != nil:
		return fmt.Errorf("serving telnet on port %d: %w", l.port, err)
	}
	return nil
}

// telnetSessions adapts the telnet server callback to the connection manager.
type telnetSessions struct {
	ctx    context.Context
	cancel context.CancelFunc
	accept func(context.Context, io.ReadWriter)
	wg     sync.WaitGroup
}

func (t *telnetSessions) HandleTelnet(conn *telnet.Connection) {
	t.wg.Add(1)
	defer t.wg.Done()

	t.accept(t.ctx, newCRLFReadWriter(conn))

	if err := conn.Close(); err != nil {
		slog.WarnContext(t.ctx, "closing telnet connection", "error", err)
	}
}

// Stop cancels attached consoles and waits for them to detach.
func (t *telnetSessions) Stop() {
	t.cancel()
	t.wg.Wait()
}
