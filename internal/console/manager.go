package console

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
)

// ConnectionManager attaches each accepted connection to the console.
type ConnectionManager struct {
	console *Console
	active  atomic.Int64
}

func NewConnectionManager(c *Console) *ConnectionManager {
	return &ConnectionManager{
		console: c,
	}
}

func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	n := m.active.Add(1)
	defer m.active.Add(-1)

	slog.InfoContext(ctx, "console attached", "connections", n)
	if err := m.console.Run(ctx, conn); err != nil {
		slog.WarnContext(ctx, "console session", "error", err)
	}
	slog.InfoContext(ctx, "console detached")
}

// Active returns the number of attached connections.
func (m *ConnectionManager) Active() int64 {
	return m.active.Load()
}
