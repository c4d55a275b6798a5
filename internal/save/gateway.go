package save

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pixil98/go-questkeep/internal/progress"
	"github.com/pixil98/go-questkeep/internal/storage"
)

// Gateway persists a ledger to a single save slot.
type Gateway struct {
	slot      *storage.Slot[*Record]
	sessionID string
	now       func() time.Time
}

func NewGateway(path string, opts ...GatewayOpt) *Gateway {
	g := &Gateway{
		slot: storage.NewSlot[*Record](path),
		now:  time.Now,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Save writes the ledger to the slot. When live is set it replaces the
// ledger's spawn as the stored player position.
func (g *Gateway) Save(l *progress.Ledger, live *progress.Point) (bool, string) {
	rec := NewRecord(l.Snapshot(), g.now())
	rec.SessionID = g.sessionID
	if live != nil {
		rec.PlayerX = live.X
		rec.PlayerY = live.Y
	}

	if err := g.slot.Write(rec); err != nil {
		slog.Error("saving game", "path", g.slot.Path(), "error", err)
		return false, fmt.Sprintf("Save failed: %v", err)
	}

	slog.Info("game saved", "path", g.slot.Path(), "map", rec.CurrentMap, "quest", rec.QuestState)
	return true, "Game saved."
}

// Load reads the slot. It returns nil and a reason when no usable record
// exists; a record that fails to decode or validate is never returned.
func (g *Gateway) Load() (*Record, string) {
	rec := DefaultRecord()
	err := g.slot.Read(rec)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, "No save file found."
	}
	if err != nil {
		slog.Warn("loading save", "path", g.slot.Path(), "error", err)
		return nil, fmt.Sprintf("Save file is corrupt: %v", err)
	}

	if err := rec.Validate(); err != nil {
		slog.Warn("validating save", "path", g.slot.Path(), "error", err)
		return nil, fmt.Sprintf("Save file is invalid: %v", err)
	}

	return rec, "Game loaded."
}

// Apply writes every record field onto the ledger.
func (g *Gateway) Apply(l *progress.Ledger, rec *Record) {
	l.Restore(rec.Snapshot())
}
