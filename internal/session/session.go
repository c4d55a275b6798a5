package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pixil98/go-questkeep/internal/display"
	"github.com/pixil98/go-questkeep/internal/interact"
	"github.com/pixil98/go-questkeep/internal/messaging"
	"github.com/pixil98/go-questkeep/internal/progress"
	"github.com/pixil98/go-questkeep/internal/save"
	"github.com/pixil98/go-questkeep/internal/world"
)

const DefaultFadeDuration = 0.5

// EventSink receives everything the session does.
type EventSink interface {
	PublishEvent(messaging.Event) error
}

type discardSink struct{}

func (discardSink) PublishEvent(messaging.Event) error { return nil }

// Response is what an input produced: a message for the player and, when a
// choice must be made, the pending selection.
type Response struct {
	Message   string
	Selection *Selection
}

type fade struct {
	dest      interact.Destination
	remaining float64
}

// Session is one running game. It owns the ledger and the registry and
// serializes every read and write of them.
type Session struct {
	mu sync.Mutex

	id       string
	ledger   *progress.Ledger
	registry *world.Registry
	gateway  *save.Gateway
	events   EventSink

	pos              progress.Point
	radius           float64
	fadeDuration     float64
	autosaveInterval float64
	sinceSave        float64

	fade      *fade
	selection *Selection
}

// New starts a session on the ledger's current map.
func New(ledger *progress.Ledger, registry *world.Registry, gateway *save.Gateway, opts ...SessionOpt) (*Session, error) {
	s := &Session{
		id:           uuid.NewString(),
		ledger:       ledger,
		registry:     registry,
		gateway:      gateway,
		events:       discardSink{},
		fadeDuration: DefaultFadeDuration,
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := registry.LoadMap(ledger.CurrentMap(), ledger); err != nil {
		return nil, fmt.Errorf("loading start map: %w", err)
	}
	s.pos = ledger.Spawn()

	return s, nil
}

// ID returns the session identifier used on event subjects and saves.
func (s *Session) ID() string {
	return s.id
}

// Position returns the live player position.
func (s *Session) Position() progress.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

// Move records the live player position reported by the movement layer.
func (s *Session) Move(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pos = progress.Point{X: x, Y: y}
}

// Tick advances the session by dt seconds: play time, interactable timers,
// door transitions, the fade countdown and autosave.
func (s *Session) Tick(ctx context.Context, dt float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger.AddPlayTime(dt)

	dest, traveled, err := s.registry.Update(dt, s.ledger)
	if err != nil {
		return fmt.Errorf("updating map: %w", err)
	}
	if traveled {
		s.arrive(ctx, dest)
	}

	if s.fade != nil {
		s.fade.remaining -= dt
		if s.fade.remaining <= 0 {
			dest := s.fade.dest
			s.fade = nil
			if err := s.registry.Travel(dest, s.ledger); err != nil {
				return fmt.Errorf("fading to %s: %w", dest.Map, err)
			}
			s.arrive(ctx, dest)
		}
	}

	if s.autosaveInterval > 0 {
		s.sinceSave += dt
		if s.sinceSave >= s.autosaveInterval {
			s.saveLocked(ctx, "game_autosaved")
		}
	}

	return nil
}

func (s *Session) arrive(ctx context.Context, dest interact.Destination) {
	s.pos = dest.Spawn
	slog.InfoContext(ctx, "map changed", "session", s.id, "map", dest.Map, "x", dest.Spawn.X, "y", dest.Spawn.Y)
	s.publish(ctx, "map_changed", "", dest)
}

// Fading reports whether a fade transition is in progress.
func (s *Session) Fading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fade != nil
}

// render expands template markers in content text against the status view.
func (s *Session) render(msg string) string {
	if !strings.Contains(msg, "{{") {
		return msg
	}
	out, err := display.Expand(msg, s.statusLocked())
	if err != nil {
		slog.Warn("rendering message", "session", s.id, "error", err)
		return msg
	}
	return out
}

func (s *Session) publish(ctx context.Context, name, msg string, data any) {
	err := s.events.PublishEvent(messaging.Event{
		Session: s.id,
		Name:    name,
		Message: msg,
		Data:    data,
	})
	if err != nil {
		slog.WarnContext(ctx, "publishing event", "session", s.id, "event", name, "error", err)
	}
}
