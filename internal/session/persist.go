package session

import (
	"context"
	"fmt"
	"log/slog"
)

// Save writes the ledger with the live position to the save slot.
func (s *Session) Save(ctx context.Context) Response {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx, "game_saved")
}

func (s *Session) saveLocked(ctx context.Context, event string) Response {
	s.sinceSave = 0

	pos := s.pos
	ok, msg := s.gateway.Save(s.ledger, &pos)
	if !ok {
		s.publish(ctx, "save_failed", msg, nil)
		return Response{Message: msg}
	}

	s.publish(ctx, event, msg, nil)
	return Response{Message: msg}
}

// Load replaces the ledger with the saved record and reloads its map. A
// missing, corrupt or unusable record leaves the session untouched.
func (s *Session) Load(ctx context.Context) Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, msg := s.gateway.Load()
	if rec == nil {
		s.publish(ctx, "load_failed", msg, nil)
		return Response{Message: msg}
	}

	if !s.registry.Has(rec.CurrentMap) {
		msg = fmt.Sprintf("Save file is invalid: unknown map %q", rec.CurrentMap)
		slog.WarnContext(ctx, "loading save", "session", s.id, "map", rec.CurrentMap)
		s.publish(ctx, "load_failed", msg, nil)
		return Response{Message: msg}
	}

	s.gateway.Apply(s.ledger, rec)
	if err := s.registry.LoadMap(s.ledger.CurrentMap(), s.ledger); err != nil {
		return Response{Message: fmt.Sprintf("Could not load map: %v", err)}
	}

	s.pos = s.ledger.Spawn()
	s.fade = nil
	s.selection = nil
	s.sinceSave = 0

	slog.InfoContext(ctx, "game loaded", "session", s.id, "map", s.ledger.CurrentMap(), "quest", s.ledger.QuestState())
	s.publish(ctx, "game_loaded", msg, map[string]string{"map": s.ledger.CurrentMap()})
	return Response{Message: msg}
}
