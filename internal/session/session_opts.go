package session

import "time"

type SessionOpt func(*Session)

// WithID overrides the generated session identifier.
func WithID(id string) SessionOpt {
	return func(s *Session) {
		s.id = id
	}
}

func WithEventSink(sink EventSink) SessionOpt {
	return func(s *Session) {
		if sink != nil {
			s.events = sink
		}
	}
}

// WithFadeDuration sets how long a fade runs before the map swaps.
func WithFadeDuration(d time.Duration) SessionOpt {
	return func(s *Session) {
		s.fadeDuration = d.Seconds()
	}
}

// WithAutosaveInterval saves every d of game time. Zero disables autosave.
func WithAutosaveInterval(d time.Duration) SessionOpt {
	return func(s *Session) {
		s.autosaveInterval = d.Seconds()
	}
}

// WithInteractRadius sets the reach used to find interactables and NPCs.
func WithInteractRadius(r float64) SessionOpt {
	return func(s *Session) {
		s.radius = r
	}
}
