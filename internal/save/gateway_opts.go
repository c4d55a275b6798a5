package save

import "time"

type GatewayOpt func(*Gateway)

// WithSessionID tags saved records with the session that wrote them.
func WithSessionID(id string) GatewayOpt {
	return func(g *Gateway) {
		g.sessionID = id
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) GatewayOpt {
	return func(g *Gateway) {
		g.now = now
	}
}
