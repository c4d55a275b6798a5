package messaging

import "time"

type NatsServerOpt func(*NatsServer)

// WithStartTimeout bounds how long Start waits for the server to accept
// connections.
func WithStartTimeout(d time.Duration) NatsServerOpt {
	return func(n *NatsServer) {
		n.startupTimeout = d
	}
}

// WithServerName names the embedded server in its logs and monitoring.
func WithServerName(name string) NatsServerOpt {
	return func(n *NatsServer) {
		if name != "" {
			n.name = name
		}
	}
}

// WithListenAddr sets the client listen address. A port of -1 picks a
// random port and 0 uses the NATS default.
func WithListenAddr(host string, port int) NatsServerOpt {
	return func(n *NatsServer) {
		if host != "" {
			n.host = host
		}
		n.port = port
	}
}
