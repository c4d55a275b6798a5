package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-questkeep/internal/messaging"
)

// NatsConfig configures the embedded event bus. Sessions publish on it and
// consoles subscribe to it.
type NatsConfig struct {
	Name         string `json:"name,omitempty"`
	Host         string `json:"host"`
	Port         int    `json:"port"`
	StartTimeout string `json:"start_timeout"`
}

func (n *NatsConfig) validate() error {
	el := errors.NewErrorList()

	if d, err := parseOptionalDuration(n.StartTimeout); err != nil {
		el.Add(fmt.Errorf("parsing start_timeout: %w", err))
	} else if d < 0 {
		el.Add(fmt.Errorf("start_timeout must not be negative"))
	}
	if n.Port < -1 || n.Port > 65535 {
		el.Add(fmt.Errorf("port must be between -1 and 65535"))
	}

	return el.Err()
}

func (n *NatsConfig) buildNatsServer() (*messaging.NatsServer, error) {
	opts := []messaging.NatsServerOpt{
		messaging.WithServerName(n.Name),
		messaging.WithListenAddr(n.Host, n.Port),
	}

	timeout, err := parseOptionalDuration(n.StartTimeout)
	if err != nil {
		return nil, fmt.Errorf("parsing start_timeout: %w", err)
	}
	if timeout > 0 {
		opts = append(opts, messaging.WithStartTimeout(timeout))
	}

	return messaging.NewNatsServer(opts...)
}
