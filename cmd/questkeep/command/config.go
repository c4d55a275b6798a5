package command

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pixil98/go-errors"
)

type Config struct {
	FrameInterval    string           `json:"frame_interval"`
	AutosaveInterval string           `json:"autosave_interval"`
	FadeDuration     string           `json:"fade_duration"`
	Listeners        []ListenerConfig `json:"listeners"`
	Storage          StorageConfig    `json:"storage"`
	Nats             NatsConfig       `json:"nats"`
	Session          SessionConfig    `json:"session"`
}

// Validate applies environment overrides and then checks every section.
func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if err := env.Parse(c); err != nil {
		el.Add(fmt.Errorf("parsing environment: %w", err))
	}

	if d, err := parseOptionalDuration(c.FrameInterval); err != nil {
		el.Add(fmt.Errorf("parsing frame_interval: %w", err))
	} else if c.FrameInterval != "" && d < time.Millisecond {
		el.Add(fmt.Errorf("frame_interval must be at least 1ms"))
	}

	if d, err := parseOptionalDuration(c.AutosaveInterval); err != nil {
		el.Add(fmt.Errorf("parsing autosave_interval: %w", err))
	} else if d < 0 {
		el.Add(fmt.Errorf("autosave_interval must not be negative"))
	}

	if d, err := parseOptionalDuration(c.FadeDuration); err != nil {
		el.Add(fmt.Errorf("parsing fade_duration: %w", err))
	} else if d < 0 {
		el.Add(fmt.Errorf("fade_duration must not be negative"))
	}

	for i, l := range c.Listeners {
		if err := l.validate(); err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
	}

	el.Add(c.Storage.validate())
	el.Add(c.Nats.validate())
	el.Add(c.Session.validate())

	return el.Err()
}

// parseOptionalDuration returns zero for an empty string.
func parseOptionalDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}
