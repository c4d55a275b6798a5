package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-questkeep/internal/progress"
)

type SessionConfig struct {
	PlayerName     string  `json:"player_name" env:"QUESTKEEP_PLAYER_NAME"`
	StartMap       string  `json:"start_map"`
	SpawnX         float64 `json:"spawn_x"`
	SpawnY         float64 `json:"spawn_y"`
	InteractRadius float64 `json:"interact_radius,omitempty"`
}

func (c *SessionConfig) validate() error {
	el := errors.NewErrorList()

	if c.PlayerName == "" {
		el.Add(fmt.Errorf("player_name is required"))
	}
	if c.InteractRadius < 0 {
		el.Add(fmt.Errorf("interact_radius must not be negative"))
	}

	return el.Err()
}

// BuildLedger returns a fresh ledger placed at the configured start.
func (c *SessionConfig) BuildLedger() *progress.Ledger {
	l := progress.NewLedger(c.PlayerName)

	start := c.StartMap
	if start == "" {
		start = progress.MapOverworld
	}
	l.ChangeMap(start, progress.Point{X: c.SpawnX, Y: c.SpawnY})

	return l
}
