package command

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pixil98/go-questkeep/internal/console"
	"github.com/pixil98/go-questkeep/internal/driver"
	"github.com/pixil98/go-questkeep/internal/messaging"
	"github.com/pixil98/go-questkeep/internal/session"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// Event bus
	natsServer, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	events := messaging.NewEventPublisher(natsServer)

	// World and progress
	registry, err := cfg.Storage.BuildRegistry()
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	ledger := cfg.Session.BuildLedger()
	if !registry.Has(ledger.CurrentMap()) {
		return nil, fmt.Errorf("start map %q is not defined", ledger.CurrentMap())
	}
	gateway := cfg.Storage.BuildGateway(id)

	sess, err := session.New(ledger, registry, gateway, cfg.sessionOptions(id, events)...)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	// Resume from disk when a save exists
	resp := sess.Load(context.Background())
	slog.Info("session ready", "session", sess.ID(), "map", ledger.CurrentMap(), "load", resp.Message)

	// Setup the frame driver
	var driverOpts []driver.FrameDriverOpt
	if d, _ := parseOptionalDuration(cfg.FrameInterval); d > 0 {
		driverOpts = append(driverOpts, driver.WithFrameInterval(d))
	}
	frames := driver.NewFrameDriver([]driver.Stepper{sess}, driverOpts...)

	// Create Listeners
	cm := console.NewConnectionManager(console.NewConsole(sess, natsServer))
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		listener, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = listener
	}

	// Create a worker list
	return service.WorkerList{
		"nats":      natsServer,
		"driver":    frames,
		"listeners": &listeners,
	}, nil
}

// sessionOptions turns the timing settings into session options. An explicit
// zero fade swaps maps on the next frame; an empty one keeps the default.
func (c *Config) sessionOptions(id string, sink session.EventSink) []session.SessionOpt {
	opts := []session.SessionOpt{
		session.WithID(id),
		session.WithEventSink(sink),
	}
	if c.FadeDuration != "" {
		if d, err := parseOptionalDuration(c.FadeDuration); err == nil {
			opts = append(opts, session.WithFadeDuration(d))
		}
	}
	if d, _ := parseOptionalDuration(c.AutosaveInterval); d > 0 {
		opts = append(opts, session.WithAutosaveInterval(d))
	}
	if c.Session.InteractRadius > 0 {
		opts = append(opts, session.WithInteractRadius(c.Session.InteractRadius))
	}
	return opts
}
