package driver

import (
	"context"
	"time"
)

const (
	// DefaultFrameInterval is roughly 60 frames per second.
	DefaultFrameInterval = time.Second / 60
	// MaxFrameStep caps dt after a stall so timers do not jump ahead.
	MaxFrameStep = 250 * time.Millisecond
)

// Stepper advances by dt seconds each frame.
type Stepper interface {
	Tick(ctx context.Context, dt float64) error
}

// FrameDriver steps every Stepper once per frame, in order, with the wall
// time elapsed since the previous frame.
type FrameDriver struct {
	interval time.Duration
	steppers []Stepper
	now      func() time.Time
}

func NewFrameDriver(steppers []Stepper, opts ...FrameDriverOpt) *FrameDriver {
	d := &FrameDriver{
		interval: DefaultFrameInterval,
		steppers: steppers,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *FrameDriver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	last := d.now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			now := d.now()
			step := min(now.Sub(last), MaxFrameStep)
			last = now

			err := d.Tick(ctx, step.Seconds())
			if err != nil {
				return err
			}
		}
	}
}

// Tick runs one frame. The first error stops the frame.
func (d *FrameDriver) Tick(ctx context.Context, dt float64) error {
	for _, s := range d.steppers {
		if err := s.Tick(ctx, dt); err != nil {
			return err
		}
	}
	return nil
}
