package sweeper

import (
	"context"
	"time"
)

const DefaultTickInterval = 50 * time.Millisecond

// Manager is one maintenance pass run on every tick.
type Manager interface {
	Tick(context.Context) error
}

// Driver runs its managers on a fixed period. No component depends on
// sub-tick timing; the interval only bounds how quickly ready rooms start
// playing and dead rooms disappear.
type Driver struct {
	tickInterval time.Duration
	managers     []Manager
}

func NewDriver(managers []Manager, opts ...DriverOpt) *Driver {
	d := &Driver{
		tickInterval: DefaultTickInterval,
		managers:     managers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *Driver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := d.Tick(ctx); err != nil {
				return err
			}
		}
	}
}

func (d *Driver) Tick(ctx context.Context) error {
	for _, m := range d.managers {
		if err := m.Tick(ctx); err != nil {
			return err
		}
	}
	return nil
}
