package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

type Config struct {
	SweepInterval   string           `json:"sweep_interval"`
	DefaultRoomType string           `json:"default_room_type"`
	Listeners       []ListenerConfig `json:"listeners"`
	Nats            NatsConfig       `json:"nats"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.SweepInterval != "" {
		d, err := time.ParseDuration(c.SweepInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing sweep_interval: %w", err))
		} else if d <= 0 {
			el.Add(fmt.Errorf("sweep_interval must be positive"))
		}
	}

	if len(c.Listeners) == 0 {
		el.Add(fmt.Errorf("at least one listener is required"))
	}

	for i, l := range c.Listeners {
		err := l.validate()
		if err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
	}

	el.Add(c.Nats.validate())

	return el.Err()
}
