package sweeper

import "time"

type DriverOpt func(*Driver)

func WithTickInterval(d time.Duration) DriverOpt {
	return func(drv *Driver) {
		drv.tickInterval = d
	}
}
