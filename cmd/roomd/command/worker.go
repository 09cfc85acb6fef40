package command

import (
	"fmt"
	"time"

	"github.com/bazoka/roomserver/internal/game"
	"github.com/bazoka/roomserver/internal/hooks"
	"github.com/bazoka/roomserver/internal/listener"
	"github.com/bazoka/roomserver/internal/session"
	"github.com/bazoka/roomserver/internal/sweeper"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// Create the message broker
	broker, err := cfg.Nats.buildServer()
	if err != nil {
		return nil, fmt.Errorf("creating message broker: %w", err)
	}

	// Set up the game state
	players := game.NewPlayerRegistry(broker)
	rooms := game.NewRoomRegistry()

	defType := cfg.DefaultRoomType
	if defType == "" {
		defType = game.DefaultRoomType
	}
	hookReg := hooks.NewRegistry(hooks.NewNoop(defType))

	// Wire the session layer
	dispatcher := session.NewDispatcher(players, rooms, hookReg, broker)
	sessions := session.NewManager(dispatcher, broker)
	cm := listener.NewConnectionManager(sessions)

	// Create Listeners
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		lst, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = lst
	}

	// Set up the room sweeper
	var sweepOpts []sweeper.DriverOpt
	if cfg.SweepInterval != "" {
		d, err := time.ParseDuration(cfg.SweepInterval)
		if err != nil {
			return nil, fmt.Errorf("parsing sweep_interval: %w", err)
		}
		sweepOpts = append(sweepOpts, sweeper.WithTickInterval(d))
	}
	driver := sweeper.NewDriver([]sweeper.Manager{
		sweeper.NewRoomSweep(rooms, hookReg),
	}, sweepOpts...)

	// Create a worker list
	return service.WorkerList{
		"messaging": broker,
		"sweeper":   driver,
		"listeners": &listeners,
	}, nil
}
