package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/bazoka/roomserver/internal/game"
)

// Subscriber creates per-subject subscriptions. The embedded NATS server
// implements it.
type Subscriber interface {
	Subscribe(subject string, handler func(data []byte)) (func(), error)
}

// sendBuffer bounds how far a session's delivery channel can fall behind
// before broadcasts to it are dropped.
const sendBuffer = 64

// Manager creates a player per accepted connection and runs its session to
// completion.
type Manager struct {
	dispatcher *Dispatcher
	sub        Subscriber
	seq        atomic.Uint64
}

func NewManager(d *Dispatcher, sub Subscriber) *Manager {
	return &Manager{
		dispatcher: d,
		sub:        sub,
	}
}

// Run owns one connection for its whole life: names the player from the
// connection sequence, subscribes its delivery subject, announces it, and
// pumps frames until the connection drops or the context ends. Cleanup
// mirrors an explicit LEAVEROOM followed by deregistration and a
// DISCONNECTED broadcast.
func (m *Manager) Run(ctx context.Context, conn io.ReadWriter) error {
	name := fmt.Sprintf("player-%d", m.seq.Add(1)-1)
	p := game.NewPlayer(name)

	msgs := make(chan []byte, sendBuffer)
	unsub, err := m.sub.Subscribe(game.PlayerSubject(name), func(data []byte) {
		select {
		case msgs <- data:
		default:
			// A wedged connection must not stall the broadcaster.
			slog.Warn("dropping message for slow session", "player", name)
		}
	})
	if err != nil {
		return fmt.Errorf("subscribing %s: %w", name, err)
	}
	defer unsub()

	m.dispatcher.Connect(p)
	defer m.dispatcher.Disconnect(p)

	slog.InfoContext(ctx, "player connected", "player", name)
	defer slog.InfoContext(ctx, "player disconnected", "player", name)

	s := &Session{
		conn:   conn,
		player: p,
		disp:   m.dispatcher,
		msgs:   msgs,
	}
	return s.Run(ctx)
}
