package hooks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bazoka/roomserver/internal/game"
)

// Hook is the gameplay logic for one room type. The engine invokes OnTick
// once per sweep for every live room, and OnMessage once per inbound frame
// for every active room regardless of which player sent it or which room it
// targets. Routing within the hook is the hook's responsibility. A hook
// ends its game by calling Finish on the room.
type Hook interface {
	Key() string
	OnTick(ctx context.Context, room *game.Room) error
	OnMessage(ctx context.Context, room *game.Room, sender *game.Player, frame string)
}

// Registry holds the registrable set of gameplay hooks keyed by room type.
// Rooms with an unknown type fall back to the default hook.
type Registry struct {
	hooks map[string]Hook
	def   Hook
}

func NewRegistry(def Hook) *Registry {
	return &Registry{
		hooks: map[string]Hook{def.Key(): def},
		def:   def,
	}
}

func (r *Registry) Register(ctx context.Context, h Hook) error {
	if h == nil {
		return fmt.Errorf("hook is nil")
	}
	if _, ok := r.hooks[h.Key()]; ok {
		return fmt.Errorf("hook %q already registered", h.Key())
	}

	r.hooks[h.Key()] = h
	slog.InfoContext(ctx, "registered gameplay hook", "key", h.Key())

	return nil
}

// DefaultKey returns the room type rooms get when a create request names
// none.
func (r *Registry) DefaultKey() string {
	return r.def.Key()
}

// Get returns the hook for a room type, falling back to the default.
func (r *Registry) Get(roomType string) Hook {
	if h, ok := r.hooks[roomType]; ok {
		return h
	}
	return r.def
}

// Noop is a gameplay hook that does nothing. It backs room types with no
// registered logic.
type Noop struct {
	key string
}

func NewNoop(key string) *Noop {
	return &Noop{key: key}
}

func (n *Noop) Key() string {
	return n.key
}

func (n *Noop) OnTick(context.Context, *game.Room) error {
	return nil
}

func (n *Noop) OnMessage(context.Context, *game.Room, *game.Player, string) {}
