package sweeper

import (
	"context"
	"log/slog"

	"github.com/bazoka/roomserver/internal/game"
	"github.com/bazoka/roomserver/internal/hooks"
)

// RoomSweep is the per-tick maintenance pass over the room registry: it
// reclaims dead rooms, promotes all-ready rooms to playing, and runs each
// live room's gameplay tick.
type RoomSweep struct {
	rooms *game.RoomRegistry
	hooks *hooks.Registry
}

func NewRoomSweep(rooms *game.RoomRegistry, hookReg *hooks.Registry) *RoomSweep {
	return &RoomSweep{
		rooms: rooms,
		hooks: hookReg,
	}
}

func (s *RoomSweep) Tick(ctx context.Context) error {
	for _, room := range s.rooms.Snapshot() {
		if room.Reclaimable() {
			s.rooms.Remove(room.Name())
			slog.InfoContext(ctx, "reclaimed room", "room", room.Name(), "state", room.State().String())
			continue
		}

		if room.MemberCount() == 0 {
			continue
		}

		if room.PromoteIfReady() {
			slog.InfoContext(ctx, "room started playing", "room", room.Name())
		}

		// A hook error affects only its own room.
		if err := s.hooks.Get(room.Type()).OnTick(ctx, room); err != nil {
			slog.WarnContext(ctx, "gameplay tick", "room", room.Name(), "error", err)
		}
	}
	return nil
}
