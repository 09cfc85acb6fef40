package game

import (
	"log/slog"
	"sync"
)

// PlayerRegistry owns the set of connected players. All access goes through
// its methods.
type PlayerRegistry struct {
	pub Publisher

	mu      sync.RWMutex
	players map[string]*Player
}

func NewPlayerRegistry(pub Publisher) *PlayerRegistry {
	return &PlayerRegistry{
		pub:     pub,
		players: map[string]*Player{},
	}
}

func (r *PlayerRegistry) Add(p *Player) {
	r.mu.Lock()
	r.players[p.Name()] = p
	r.mu.Unlock()
}

// Remove deregisters p. Removing an absent player is a no-op.
func (r *PlayerRegistry) Remove(p *Player) {
	r.mu.Lock()
	delete(r.players, p.Name())
	r.mu.Unlock()
}

// Find returns the named player, or nil.
func (r *PlayerRegistry) Find(name string) *Player {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.players[name]
}

func (r *PlayerRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}

// BroadcastAll delivers data to every registered player except the excluded
// one.
func (r *PlayerRegistry) BroadcastAll(data []byte, except *Player) {
	r.broadcast(data, except, func(*Player) bool { return true })
}

// BroadcastLobby delivers data only to players that are not in any room,
// except the excluded one.
func (r *PlayerRegistry) BroadcastLobby(data []byte, except *Player) {
	r.broadcast(data, except, func(p *Player) bool { return p.Room() == nil })
}

func (r *PlayerRegistry) broadcast(data []byte, except *Player, include func(*Player) bool) {
	r.mu.RLock()
	targets := make([]string, 0, len(r.players))
	for _, p := range r.players {
		if p != except && include(p) {
			targets = append(targets, p.Name())
		}
	}
	r.mu.RUnlock()

	for _, name := range targets {
		if err := r.pub.Publish(PlayerSubject(name), data); err != nil {
			slog.Warn("delivering lobby message", "player", name, "error", err)
		}
	}
}

// RoomRegistry owns the set of active rooms. Creation order is preserved so
// room listings are stable.
type RoomRegistry struct {
	mu     sync.RWMutex
	byName map[string]*Room
	order  []*Room
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{
		byName: map[string]*Room{},
	}
}

// Add registers a room. A name already in use is rejected with ErrRoomExists.
func (r *RoomRegistry) Add(room *Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[room.Name()]; ok {
		return ErrRoomExists
	}
	r.byName[room.Name()] = room
	r.order = append(r.order, room)
	return nil
}

// Remove drops the named room. Unknown names are a no-op.
func (r *RoomRegistry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.byName[name]
	if !ok {
		return
	}
	delete(r.byName, name)
	for i, rm := range r.order {
		if rm == room {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Find returns the named room, or nil.
func (r *RoomRegistry) Find(name string) *Room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byName[name]
}

// Names returns the room names in creation order.
func (r *RoomRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	for i, room := range r.order {
		names[i] = room.Name()
	}
	return names
}

// Snapshot returns the rooms in creation order. The sweep iterates the
// snapshot so a reclaim never mutates the list it is walking.
func (r *RoomRegistry) Snapshot() []*Room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Room(nil), r.order...)
}
