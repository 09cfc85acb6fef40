package game

import (
	"log/slog"
	"sync"
)

// RoomState tracks the room lifecycle:
//
//	Waiting → Ready → Playing → Finished
//
// Ready drops back to Waiting when membership falls below capacity before
// play starts. Once a room is Playing or Finished no player may join it.
type RoomState int

const (
	StateWaiting RoomState = iota
	StateReady
	StatePlaying
	StateFinished
)

func (s RoomState) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StateReady:
		return "ready"
	case StatePlaying:
		return "playing"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// DefaultRoomType is assigned to rooms created without an explicit type.
const DefaultRoomType = "Type01"

// Room is a bounded-capacity session container. All membership, ready-flag,
// and state changes on a room are serialized by its mutex; different rooms
// proceed in parallel.
type Room struct {
	name     string
	capacity int
	roomType string
	pub      Publisher

	mu      sync.Mutex
	members []*Player // join order
	state   RoomState
}

func NewRoom(name string, capacity int, roomType string, pub Publisher) *Room {
	if roomType == "" {
		roomType = DefaultRoomType
	}
	return &Room{
		name:     name,
		capacity: capacity,
		roomType: roomType,
		pub:      pub,
		state:    StateWaiting,
	}
}

func (r *Room) Name() string {
	return r.name
}

func (r *Room) Capacity() int {
	return r.capacity
}

func (r *Room) Type() string {
	return r.roomType
}

func (r *Room) State() RoomState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Room) MemberCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

// Members returns a snapshot of the member list in join order.
func (r *Room) Members() []*Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*Player(nil), r.members...)
}

// Join appends p to the member list and sets its back-reference. A room at
// capacity, or one that has already started playing, rejects the join with
// ErrRoomFull.
func (r *Room) Join(p *Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StatePlaying || r.state == StateFinished {
		return ErrRoomFull
	}
	if len(r.members) >= r.capacity {
		return ErrRoomFull
	}

	r.members = append(r.members, p)
	p.setRoom(r)

	if len(r.members) == r.capacity {
		r.state = StateReady
	} else {
		r.state = StateWaiting
	}
	return nil
}

// Leave removes p from the member list and clears its back-reference and
// ready flag, unless p has already moved on to another room. It reports
// whether p was a member, and is safe to call redundantly during disconnect
// cleanup.
func (r *Room) Leave(p *Player) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, m := range r.members {
		if m == p {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	r.members = append(r.members[:idx], r.members[idx+1:]...)
	p.clearRoom(r)

	if (r.state == StateWaiting || r.state == StateReady) && len(r.members) < r.capacity {
		r.state = StateWaiting
	}
	return true
}

// SetReady flips p's ready flag. It reports false when p is not a member.
func (r *Room) SetReady(p *Player, ready bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.members {
		if m == p {
			p.setReady(ready)
			return true
		}
	}
	return false
}

// Finish marks the room finished. Gameplay hooks call this when their game
// ends; the next sweep reclaims the room.
func (r *Room) Finish() {
	r.mu.Lock()
	r.state = StateFinished
	r.mu.Unlock()
}

// Reclaimable reports whether the sweep should drop the room: it finished,
// or it started filling and then emptied out without finishing.
func (r *Room) Reclaimable() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state == StateFinished || (r.state != StateWaiting && len(r.members) == 0)
}

// PromoteIfReady moves a Ready room to Playing once every member has readied
// up. It reports whether the promotion happened. The sweep calls this once
// per tick; readiness alone never promotes a room between ticks.
func (r *Room) PromoteIfReady() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateReady {
		return false
	}
	for _, m := range r.members {
		if !m.Ready() {
			return false
		}
	}
	r.state = StatePlaying
	return true
}

// Broadcast delivers data to every member except the excluded player.
// Targets are snapshotted under the lock and delivery happens outside it,
// so a slow recipient never stalls membership changes. Per-recipient
// failures are logged and do not abort delivery to the rest.
func (r *Room) Broadcast(data []byte, except *Player) {
	r.mu.Lock()
	targets := make([]string, 0, len(r.members))
	for _, m := range r.members {
		if m != except {
			targets = append(targets, m.Name())
		}
	}
	r.mu.Unlock()

	for _, name := range targets {
		if err := r.pub.Publish(PlayerSubject(name), data); err != nil {
			slog.Warn("delivering room message", "room", r.name, "player", name, "error", err)
		}
	}
}
