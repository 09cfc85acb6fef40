package game

import "sync"

// Player is one connected client. The session owns the connection itself;
// rooms and registries only track identity and relations.
type Player struct {
	name string

	mu    sync.Mutex
	room  *Room
	ready bool
}

func NewPlayer(name string) *Player {
	return &Player{name: name}
}

func (p *Player) Name() string {
	return p.name
}

// Room returns the room the player is currently in, or nil.
func (p *Player) Room() *Room {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.room
}

func (p *Player) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ready
}

// setRoom is called by Room.Join while holding the room lock, so the member
// list and the back-reference change together. Lock order is always room
// before player. Entering a room clears the ready flag.
func (p *Player) setRoom(r *Room) {
	p.mu.Lock()
	p.room = r
	p.ready = false
	p.mu.Unlock()
}

// clearRoom is called by Room.Leave while holding the room lock. The
// back-reference is cleared only if it still points at the room being left;
// switching rooms joins the new room first, so by the time the old room is
// left the reference already points elsewhere.
func (p *Player) clearRoom(r *Room) {
	p.mu.Lock()
	if p.room == r {
		p.room = nil
		p.ready = false
	}
	p.mu.Unlock()
}

func (p *Player) setReady(v bool) {
	p.mu.Lock()
	p.ready = v
	p.mu.Unlock()
}
