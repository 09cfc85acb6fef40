package session

import (
	"context"
	"strconv"
	"strings"

	"github.com/bazoka/roomserver/internal/game"
	"github.com/bazoka/roomserver/internal/hooks"
	"github.com/bazoka/roomserver/internal/protocol"
)

// Dispatcher routes each framed inbound message to exactly one registry or
// room operation, then forwards the raw frame to every active room's
// gameplay hook. Unrecognized and malformed commands are dropped silently;
// the hooks are the catch-all for game-specific messages.
type Dispatcher struct {
	players *game.PlayerRegistry
	rooms   *game.RoomRegistry
	hooks   *hooks.Registry
	pub     game.Publisher
}

func NewDispatcher(players *game.PlayerRegistry, rooms *game.RoomRegistry, hookReg *hooks.Registry, pub game.Publisher) *Dispatcher {
	return &Dispatcher{
		players: players,
		rooms:   rooms,
		hooks:   hookReg,
		pub:     pub,
	}
}

// Connect registers p and announces the newcomer to everyone else.
func (d *Dispatcher) Connect(p *game.Player) {
	d.players.Add(p)
	d.players.BroadcastAll(protocol.Build(protocol.MsgConnected, p.Name()), p)
}

// Disconnect runs the cleanup for a dropped connection: leave the current
// room if any, deregister, then tell everyone. It is safe to call after a
// session that already left its room.
func (d *Dispatcher) Disconnect(p *game.Player) {
	d.leaveRoom(p)
	d.players.Remove(p)
	d.players.BroadcastAll(protocol.Build(protocol.MsgDisconnected, p.Name()), nil)
}

// Dispatch handles one frame from p. The returned replies are requester-only
// messages the session writes back on its own connection; everything else is
// delivered through the publisher.
func (d *Dispatcher) Dispatch(ctx context.Context, p *game.Player, frame string) [][]byte {
	msg := protocol.Parse(frame)
	var replies [][]byte

	switch msg.Cmd {
	case protocol.CmdChat:
		// Only lobby players send or receive global chat.
		if p.Room() == nil {
			d.players.BroadcastLobby(protocol.Build(protocol.MsgChat, p.Name(), msg.Body), p)
		}

	case protocol.CmdGetRoomList:
		replies = append(replies, protocol.Build(protocol.MsgRoomList, strings.Join(d.rooms.Names(), ",")))

	case protocol.CmdCreateRoom:
		replies = append(replies, d.createRoom(p, msg.Body)...)

	case protocol.CmdJoinRoom:
		replies = append(replies, d.joinRoom(p, strings.TrimSpace(msg.Body))...)

	case protocol.CmdLeaveRoom:
		d.leaveRoom(p)

	case protocol.CmdChatRoom:
		if room := p.Room(); room != nil {
			room.Broadcast(protocol.Build(protocol.MsgChatRoom, p.Name(), msg.Body), p)
		}

	case protocol.CmdReady:
		d.setReady(p, true)

	case protocol.CmdCancel:
		d.setReady(p, false)
	}

	// Every active room's gameplay hook sees every frame; game-specific
	// routing happens inside the hook.
	for _, room := range d.rooms.Snapshot() {
		d.hooks.Get(room.Type()).OnMessage(ctx, room, p, frame)
	}

	return replies
}

// createRoom parses "<name>;<capacity>[;<type>]", registers the room, then
// moves the creator into it. A malformed capacity drops the frame; a taken
// name is reported to the requester only.
func (d *Dispatcher) createRoom(p *game.Player, body string) [][]byte {
	fields := strings.Split(body, ";")
	if len(fields) < 2 {
		return nil
	}

	name := strings.TrimSpace(fields[0])
	capacity, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if name == "" || err != nil || capacity < 1 {
		return nil
	}

	roomType := d.hooks.DefaultKey()
	if len(fields) > 2 {
		if rt := strings.TrimSpace(fields[2]); rt != "" {
			roomType = rt
		}
	}

	room := game.NewRoom(name, capacity, roomType, d.pub)
	if err := d.rooms.Add(room); err != nil {
		return [][]byte{protocol.Build(protocol.MsgRoomExists, name)}
	}

	return d.joinRoom(p, name)
}

// joinRoom moves p into the named room. A failed join (unknown name, room
// full or already playing) leaves p's current membership untouched; on
// success the old room is left only after the new one is joined, so the
// requester is never stranded roomless by a rejection.
func (d *Dispatcher) joinRoom(p *game.Player, name string) [][]byte {
	room := d.rooms.Find(name)
	if room == nil {
		return [][]byte{protocol.Build(protocol.MsgNoRoom, name)}
	}

	prev := p.Room()
	if prev == room {
		return [][]byte{protocol.Build(protocol.MsgJoinedRoom, name)}
	}

	if err := room.Join(p); err != nil {
		return [][]byte{protocol.Build(protocol.MsgRoomFull, name)}
	}

	if prev != nil && prev.Leave(p) {
		prev.Broadcast(protocol.Build(protocol.MsgLeftRoom, p.Name()), nil)
	}

	// The join notification goes to the members that were already there,
	// the confirmation to the joiner.
	room.Broadcast(protocol.Build(protocol.MsgJoinRoom, p.Name()), p)
	return [][]byte{protocol.Build(protocol.MsgJoinedRoom, name)}
}

func (d *Dispatcher) leaveRoom(p *game.Player) {
	room := p.Room()
	if room == nil {
		return
	}
	if room.Leave(p) {
		room.Broadcast(protocol.Build(protocol.MsgLeftRoom, p.Name()), nil)
	}
}

func (d *Dispatcher) setReady(p *game.Player, ready bool) {
	room := p.Room()
	if room == nil {
		return
	}
	if !room.SetReady(p, ready) {
		return
	}

	msg := protocol.MsgPlayerReady
	if !ready {
		msg = protocol.MsgPlayerCancel
	}
	room.Broadcast(protocol.Build(msg, p.Name()), p)
}
