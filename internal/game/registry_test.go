package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pixil98/go-testutil"
)

// Player and Room carry mutexes and unexported state, so assert on identity
// rather than letting go-cmp walk their fields.
var (
	samePlayer = cmp.Comparer(func(a, b *Player) bool { return a == b })
	sameRoom   = cmp.Comparer(func(a, b *Room) bool { return a == b })
)

func TestPlayerRegistry(t *testing.T) {
	reg := NewPlayerRegistry(&recordingPublisher{})
	p1 := NewPlayer("player-0")
	p2 := NewPlayer("player-1")

	reg.Add(p1)
	reg.Add(p2)
	testutil.AssertEqual(t, "count", reg.Count(), 2)
	testutil.AssertEqual(t, "find", reg.Find("player-0"), p1, samePlayer)

	reg.Remove(p1)
	testutil.AssertEqual(t, "count after remove", reg.Count(), 1)
	if reg.Find("player-0") != nil {
		t.Error("removed player should not be found")
	}

	// Removing an absent player is a no-op.
	reg.Remove(p1)
	testutil.AssertEqual(t, "count after redundant remove", reg.Count(), 1)
}

func TestPlayerRegistryBroadcastAll(t *testing.T) {
	pub := &recordingPublisher{}
	reg := NewPlayerRegistry(pub)
	p1 := NewPlayer("player-0")
	p2 := NewPlayer("player-1")
	p3 := NewPlayer("player-2")
	reg.Add(p1)
	reg.Add(p2)
	reg.Add(p3)

	reg.BroadcastAll([]byte("announcement"), p2)

	testutil.AssertEqual(t, "p1 messages", len(pub.received("player-0")), 1)
	testutil.AssertEqual(t, "excluded messages", len(pub.received("player-1")), 0)
	testutil.AssertEqual(t, "p3 messages", len(pub.received("player-2")), 1)
}

func TestPlayerRegistryBroadcastLobby(t *testing.T) {
	pub := &recordingPublisher{}
	reg := NewPlayerRegistry(pub)
	lobbyist := NewPlayer("player-0")
	roomed := NewPlayer("player-1")
	sender := NewPlayer("player-2")
	reg.Add(lobbyist)
	reg.Add(roomed)
	reg.Add(sender)

	room := NewRoom("arena", 2, "", pub)
	room.Join(roomed)

	reg.BroadcastLobby([]byte("hi"), sender)

	testutil.AssertEqual(t, "lobbyist messages", len(pub.received("player-0")), 1)
	testutil.AssertEqual(t, "roomed messages", len(pub.received("player-1")), 0)
	testutil.AssertEqual(t, "sender messages", len(pub.received("player-2")), 0)
}

func TestRoomRegistry(t *testing.T) {
	reg := NewRoomRegistry()
	pub := &recordingPublisher{}

	r1 := NewRoom("alpha", 2, "", pub)
	r2 := NewRoom("beta", 4, "", pub)
	if err := reg.Add(r1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := reg.Add(r2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "find", reg.Find("alpha"), r1, sameRoom)
	if reg.Find("ghost") != nil {
		t.Error("unknown room should not be found")
	}

	// Duplicate names are rejected, the original room stays registered.
	err := reg.Add(NewRoom("alpha", 8, "", pub))
	testutil.AssertEqual(t, "duplicate error", err, ErrRoomExists, cmpopts.EquateErrors())
	testutil.AssertEqual(t, "find after duplicate", reg.Find("alpha"), r1, sameRoom)
	testutil.AssertEqual(t, "find capacity", reg.Find("alpha").Capacity(), 2)
}

func TestRoomRegistryOrder(t *testing.T) {
	reg := NewRoomRegistry()
	pub := &recordingPublisher{}
	for _, name := range []string{"charlie", "alpha", "beta"} {
		reg.Add(NewRoom(name, 2, "", pub))
	}

	testutil.AssertEqual(t, "names", len(reg.Names()), 3)
	testutil.AssertEqual(t, "first", reg.Names()[0], "charlie")
	testutil.AssertEqual(t, "second", reg.Names()[1], "alpha")
	testutil.AssertEqual(t, "third", reg.Names()[2], "beta")

	reg.Remove("alpha")
	testutil.AssertEqual(t, "names after remove", len(reg.Names()), 2)
	testutil.AssertEqual(t, "order preserved", reg.Names()[1], "beta")

	snap := reg.Snapshot()
	testutil.AssertEqual(t, "snapshot length", len(snap), 2)
	testutil.AssertEqual(t, "snapshot first", snap[0].Name(), "charlie")

	// Unknown names are a no-op.
	reg.Remove("ghost")
	testutil.AssertEqual(t, "names after unknown remove", len(reg.Names()), 2)
}
