package net

import (
	"testing"
	"time"

	"github.com/modu-apps/cell-eater/internal/sim"
)

func newTestHub() *Hub {
	world := sim.New(sim.Config{Seed: "hub-test", InitialFood: -1}, sim.Deps{})
	return NewHub(world, nil)
}

func TestJoinAllocatesUniqueIDs(t *testing.T) {
	hub := newTestHub()
	first := hub.Join()
	second := hub.Join()
	if first.ID == second.ID {
		t.Fatalf("duplicate client id %q", first.ID)
	}
	if first.Ver != 1 {
		t.Fatalf("unexpected protocol version %d", first.Ver)
	}
	if first.WorldSize <= 0 || first.TickRate <= 0 {
		t.Fatalf("join response missing arena parameters: %+v", first)
	}
}

func TestJoinedClientAppearsAfterTick(t *testing.T) {
	hub := newTestHub()
	join := hub.Join()
	if len(join.Cells) != 0 {
		t.Fatalf("cell should not exist before the next frame")
	}

	msg, _ := hub.advance(time.Now())
	if len(msg.Cells) != 1 {
		t.Fatalf("cell count %d after tick, want 1", len(msg.Cells))
	}
	if msg.Cells[0].Owner != join.ID {
		t.Fatalf("cell owner %q, want %q", msg.Cells[0].Owner, join.ID)
	}
	if msg.Frame != 1 || msg.Hash == "" {
		t.Fatalf("broadcast missing frame/hash: frame=%d hash=%q", msg.Frame, msg.Hash)
	}
}

func TestUpdateInputRequiresJoin(t *testing.T) {
	hub := newTestHub()
	if hub.UpdateInput("nobody", 100, 100, true, false) {
		t.Fatalf("input accepted for unknown client")
	}
	join := hub.Join()
	if !hub.UpdateInput(join.ID, 100, 100, true, false) {
		t.Fatalf("input rejected for joined client")
	}
}

func TestInputSteersCell(t *testing.T) {
	hub := newTestHub()
	join := hub.Join()
	hub.advance(time.Now())

	before, _ := hub.advance(time.Now())
	start := before.Cells[0]

	// Steer horizontally toward the far half of the arena so the wall
	// clamp cannot mask the motion.
	dir := 1.0
	if start.X > 1000 {
		dir = -1
	}
	hub.UpdateInput(join.ID, start.X+dir*500, start.Y, true, false)
	after, _ := hub.advance(time.Now())
	moved := after.Cells[0]

	if dir > 0 && moved.X <= start.X {
		t.Fatalf("cell did not move toward target: %v -> %v", start.X, moved.X)
	}
	if dir < 0 && moved.X >= start.X {
		t.Fatalf("cell did not move toward target: %v -> %v", start.X, moved.X)
	}
	if moved.Y != start.Y {
		t.Fatalf("cell drifted off axis: %v -> %v", start.Y, moved.Y)
	}
}

func TestHeartbeatTimeoutExpelsClient(t *testing.T) {
	hub := newTestHub()
	join := hub.Join()
	hub.advance(time.Now())

	msg, _ := hub.advance(time.Now().Add(2 * disconnectAfter))
	if len(msg.Cells) != 0 {
		t.Fatalf("stale client still has cells after timeout")
	}
	if hub.UpdateInput(join.ID, 0, 0, false, false) {
		t.Fatalf("expelled client still accepted input")
	}
}

func TestHeartbeatUpdatesRTT(t *testing.T) {
	hub := newTestHub()
	join := hub.Join()

	now := time.Now()
	rtt, ok := hub.UpdateHeartbeat(join.ID, now, now.Add(-40*time.Millisecond).UnixMilli())
	if !ok {
		t.Fatalf("heartbeat rejected for joined client")
	}
	if rtt <= 0 {
		t.Fatalf("rtt %v, want positive", rtt)
	}

	if _, ok := hub.UpdateHeartbeat("nobody", now, 0); ok {
		t.Fatalf("heartbeat accepted for unknown client")
	}
}

func TestDisconnectStagesLeave(t *testing.T) {
	hub := newTestHub()
	join := hub.Join()
	hub.advance(time.Now())

	hub.Disconnect(join.ID, "test")
	msg, _ := hub.advance(time.Now())
	if len(msg.Cells) != 0 {
		t.Fatalf("cells remain after disconnect: %d", len(msg.Cells))
	}
}

func TestDiagnosticsReportsJournalWindow(t *testing.T) {
	hub := newTestHub()
	hub.Join()
	for i := 0; i < 5; i++ {
		hub.advance(time.Now())
	}

	diag := hub.Diagnostics(7, 3)
	if diag.Frame != 5 {
		t.Fatalf("frame %d, want 5", diag.Frame)
	}
	if diag.JournalNewest != 5 || diag.JournalFrames == 0 {
		t.Fatalf("journal window missing: %+v", diag)
	}
	if len(diag.Clients) != 1 {
		t.Fatalf("client count %d, want 1", len(diag.Clients))
	}
	if diag.EventsDelivered != 7 || diag.EventsDropped != 3 {
		t.Fatalf("router counters not passed through: %+v", diag)
	}
}
