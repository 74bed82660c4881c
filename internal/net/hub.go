// Package net hosts one arena room behind an HTTP and websocket surface.
package net

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/modu-apps/cell-eater/internal/fixed"
	"github.com/modu-apps/cell-eater/internal/protocol"
	"github.com/modu-apps/cell-eater/internal/sim"
	"github.com/modu-apps/cell-eater/logging"
	lifecyclelog "github.com/modu-apps/cell-eater/logging/lifecycle"
	simulationlog "github.com/modu-apps/cell-eater/logging/simulation"
)

const (
	tickRate          = 15 // ticks per second
	writeWait         = 10 * time.Second
	heartbeatInterval = 2 * time.Second
	disconnectAfter   = 3 * heartbeatInterval
)

// tickBudget is the wall-clock allowance for one frame before an overrun
// event is published.
const tickBudget = time.Second / tickRate

// Hub owns one room world, its subscribers, and the tick loop that steps
// them. All world access goes through the hub mutex; the tick loop is the
// only goroutine that calls Step.
type Hub struct {
	mu          sync.Mutex
	world       *sim.World
	clients     map[string]*clientState
	subscribers map[string]*subscriber
	nextID      atomic.Uint64
	publisher   logging.Publisher
}

type clientState struct {
	lastHeartbeat time.Time
	lastRTT       time.Duration
}

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// NewHub wraps a world. The publisher receives lifecycle and simulation
// events; pass nil to discard them.
func NewHub(world *sim.World, publisher logging.Publisher) *Hub {
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	return &Hub{
		world:       world,
		clients:     make(map[string]*clientState),
		subscribers: make(map[string]*subscriber),
		publisher:   publisher,
	}
}

// Join allocates a client identity, stages the join for the next frame, and
// returns the current snapshot. The client's cell appears in the first state
// broadcast after the next tick.
func (h *Hub) Join() protocol.JoinResponse {
	id := fmt.Sprintf("client-%d", h.nextID.Add(1))

	h.mu.Lock()
	h.clients[id] = &clientState{lastHeartbeat: time.Now()}
	h.world.StageJoin(id)
	cells, food := protocol.Snapshot(h.world.Store())
	frame := h.world.Frame()
	h.mu.Unlock()

	return protocol.JoinResponse{
		Ver:       protocol.Version,
		ID:        id,
		Frame:     frame,
		Cells:     cells,
		Food:      food,
		WorldSize: h.world.WorldSize(),
		TickRate:  tickRate,
	}
}

// Subscribe attaches a websocket connection to a joined client. A second
// connection for the same client replaces the first.
func (h *Hub) Subscribe(clientID string, conn *websocket.Conn) (*subscriber, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	state, ok := h.clients[clientID]
	if !ok {
		return nil, false
	}
	state.lastHeartbeat = time.Now()

	if existing, ok := h.subscribers[clientID]; ok {
		existing.conn.Close()
	}
	sub := &subscriber{conn: conn}
	h.subscribers[clientID] = sub
	return sub, true
}

// Disconnect stages the client's departure and closes its connection.
func (h *Hub) Disconnect(clientID string, reason string) {
	h.mu.Lock()
	sub, subOK := h.subscribers[clientID]
	if subOK {
		delete(h.subscribers, clientID)
	}
	_, clientOK := h.clients[clientID]
	if clientOK {
		delete(h.clients, clientID)
		h.world.StageLeave(clientID)
	}
	h.mu.Unlock()

	if subOK {
		sub.conn.Close()
	}
	if clientOK {
		lifecyclelog.ClientDisconnected(context.Background(), h.publisher, 0,
			logging.EntityRef{ID: clientID, Kind: logging.EntityKindClient},
			lifecyclelog.ClientDisconnectedPayload{Reason: reason}, nil)
	}
}

// UpdateInput quantizes the client's target to fixed point and stages it.
// The quantized value is what the journal records, so a resimulating client
// that applies the same quantization stays bit-identical.
func (h *Hub) UpdateInput(clientID string, targetX, targetY float64, hasTarget, split bool) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[clientID]; !ok {
		return false
	}
	target := fixed.Vec{X: fixed.FromFloat(targetX), Y: fixed.FromFloat(targetY)}
	h.world.StageInput(clientID, target, hasTarget, split)
	return true
}

// UpdateHeartbeat records liveness and computes the round-trip time.
func (h *Hub) UpdateHeartbeat(clientID string, receivedAt time.Time, clientSent int64) (time.Duration, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	state, ok := h.clients[clientID]
	if !ok {
		return 0, false
	}
	state.lastHeartbeat = receivedAt

	if clientSent > 0 {
		clientTime := time.UnixMilli(clientSent)
		if clientTime.Before(receivedAt.Add(5 * time.Second)) {
			rtt := receivedAt.Sub(clientTime)
			if rtt < 0 {
				rtt = 0
			}
			state.lastRTT = rtt
		}
	}
	return state.lastRTT, true
}

// advance expels clients whose heartbeat lapsed, steps the world one frame,
// and returns the broadcast message plus connections to close.
func (h *Hub) advance(now time.Time) (protocol.StateMessage, []*subscriber) {
	h.mu.Lock()

	toClose := make([]*subscriber, 0)
	for id, state := range h.clients {
		if now.Sub(state.lastHeartbeat) <= disconnectAfter {
			continue
		}
		if sub, ok := h.subscribers[id]; ok {
			toClose = append(toClose, sub)
			delete(h.subscribers, id)
		}
		delete(h.clients, id)
		h.world.StageLeave(id)
		lifecyclelog.ClientDisconnected(context.Background(), h.publisher, h.world.Frame(),
			logging.EntityRef{ID: id, Kind: logging.EntityKindClient},
			lifecyclelog.ClientDisconnectedPayload{Reason: "heartbeat timeout"}, nil)
	}

	started := time.Now()
	h.world.Step()
	elapsed := time.Since(started)

	frame := h.world.Frame()
	hash := h.world.StateHash()
	cells, food := protocol.Snapshot(h.world.Store())
	h.mu.Unlock()

	if elapsed > tickBudget {
		simulationlog.TickOverrun(context.Background(), h.publisher, frame,
			simulationlog.TickOverrunPayload{
				DurationMillis: elapsed.Milliseconds(),
				BudgetMillis:   tickBudget.Milliseconds(),
			}, nil)
	}

	return protocol.StateMessage{
		Ver:        protocol.Version,
		Type:       "state",
		Frame:      frame,
		Hash:       hash,
		Cells:      cells,
		Food:       food,
		ServerTime: now.UnixMilli(),
	}, toClose
}

// RunSimulation drives the fixed-rate tick loop until the stop channel
// closes.
func (h *Hub) RunSimulation(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Second / tickRate)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			msg, toClose := h.advance(now)
			for _, sub := range toClose {
				sub.conn.Close()
			}
			h.broadcastState(msg)
		}
	}
}

// broadcastState sends the frame snapshot to every subscriber. A failed
// write disconnects that client.
func (h *Hub) broadcastState(msg protocol.StateMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.Lock()
	subs := make(map[string]*subscriber, len(h.subscribers))
	for id, sub := range h.subscribers {
		subs[id] = sub
	}
	h.mu.Unlock()

	for id, sub := range subs {
		sub.mu.Lock()
		sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
		err := sub.conn.WriteMessage(websocket.TextMessage, data)
		sub.mu.Unlock()
		if err != nil {
			h.Disconnect(id, "write failed")
		}
	}
}

// Diagnostics assembles the /diagnostics response.
func (h *Hub) Diagnostics(routerDelivered, routerDropped uint64) protocol.Diagnostics {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := make([]protocol.DiagnosticsClient, 0, len(h.clients))
	for id, state := range h.clients {
		clients = append(clients, protocol.DiagnosticsClient{
			ID:            id,
			LastHeartbeat: state.lastHeartbeat.UnixMilli(),
			RTTMillis:     state.lastRTT.Milliseconds(),
		})
	}

	oldest, newest, frames := h.world.JournalWindow()
	return protocol.Diagnostics{
		Status:          "ok",
		ServerTime:      time.Now().UnixMilli(),
		Frame:           h.world.Frame(),
		TickRate:        tickRate,
		Clients:         clients,
		JournalOldest:   oldest,
		JournalNewest:   newest,
		JournalFrames:   frames,
		EventsDropped:   routerDropped,
		EventsDelivered: routerDelivered,
	}
}
