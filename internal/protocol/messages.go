// Package protocol defines the JSON wire types exchanged between the server
// and clients. Coordinates cross the wire as float64 and are quantized to
// fixed point at intake, so every replica simulates against identical values.
package protocol

// Version is bumped whenever a wire type changes incompatibly.
const Version = 1

// Cell is the client-visible projection of one cell.
type Cell struct {
	ID     uint64  `json:"id"`
	Owner  string  `json:"owner"`
	Color  uint8   `json:"color"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

// Food is the client-visible projection of one pellet.
type Food struct {
	ID     uint64  `json:"id"`
	Color  uint8   `json:"color"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

// JoinResponse answers POST /join with the client's identity and the full
// starting snapshot.
type JoinResponse struct {
	Ver       int     `json:"ver"`
	ID        string  `json:"id"`
	Frame     uint64  `json:"frame"`
	Cells     []Cell  `json:"cells"`
	Food      []Food  `json:"food"`
	WorldSize float64 `json:"worldSize"`
	TickRate  int     `json:"tickRate"`
}

// StateMessage is the per-tick broadcast. Hash lets a client compare its
// resimulated state against the authority and request a resync on mismatch.
type StateMessage struct {
	Ver        int    `json:"ver"`
	Type       string `json:"type"`
	Frame      uint64 `json:"frame"`
	Hash       string `json:"hash"`
	Cells      []Cell `json:"cells"`
	Food       []Food `json:"food"`
	ServerTime int64  `json:"serverTime"`
}

// ClientMessage is the envelope for everything a client sends over the
// socket. Type selects which fields matter.
type ClientMessage struct {
	Type string `json:"type"`

	// type == "input"
	TargetX   float64 `json:"targetX"`
	TargetY   float64 `json:"targetY"`
	HasTarget bool    `json:"hasTarget"`
	Split     bool    `json:"split"`

	// type == "heartbeat"
	SentAt int64 `json:"sentAt"`
}

// HeartbeatAck echoes a heartbeat with timing data for RTT measurement.
type HeartbeatAck struct {
	Type       string `json:"type"`
	ServerTime int64  `json:"serverTime"`
	ClientTime int64  `json:"clientTime"`
	RTTMillis  int64  `json:"rttMillis"`
}

// DiagnosticsClient exposes per-client liveness data on /diagnostics.
type DiagnosticsClient struct {
	ID            string `json:"id"`
	LastHeartbeat int64  `json:"lastHeartbeat"`
	RTTMillis     int64  `json:"rttMillis"`
}

// Diagnostics is the /diagnostics response body.
type Diagnostics struct {
	Status          string              `json:"status"`
	ServerTime      int64               `json:"serverTime"`
	Frame           uint64              `json:"frame"`
	TickRate        int                 `json:"tickRate"`
	Clients         []DiagnosticsClient `json:"clients"`
	JournalOldest   uint64              `json:"journalOldest"`
	JournalNewest   uint64              `json:"journalNewest"`
	JournalFrames   int                 `json:"journalFrames"`
	EventsDropped   uint64              `json:"eventsDropped"`
	EventsDelivered uint64              `json:"eventsDelivered"`
}
