// Package lifecycle publishes client join/leave events.
package lifecycle

import (
	"context"

	"github.com/modu-apps/cell-eater/logging"
)

const (
	// EventClientJoined is emitted when a client's first cell spawns.
	EventClientJoined logging.EventType = "lifecycle.client_joined"
	// EventClientLeft is emitted when a client's cells are removed.
	EventClientLeft logging.EventType = "lifecycle.client_left"
	// EventClientDisconnected is emitted when the hub drops a stale connection.
	EventClientDisconnected logging.EventType = "lifecycle.client_disconnected"
)

// ClientJoinedPayload carries the spawned cell for a join event.
type ClientJoinedPayload struct {
	CellID uint64 `json:"cellId"`
}

func ClientJoined(ctx context.Context, pub logging.Publisher, frame uint64, actor logging.EntityRef, payload ClientJoinedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventClientJoined,
		Frame:    frame,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
		Extra:    extra,
	})
}

// ClientLeftPayload counts the cells removed with the departing client.
type ClientLeftPayload struct {
	CellsRemoved int `json:"cellsRemoved"`
}

func ClientLeft(ctx context.Context, pub logging.Publisher, frame uint64, actor logging.EntityRef, payload ClientLeftPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventClientLeft,
		Frame:    frame,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
		Extra:    extra,
	})
}

// ClientDisconnectedPayload names the reason a connection was dropped.
type ClientDisconnectedPayload struct {
	Reason string `json:"reason"`
}

func ClientDisconnected(ctx context.Context, pub logging.Publisher, frame uint64, actor logging.EntityRef, payload ClientDisconnectedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventClientDisconnected,
		Frame:    frame,
		Actor:    actor,
		Severity: logging.SeverityWarn,
		Category: logging.CategoryLifecycle,
		Payload:  payload,
		Extra:    extra,
	})
}
