// Package simulation publishes determinism and loop-health events.
package simulation

import (
	"context"

	"github.com/modu-apps/cell-eater/logging"
)

const (
	// EventDivergenceDetected is emitted when a client-reported state hash
	// disagrees with the server's for the same frame.
	EventDivergenceDetected logging.EventType = "simulation.divergence_detected"
	// EventRollbackApplied is emitted after a successful rollback and replay.
	EventRollbackApplied logging.EventType = "simulation.rollback_applied"
	// EventTickOverrun is emitted when a frame step exceeds the tick budget.
	EventTickOverrun logging.EventType = "simulation.tick_overrun"
)

// DivergencePayload carries both hashes for the disputed frame.
type DivergencePayload struct {
	Frame      uint64 `json:"frame"`
	LocalHash  string `json:"localHash"`
	RemoteHash string `json:"remoteHash"`
}

func DivergenceDetected(ctx context.Context, pub logging.Publisher, frame uint64, actor logging.EntityRef, payload DivergencePayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventDivergenceDetected,
		Frame:    frame,
		Actor:    actor,
		Severity: logging.SeverityError,
		Category: logging.CategorySimulation,
		Payload:  payload,
		Extra:    extra,
	})
}

// RollbackPayload describes the span a rollback resimulated.
type RollbackPayload struct {
	FromFrame uint64 `json:"fromFrame"`
	ToFrame   uint64 `json:"toFrame"`
}

func RollbackApplied(ctx context.Context, pub logging.Publisher, frame uint64, payload RollbackPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventRollbackApplied,
		Frame:    frame,
		Severity: logging.SeverityInfo,
		Category: logging.CategorySimulation,
		Payload:  payload,
		Extra:    extra,
	})
}

// TickOverrunPayload captures timing for a budget breach.
type TickOverrunPayload struct {
	DurationMillis int64 `json:"durationMillis"`
	BudgetMillis   int64 `json:"budgetMillis"`
}

func TickOverrun(ctx context.Context, pub logging.Publisher, frame uint64, payload TickOverrunPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventTickOverrun,
		Frame:    frame,
		Severity: logging.SeverityWarn,
		Category: logging.CategorySimulation,
		Payload:  payload,
		Extra:    extra,
	})
}
