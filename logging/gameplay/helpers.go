// Package gameplay publishes eat/split/merge events from the frame step.
package gameplay

import (
	"context"

	"github.com/modu-apps/cell-eater/logging"
)

const (
	// EventCellEaten is emitted when one client's cell consumes another's.
	EventCellEaten logging.EventType = "gameplay.cell_eaten"
	// EventCellSplit is emitted when a cell divides in two.
	EventCellSplit logging.EventType = "gameplay.cell_split"
	// EventCellsMerged is emitted when a sibling pair recombines.
	EventCellsMerged logging.EventType = "gameplay.cells_merged"
)

// CellEatenPayload identifies both sides of an eat resolution.
type CellEatenPayload struct {
	EaterID uint64 `json:"eaterId"`
	PreyID  uint64 `json:"preyId"`
	Prey    string `json:"prey"`
}

func CellEaten(ctx context.Context, pub logging.Publisher, frame uint64, actor logging.EntityRef, payload CellEatenPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventCellEaten,
		Frame:    frame,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryGameplay,
		Payload:  payload,
		Extra:    extra,
	})
}

// CellSplitPayload carries the parent/child pair and their shared radius.
type CellSplitPayload struct {
	ParentID uint64  `json:"parentId"`
	ChildID  uint64  `json:"childId"`
	Radius   float64 `json:"radius"`
}

func CellSplit(ctx context.Context, pub logging.Publisher, frame uint64, actor logging.EntityRef, payload CellSplitPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventCellSplit,
		Frame:    frame,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryGameplay,
		Payload:  payload,
		Extra:    extra,
	})
}

// CellsMergedPayload carries the surviving cell and the one folded into it.
type CellsMergedPayload struct {
	KeeperID uint64  `json:"keeperId"`
	GoneID   uint64  `json:"goneId"`
	Radius   float64 `json:"radius"`
}

func CellsMerged(ctx context.Context, pub logging.Publisher, frame uint64, actor logging.EntityRef, payload CellsMergedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventCellsMerged,
		Frame:    frame,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryGameplay,
		Payload:  payload,
		Extra:    extra,
	})
}
