package sim

import (
	"context"

	"github.com/modu-apps/cell-eater/internal/fixed"
	"github.com/modu-apps/cell-eater/internal/store"
	"github.com/modu-apps/cell-eater/logging"
	gameplaylog "github.com/modu-apps/cell-eater/logging/gameplay"
)

// splitFallbackDir is used when the split target coincides with the cell
// center: straight down, so a degenerate direction never divides by zero.
var splitFallbackDir = fixed.Vec{Y: fixed.Scale}

// resolveSplits converts each eligible cell of a splitting client into two.
// The new cell spawns pre-offset along the split direction with a launch
// velocity; the lockout window keeps movement from steering either half
// until the impulse has played out.
func (w *World) resolveSplits(groups []OwnerGroup) {
	frame := w.store.Frame()

	for _, group := range groups {
		input, ok := w.store.Input(group.Owner)
		if !ok || !input.Split {
			continue
		}
		// The command is one-shot whether or not anything was eligible.
		w.store.ClearSplit(group.Owner)

		capacity := maxCellsPerPlayer - len(group.Cells)
		if capacity <= 0 {
			continue
		}

		// Eligible cells in canonical order, truncated to capacity. The
		// truncation order is the tie-break when only some cells fit.
		selected := make([]*store.Cell, 0, capacity)
		for _, cell := range group.Cells {
			if len(selected) == capacity {
				break
			}
			if cell.Radius >= minSplitRadius {
				selected = append(selected, cell)
			}
		}

		for _, cell := range selected {
			if _, ok := w.store.Cell(cell.ID); !ok {
				continue
			}

			dir := splitFallbackDir
			if input.HasTarget {
				if unit, dist := input.Target.Sub(cell.Pos).Norm(); dist > 0 {
					dir = unit
				}
			}

			newRadius := fixed.Div(cell.Radius, sqrt2)

			cell.Radius = newRadius
			cell.MergeableAt = frame + mergeDelayFrames
			cell.SplitLockedAt = frame
			cell.HasSplitLock = true

			offset := dir.Scale(2 * newRadius)
			child := w.spawnCell(group.OwnerID, cellOptions{
				hasColor:      true,
				color:         cell.Color,
				hasPos:        true,
				pos:           cell.Pos.Add(offset),
				radius:        newRadius,
				vel:           dir.Scale(splitImpulse),
				mergeableAt:   frame + mergeDelayFrames,
				splitLock:     true,
				splitLockedAt: frame,
			})

			gameplaylog.CellSplit(context.Background(), w.publisher, frame,
				logging.EntityRef{ID: group.OwnerID, Kind: logging.EntityKindClient},
				gameplaylog.CellSplitPayload{
					ParentID: uint64(cell.ID),
					ChildID:  uint64(child.ID),
					Radius:   fixed.ToFloat(newRadius),
				}, nil)
		}
	}
}
