package sim

import (
	"github.com/modu-apps/cell-eater/internal/fixed"
	"github.com/modu-apps/cell-eater/internal/store"
)

// resolveMovement drives every cell toward its owner's target, applies the
// repulsion pushes, integrates one frame of displacement, and clamps the
// result into the arena.
func (w *World) resolveMovement(groups []OwnerGroup, pushes map[store.ID]fixed.Vec) {
	frame := w.store.Frame()

	for _, group := range groups {
		input, hasInput := w.store.Input(group.Owner)

		for _, cell := range group.Cells {
			if _, ok := w.store.Cell(cell.ID); !ok {
				continue
			}

			// A freshly split cell keeps its launch velocity; steering
			// would cancel the impulse before it is visible.
			locked := cell.HasSplitLock && frame-cell.SplitLockedAt <= splitControlDelay

			if !locked {
				cell.Vel = fixed.Vec{}
				if hasInput && input.HasTarget {
					toTarget := input.Target.Sub(cell.Pos)
					unit, dist := toTarget.Norm()
					stop := fixed.Div(cell.Radius, stopThresholdDiv)
					if dist > stop {
						cell.Vel = unit.Scale(speed)
					}
				}
			}

			cell.Vel = cell.Vel.Add(pushes[cell.ID])

			cell.Pos = cell.Pos.Add(cell.Vel)
			cell.Pos.X = fixed.Clamp(cell.Pos.X, cell.Radius, worldExtent-cell.Radius)
			cell.Pos.Y = fixed.Clamp(cell.Pos.Y, cell.Radius, worldExtent-cell.Radius)
		}
	}
}
