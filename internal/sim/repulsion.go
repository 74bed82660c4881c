package sim

import (
	"github.com/modu-apps/cell-eater/internal/fixed"
	"github.com/modu-apps/cell-eater/internal/store"
)

// computeRepulsion produces a per-cell push vector separating overlapping
// sibling cells. Cells without overlapping siblings are absent from the map,
// which reads as a zero push.
//
// The pair order is the nested i<j loop over the group's pre-sorted cell
// list. Fixed-point addition is not associative, so when one cell overlaps
// several siblings the accumulation order is part of the observable state
// and must not be re-derived differently elsewhere.
func computeRepulsion(groups []OwnerGroup) map[store.ID]fixed.Vec {
	pushes := make(map[store.ID]fixed.Vec)

	for _, group := range groups {
		if len(group.Cells) < 2 {
			continue
		}
		for i := 0; i < len(group.Cells); i++ {
			for j := i + 1; j < len(group.Cells); j++ {
				a := group.Cells[i]
				b := group.Cells[j]

				delta := a.Pos.Sub(b.Pos)
				distSq := delta.LenSq()
				minDist := a.Radius + b.Radius
				minDistSq := fixed.Mul(minDist, minDist)

				if distSq >= minDistSq || distSq <= minSeparationSq {
					continue
				}

				dist := fixed.Sqrt(distSq)
				if dist == 0 {
					continue
				}
				overlap := minDist - dist
				force := fixed.Mul(overlap, repulsionFactor) + repulsionBase
				normal := fixed.Vec{X: fixed.Div(delta.X, dist), Y: fixed.Div(delta.Y, dist)}
				push := normal.Scale(force)

				pushes[a.ID] = pushes[a.ID].Add(push)
				pushes[b.ID] = pushes[b.ID].Sub(push)
			}
		}
	}
	return pushes
}
