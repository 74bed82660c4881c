package sim

import (
	"context"
	"sort"

	"github.com/modu-apps/cell-eater/internal/fixed"
	"github.com/modu-apps/cell-eater/internal/store"
	"github.com/modu-apps/cell-eater/logging"
	gameplaylog "github.com/modu-apps/cell-eater/logging/gameplay"
)

// resolveMerges recombines sibling cells whose merge cooldown has elapsed.
// Mass combines by area: the surviving cell's radius becomes
// min(sqrt(rA² + rB²), maxRadius).
func (w *World) resolveMerges(groups []OwnerGroup) {
	frame := w.store.Frame()

	for _, group := range groups {
		if len(group.Cells) < 2 {
			continue
		}

		// Local ordering for the merge pass only: largest first so mass
		// flows into the bigger cell, entity ID as the deterministic
		// tie-break. This does not feed back into the canonical order.
		ordered := make([]*store.Cell, len(group.Cells))
		copy(ordered, group.Cells)
		sort.Slice(ordered, func(i, j int) bool {
			if ordered[i].Radius != ordered[j].Radius {
				return ordered[i].Radius > ordered[j].Radius
			}
			return ordered[i].ID < ordered[j].ID
		})

		for i := 0; i < len(ordered); i++ {
			keeper := ordered[i]
			if _, ok := w.store.Cell(keeper.ID); !ok {
				continue
			}
			if frame < keeper.MergeableAt {
				continue
			}
			for j := i + 1; j < len(ordered); j++ {
				other := ordered[j]
				// Destruction happens mid-loop; later pairs must observe it.
				if _, ok := w.store.Cell(other.ID); !ok {
					continue
				}
				if frame < other.MergeableAt {
					continue
				}

				dist := keeper.Pos.Sub(other.Pos).Len()
				threshold := (keeper.Radius + other.Radius) >> 1
				if dist >= threshold {
					continue
				}

				areaSum := fixed.Mul(keeper.Radius, keeper.Radius) + fixed.Mul(other.Radius, other.Radius)
				keeper.Radius = fixed.Min(fixed.Sqrt(areaSum), maxRadius)
				w.store.DestroyCell(other.ID)

				gameplaylog.CellsMerged(context.Background(), w.publisher, frame,
					logging.EntityRef{ID: group.OwnerID, Kind: logging.EntityKindClient},
					gameplaylog.CellsMergedPayload{
						KeeperID: uint64(keeper.ID),
						GoneID:   uint64(other.ID),
						Radius:   fixed.ToFloat(keeper.Radius),
					}, nil)
			}
		}
	}
}
