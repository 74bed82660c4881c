package sim

import (
	"github.com/modu-apps/cell-eater/internal/fixed"
	"github.com/modu-apps/cell-eater/internal/store"
)

// resolveContacts enumerates overlapping pairs and dispatches the eat
// reactions. Enumeration is brute force over the ID-sorted entity lists.
// Food contacts run first, then cell pairs, both ascending by entity ID;
// that is the canonical contact order replicas agree on.
func (w *World) resolveContacts() {
	cellIDs := w.store.CellIDs()
	foodIDs := w.store.FoodIDs()

	for _, cellID := range cellIDs {
		cell, ok := w.store.Cell(cellID)
		if !ok {
			continue
		}
		for _, foodID := range foodIDs {
			pellet, ok := w.store.Food(foodID)
			if !ok {
				continue
			}
			if !circlesOverlap(cell.Pos, cell.Radius, pellet.Pos, pellet.Radius) {
				continue
			}
			w.handleCellFood(cellID, foodID)
		}
	}

	for i := 0; i < len(cellIDs); i++ {
		a, ok := w.store.Cell(cellIDs[i])
		if !ok {
			continue
		}
		for j := i + 1; j < len(cellIDs); j++ {
			b, ok := w.store.Cell(cellIDs[j])
			if !ok {
				continue
			}
			if !circlesOverlap(a.Pos, a.Radius, b.Pos, b.Radius) {
				continue
			}
			w.handleCellCell(cellIDs[i], cellIDs[j])
			// The first cell may have been eaten; stop pairing it.
			if _, ok := w.store.Cell(cellIDs[i]); !ok {
				break
			}
		}
	}
}

func circlesOverlap(aPos fixed.Vec, aRadius int64, bPos fixed.Vec, bRadius int64) bool {
	sum := aRadius + bRadius
	return aPos.Sub(bPos).LenSq() < fixed.Mul(sum, sum)
}

// handleCellFood reacts to a cell↔food contact: the cell grows by a fraction
// of the pellet radius and the pellet dies. A pellet consumed earlier in the
// same frame no-ops through the failed lookup.
func (w *World) handleCellFood(cellID, foodID store.ID) {
	pellet, ok := w.store.Food(foodID)
	if !ok {
		return
	}
	cell, ok := w.store.Cell(cellID)
	if !ok {
		return
	}
	cell.Radius = fixed.Min(cell.Radius+fixed.Mul(pellet.Radius, foodGrow), maxRadius)
	w.store.DestroyFood(foodID)
}

// handleCellCell reacts to a cell↔cell contact. Siblings never eat each
// other. Between enemies, the cell whose radius exceeds the other's by the
// eat ratio wins; if neither clears the ratio both survive and repulsion or
// plain overlap carries them through the frame.
func (w *World) handleCellCell(aID, bID store.ID) {
	a, okA := w.store.Cell(aID)
	b, okB := w.store.Cell(bID)
	if !okA || !okB {
		return
	}
	if a.Owner == b.Owner {
		return
	}

	var eater, prey *store.Cell
	switch {
	case a.Radius > fixed.Mul(b.Radius, eatRatio):
		eater, prey = a, b
	case b.Radius > fixed.Mul(a.Radius, eatRatio):
		eater, prey = b, a
	default:
		return
	}

	eater.Radius = fixed.Min(eater.Radius+fixed.Mul(prey.Radius, playerGrow), maxRadius)
	w.store.DestroyCell(prey.ID)
	w.publishEaten(eater, prey)
}
