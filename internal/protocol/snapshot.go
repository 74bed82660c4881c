package protocol

import (
	"github.com/modu-apps/cell-eater/internal/fixed"
	"github.com/modu-apps/cell-eater/internal/store"
)

// Snapshot projects the store's live entities into wire types, in canonical
// ID order so every broadcast lists entities identically.
func Snapshot(s *store.Store) ([]Cell, []Food) {
	cellIDs := s.CellIDs()
	cells := make([]Cell, 0, len(cellIDs))
	for _, id := range cellIDs {
		cell, ok := s.Cell(id)
		if !ok {
			continue
		}
		cells = append(cells, Cell{
			ID:     uint64(cell.ID),
			Owner:  s.OwnerString(cell.Owner),
			Color:  cell.Color,
			X:      fixed.ToFloat(cell.Pos.X),
			Y:      fixed.ToFloat(cell.Pos.Y),
			Radius: fixed.ToFloat(cell.Radius),
		})
	}

	foodIDs := s.FoodIDs()
	food := make([]Food, 0, len(foodIDs))
	for _, id := range foodIDs {
		pellet, ok := s.Food(id)
		if !ok {
			continue
		}
		food = append(food, Food{
			ID:     uint64(pellet.ID),
			Color:  pellet.Color,
			X:      fixed.ToFloat(pellet.Pos.X),
			Y:      fixed.ToFloat(pellet.Pos.Y),
			Radius: fixed.ToFloat(pellet.Radius),
		})
	}
	return cells, food
}
