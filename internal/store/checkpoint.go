package store

import (
	"sort"

	"github.com/modu-apps/cell-eater/internal/fixed"
)

// Checkpoint is a full copy of the entity state in a process-independent
// form: owners appear as their canonical strings, never as interned tokens,
// and every slice is sorted, so encoding a checkpoint yields identical bytes
// on every host that holds identical state.
type Checkpoint struct {
	Frame  uint64        `msgpack:"frame" json:"frame"`
	NextID uint64        `msgpack:"nextId" json:"nextId"`
	Cells  []CellRecord  `msgpack:"cells" json:"cells"`
	Food   []FoodRecord  `msgpack:"food" json:"food"`
	Inputs []InputRecord `msgpack:"inputs" json:"inputs"`
}

// CellRecord is the checkpoint form of a cell.
type CellRecord struct {
	ID            uint64 `msgpack:"id" json:"id"`
	Owner         string `msgpack:"owner" json:"owner"`
	Color         uint8  `msgpack:"color" json:"color"`
	X             int64  `msgpack:"x" json:"x"`
	Y             int64  `msgpack:"y" json:"y"`
	VX            int64  `msgpack:"vx" json:"vx"`
	VY            int64  `msgpack:"vy" json:"vy"`
	Radius        int64  `msgpack:"radius" json:"radius"`
	MergeableAt   uint64 `msgpack:"mergeableAt" json:"mergeableAt"`
	SplitLockedAt uint64 `msgpack:"splitLockedAt" json:"splitLockedAt"`
	HasSplitLock  bool   `msgpack:"hasSplitLock" json:"hasSplitLock"`
}

// FoodRecord is the checkpoint form of a pellet.
type FoodRecord struct {
	ID     uint64 `msgpack:"id" json:"id"`
	Color  uint8  `msgpack:"color" json:"color"`
	X      int64  `msgpack:"x" json:"x"`
	Y      int64  `msgpack:"y" json:"y"`
	Radius int64  `msgpack:"radius" json:"radius"`
}

// InputRecord is the checkpoint form of a client's last-set input.
type InputRecord struct {
	Owner     string `msgpack:"owner" json:"owner"`
	TargetX   int64  `msgpack:"targetX" json:"targetX"`
	TargetY   int64  `msgpack:"targetY" json:"targetY"`
	HasTarget bool   `msgpack:"hasTarget" json:"hasTarget"`
	Split     bool   `msgpack:"split" json:"split"`
}

// Checkpoint copies the full entity state.
func (s *Store) Checkpoint() Checkpoint {
	cp := Checkpoint{
		Frame:  s.frame,
		NextID: uint64(s.nextID),
		Cells:  make([]CellRecord, 0, len(s.cells)),
		Food:   make([]FoodRecord, 0, len(s.food)),
		Inputs: make([]InputRecord, 0, len(s.inputs)),
	}
	for _, id := range s.CellIDs() {
		cell := s.cells[id]
		cp.Cells = append(cp.Cells, CellRecord{
			ID:            uint64(cell.ID),
			Owner:         s.OwnerString(cell.Owner),
			Color:         cell.Color,
			X:             cell.Pos.X,
			Y:             cell.Pos.Y,
			VX:            cell.Vel.X,
			VY:            cell.Vel.Y,
			Radius:        cell.Radius,
			MergeableAt:   cell.MergeableAt,
			SplitLockedAt: cell.SplitLockedAt,
			HasSplitLock:  cell.HasSplitLock,
		})
	}
	for _, id := range s.FoodIDs() {
		pellet := s.food[id]
		cp.Food = append(cp.Food, FoodRecord{
			ID:     uint64(pellet.ID),
			Color:  pellet.Color,
			X:      pellet.Pos.X,
			Y:      pellet.Pos.Y,
			Radius: pellet.Radius,
		})
	}
	for token, input := range s.inputs {
		cp.Inputs = append(cp.Inputs, InputRecord{
			Owner:     s.OwnerString(token),
			TargetX:   input.Target.X,
			TargetY:   input.Target.Y,
			HasTarget: input.HasTarget,
			Split:     input.Split,
		})
	}
	sort.Slice(cp.Inputs, func(i, j int) bool { return cp.Inputs[i].Owner < cp.Inputs[j].Owner })
	return cp
}

// Restore replaces the entity state with a checkpoint. Owner strings are
// re-interned, so a checkpoint taken on one process restores correctly on
// another that interned clients in a different order.
func (s *Store) Restore(cp Checkpoint) {
	s.frame = cp.Frame
	s.nextID = ID(cp.NextID)
	s.cells = make(map[ID]*Cell, len(cp.Cells))
	s.food = make(map[ID]*Food, len(cp.Food))
	s.inputs = make(map[OwnerToken]Input, len(cp.Inputs))

	for _, rec := range cp.Cells {
		cell := &Cell{
			ID:            ID(rec.ID),
			Owner:         s.Intern(rec.Owner),
			Color:         rec.Color,
			Pos:           fixed.Vec{X: rec.X, Y: rec.Y},
			Vel:           fixed.Vec{X: rec.VX, Y: rec.VY},
			Radius:        rec.Radius,
			MergeableAt:   rec.MergeableAt,
			SplitLockedAt: rec.SplitLockedAt,
			HasSplitLock:  rec.HasSplitLock,
		}
		s.cells[cell.ID] = cell
	}
	for _, rec := range cp.Food {
		pellet := &Food{
			ID:     ID(rec.ID),
			Color:  rec.Color,
			Pos:    fixed.Vec{X: rec.X, Y: rec.Y},
			Radius: rec.Radius,
		}
		s.food[pellet.ID] = pellet
	}
	for _, rec := range cp.Inputs {
		s.inputs[s.Intern(rec.Owner)] = Input{
			Target:    fixed.Vec{X: rec.TargetX, Y: rec.TargetY},
			HasTarget: rec.HasTarget,
			Split:     rec.Split,
		}
	}
}
