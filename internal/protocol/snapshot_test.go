package protocol

import (
	"testing"

	"github.com/modu-apps/cell-eater/internal/fixed"
	"github.com/modu-apps/cell-eater/internal/store"
)

func TestSnapshotOrdersByID(t *testing.T) {
	s := store.New()
	alice := s.Intern("alice")
	bob := s.Intern("bob")

	s.SpawnCell(store.Cell{Owner: bob, Pos: fixed.Vec{X: fixed.FromInt(10)}, Radius: fixed.FromInt(20)})
	s.SpawnFood(store.Food{Pos: fixed.Vec{X: fixed.FromInt(30)}, Radius: fixed.FromInt(5)})
	s.SpawnCell(store.Cell{Owner: alice, Pos: fixed.Vec{X: fixed.FromInt(50)}, Radius: fixed.FromInt(20)})

	cells, food := Snapshot(s)
	if len(cells) != 2 || len(food) != 1 {
		t.Fatalf("snapshot sizes: %d cells, %d food", len(cells), len(food))
	}
	if cells[0].ID >= cells[1].ID {
		t.Fatalf("cells out of ID order: %d, %d", cells[0].ID, cells[1].ID)
	}
	if cells[0].Owner != "bob" || cells[1].Owner != "alice" {
		t.Fatalf("owner strings not resolved: %+v", cells)
	}
}

func TestSnapshotConvertsFixedPoint(t *testing.T) {
	s := store.New()
	owner := s.Intern("alice")
	s.SpawnCell(store.Cell{
		Owner:  owner,
		Pos:    fixed.Vec{X: fixed.FromFloat(12.5), Y: fixed.FromFloat(640.25)},
		Radius: fixed.FromInt(20),
	})

	cells, _ := Snapshot(s)
	if cells[0].X != 12.5 || cells[0].Y != 640.25 {
		t.Fatalf("position %v,%v, want 12.5,640.25", cells[0].X, cells[0].Y)
	}
	if cells[0].Radius != 20 {
		t.Fatalf("radius %v, want 20", cells[0].Radius)
	}
}
