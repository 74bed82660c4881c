package sim

import (
	"testing"

	"github.com/modu-apps/cell-eater/internal/fixed"
	"github.com/modu-apps/cell-eater/internal/store"
)

func newTestWorld(t *testing.T, seed string) *World {
	t.Helper()
	return New(Config{Seed: seed, InitialFood: -1}, Deps{})
}

func TestGroupByOwnerOrdering(t *testing.T) {
	w := newTestWorld(t, "grouping")

	// Interleave spawns so map iteration order cannot accidentally match.
	b1 := w.spawnCell("bob", cellOptions{})
	a1 := w.spawnCell("alice", cellOptions{})
	b2 := w.spawnCell("bob", cellOptions{})
	a2 := w.spawnCell("alice", cellOptions{})

	groups := groupByOwner(w.store)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].OwnerID != "alice" || groups[1].OwnerID != "bob" {
		t.Fatalf("groups not sorted by owner string: %s, %s", groups[0].OwnerID, groups[1].OwnerID)
	}
	if groups[0].Cells[0].ID != a1.ID || groups[0].Cells[1].ID != a2.ID {
		t.Fatalf("alice cells not in ID order")
	}
	if groups[1].Cells[0].ID != b1.ID || groups[1].Cells[1].ID != b2.ID {
		t.Fatalf("bob cells not in ID order")
	}
}

func TestGroupOrderIndependentOfInternOrder(t *testing.T) {
	// Two processes intern clients in opposite join order; the group
	// traversal order must come out the same.
	first := newTestWorld(t, "intern")
	first.store.Intern("zoe")
	first.store.Intern("ann")
	first.spawnCell("zoe", cellOptions{})
	first.spawnCell("ann", cellOptions{})

	second := newTestWorld(t, "intern")
	second.store.Intern("ann")
	second.store.Intern("zoe")
	second.spawnCell("zoe", cellOptions{})
	second.spawnCell("ann", cellOptions{})

	a := groupByOwner(first.store)
	b := groupByOwner(second.store)
	if len(a) != 2 || len(b) != 2 {
		t.Fatalf("expected 2 groups each, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i].OwnerID != b[i].OwnerID {
			t.Fatalf("group %d order differs: %s vs %s", i, a[i].OwnerID, b[i].OwnerID)
		}
	}
}

func TestGroupByOwnerSkipsDestroyed(t *testing.T) {
	w := newTestWorld(t, "grouping")
	kept := w.spawnCell("alice", cellOptions{})
	gone := w.spawnCell("alice", cellOptions{})
	w.store.DestroyCell(gone.ID)

	groups := groupByOwner(w.store)
	if len(groups) != 1 || len(groups[0].Cells) != 1 {
		t.Fatalf("expected a single group with one cell, got %+v", groups)
	}
	if groups[0].Cells[0].ID != kept.ID {
		t.Fatalf("wrong survivor in group")
	}
}

// cellAt spawns a cell at integer coordinates; shared by the solver tests.
func cellAt(w *World, owner string, x, y, radius int) *store.Cell {
	return w.spawnCell(owner, cellOptions{
		hasPos: true,
		pos:    fixed.Vec{X: fixed.FromInt(x), Y: fixed.FromInt(y)},
		radius: fixed.FromInt(radius),
	})
}
