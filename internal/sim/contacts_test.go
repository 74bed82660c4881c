package sim

import (
	"math"
	"testing"

	"github.com/modu-apps/cell-eater/internal/fixed"
	"github.com/modu-apps/cell-eater/internal/store"
)

func foodAt(w *World, x, y int) *store.Food {
	return w.store.SpawnFood(store.Food{
		Pos:    fixed.Vec{X: fixed.FromInt(x), Y: fixed.FromInt(y)},
		Radius: foodRadius,
	})
}

func TestEatRatioLaw(t *testing.T) {
	cases := []struct {
		a, b  int
		eaten bool
	}{
		{30, 20, true},  // 30 > 20*1.1
		{23, 20, true},  // 23 > 22
		{22, 20, false}, // not strictly greater
		{21, 20, false},
		{20, 20, false},
	}
	for _, tc := range cases {
		w := newTestWorld(t, "eat")
		big := cellAt(w, "alice", 300, 300, tc.a)
		small := cellAt(w, "bob", 305, 300, tc.b)

		w.resolveContacts()

		_, bigAlive := w.store.Cell(big.ID)
		_, smallAlive := w.store.Cell(small.ID)
		if !bigAlive {
			t.Fatalf("a=%d b=%d: larger cell should always survive", tc.a, tc.b)
		}
		if smallAlive == tc.eaten {
			t.Fatalf("a=%d b=%d: eaten=%v, want %v", tc.a, tc.b, !smallAlive, tc.eaten)
		}
		if tc.eaten {
			eater, _ := w.store.Cell(big.ID)
			want := float64(tc.a) + float64(tc.b)*0.25
			if math.Abs(fixed.ToFloat(eater.Radius)-want) > 0.01 {
				t.Fatalf("a=%d b=%d: eater radius %v, want %v", tc.a, tc.b, fixed.ToFloat(eater.Radius), want)
			}
		}
	}
}

func TestEatRatioSymmetric(t *testing.T) {
	// The smaller cell eats when it is the one clearing the ratio,
	// regardless of pair enumeration order.
	w := newTestWorld(t, "eat")
	small := cellAt(w, "alice", 300, 300, 20)
	big := cellAt(w, "bob", 305, 300, 30)

	w.resolveContacts()

	if _, ok := w.store.Cell(small.ID); ok {
		t.Fatalf("prey survived")
	}
	eater, ok := w.store.Cell(big.ID)
	if !ok {
		t.Fatalf("eater destroyed")
	}
	if eater.Radius <= fixed.FromInt(30) {
		t.Fatalf("eater did not grow")
	}
}

func TestSameOwnerContactsNeverEat(t *testing.T) {
	w := newTestWorld(t, "eat")
	cellAt(w, "alice", 300, 300, 40)
	cellAt(w, "alice", 305, 300, 16)

	w.resolveContacts()

	if w.store.CellCount() != 2 {
		t.Fatalf("sibling cells must not eat each other")
	}
}

func TestCellEatsFood(t *testing.T) {
	w := newTestWorld(t, "food")
	cell := cellAt(w, "alice", 300, 300, 20)
	pellet := foodAt(w, 305, 300)

	w.resolveContacts()

	if _, ok := w.store.Food(pellet.ID); ok {
		t.Fatalf("pellet should be consumed")
	}
	grown, _ := w.store.Cell(cell.ID)
	want := 20 + 5*0.2
	if math.Abs(fixed.ToFloat(grown.Radius)-want) > 0.01 {
		t.Fatalf("radius after food %v, want %v", fixed.ToFloat(grown.Radius), want)
	}
}

func TestFoodConsumedOncePerFrame(t *testing.T) {
	w := newTestWorld(t, "food")
	first := cellAt(w, "alice", 300, 300, 20)
	second := cellAt(w, "bob", 310, 300, 20)
	foodAt(w, 305, 300)

	w.resolveContacts()

	a, _ := w.store.Cell(first.ID)
	b, _ := w.store.Cell(second.ID)
	// Canonical contact order: the lower-ID cell wins the pellet, the
	// other's contact no-ops against the destroyed entity.
	if a.Radius == fixed.FromInt(20) {
		t.Fatalf("first cell should have consumed the pellet")
	}
	if b.Radius != fixed.FromInt(20) {
		t.Fatalf("second cell grew from an already-consumed pellet")
	}
	if w.store.FoodCount() != 0 {
		t.Fatalf("pellet should be gone")
	}
}

func TestGrowthClampsAtMaxRadius(t *testing.T) {
	w := newTestWorld(t, "clamp")
	big := cellAt(w, "alice", 300, 300, 199)
	cellAt(w, "bob", 305, 300, 100)

	w.resolveContacts()

	eater, _ := w.store.Cell(big.ID)
	if eater.Radius != maxRadius {
		t.Fatalf("growth should clamp at max radius, got %v", fixed.ToFloat(eater.Radius))
	}
}

func TestEatRemovesPreyBookkeeping(t *testing.T) {
	w := newTestWorld(t, "eat")
	cellAt(w, "alice", 300, 300, 40)
	prey := w.spawnCell("bob", cellOptions{
		hasPos: true, pos: fixed.Vec{X: fixed.FromInt(305), Y: fixed.FromInt(300)},
		radius: fixed.FromInt(16), mergeableAt: 1 << 20, splitLock: true,
	})

	w.resolveContacts()

	if _, ok := w.store.Cell(prey.ID); ok {
		t.Fatalf("prey should be destroyed")
	}
	// The cooldown fields live on the destroyed cell; no side table can
	// retain a stale entry for its identifier.
	cp := w.store.Checkpoint()
	for _, rec := range cp.Cells {
		if rec.ID == uint64(prey.ID) {
			t.Fatalf("destroyed cell leaked into the checkpoint")
		}
	}
}
