package sim

import (
	"testing"

	"github.com/modu-apps/cell-eater/internal/fixed"
)

func TestSpawnFoodConsumesThreeDraws(t *testing.T) {
	// Two rooms with the same seed must draw identically; if spawnFood ever
	// consumed a different number of draws the streams would shear apart.
	a := newTestWorld(t, "draws")
	b := newTestWorld(t, "draws")

	a.spawnFood()
	b.spawnFood()

	aHi, aLo := a.rng.State()
	bHi, bLo := b.rng.State()
	if aHi != bHi || aLo != bLo {
		t.Fatalf("rng streams diverged after one spawnFood each")
	}

	pellet := a.spawnFood()
	if pellet.Pos.X < foodRadius || pellet.Pos.X > worldExtent-foodRadius {
		t.Fatalf("pellet X outside arena margin: %v", fixed.ToFloat(pellet.Pos.X))
	}
	if pellet.Pos.Y < foodRadius || pellet.Pos.Y > worldExtent-foodRadius {
		t.Fatalf("pellet Y outside arena margin: %v", fixed.ToFloat(pellet.Pos.Y))
	}
	if int(pellet.Color) >= colorCount {
		t.Fatalf("pellet color %d outside palette", pellet.Color)
	}
	if pellet.Radius != foodRadius {
		t.Fatalf("pellet radius %v, want %v", pellet.Radius, foodRadius)
	}
}

func TestSpawnCellSkipsSuppliedDraws(t *testing.T) {
	a := newTestWorld(t, "draws")
	b := newTestWorld(t, "draws")

	// Fully specified spawn: no draws at all.
	a.spawnCell("alice", cellOptions{
		hasColor: true, color: 2,
		hasPos: true, pos: fixed.Vec{X: fixed.FromInt(100), Y: fixed.FromInt(100)},
	})
	aHi, aLo := a.rng.State()
	bHi, bLo := b.rng.State()
	if aHi != bHi || aLo != bLo {
		t.Fatalf("fully specified spawnCell consumed PRNG draws")
	}

	// Randomized spawn on both: streams stay aligned afterward.
	ca := a.spawnCell("alice", cellOptions{})
	cb := b.spawnCell("alice", cellOptions{})
	aHi, aLo = a.rng.State()
	bHi, bLo = b.rng.State()
	if aHi != bHi || aLo != bLo {
		t.Fatalf("randomized spawnCell draw counts differ")
	}
	if ca.Pos != cb.Pos || ca.Color != cb.Color {
		t.Fatalf("same-seed spawns differ: %+v vs %+v", ca, cb)
	}
	if ca.Radius != defaultCellRadius {
		t.Fatalf("default radius not applied: %v", ca.Radius)
	}
}

func TestRoomStartBulkFood(t *testing.T) {
	w := New(Config{Seed: "bulk", InitialFood: 30}, Deps{})
	if w.store.FoodCount() != 30 {
		t.Fatalf("expected 30 pellets at room start, got %d", w.store.FoodCount())
	}
}

func TestSeedSensitivity(t *testing.T) {
	a := New(Config{Seed: "seed-a", InitialFood: 10}, Deps{})
	b := New(Config{Seed: "seed-b", InitialFood: 10}, Deps{})
	if a.StateHash() == b.StateHash() {
		t.Fatalf("different seeds produced identical spawn state")
	}
}
