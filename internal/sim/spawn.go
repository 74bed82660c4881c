package sim

import (
	"github.com/modu-apps/cell-eater/internal/fixed"
	"github.com/modu-apps/cell-eater/internal/store"
)

// cellOptions overrides the randomized parts of a cell spawn. Fields left at
// their zero value are drawn from the room PRNG or defaulted.
type cellOptions struct {
	hasColor bool
	color    uint8

	hasPos bool
	pos    fixed.Vec

	radius int64
	vel    fixed.Vec

	mergeableAt   uint64
	splitLock     bool
	splitLockedAt uint64
}

// spawnFood creates one pellet. Every call consumes exactly three PRNG draws
// in a fixed order (color, x, y); replicas count draws, so the order and the
// count are contract, not implementation detail.
func (w *World) spawnFood() *store.Food {
	color := uint8(w.rng.Intn(colorCount))
	x := w.rng.Range(foodRadius, worldExtent-foodRadius)
	y := w.rng.Range(foodRadius, worldExtent-foodRadius)
	return w.store.SpawnFood(store.Food{
		Color:  color,
		Pos:    fixed.Vec{X: x, Y: y},
		Radius: foodRadius,
	})
}

// spawnCell creates one cell for the named client. Draw order matches
// spawnFood: color first, then position, with draws skipped entirely for
// values the options supply.
func (w *World) spawnCell(owner string, opts cellOptions) *store.Cell {
	color := opts.color
	if !opts.hasColor {
		color = uint8(w.rng.Intn(colorCount))
	}
	radius := opts.radius
	if radius == 0 {
		radius = defaultCellRadius
	}
	pos := opts.pos
	if !opts.hasPos {
		pos.X = w.rng.Range(radius, worldExtent-radius)
		pos.Y = w.rng.Range(radius, worldExtent-radius)
	}

	return w.store.SpawnCell(store.Cell{
		Owner:         w.store.Intern(owner),
		Color:         color,
		Pos:           pos,
		Vel:           opts.vel,
		Radius:        radius,
		MergeableAt:   opts.mergeableAt,
		SplitLockedAt: opts.splitLockedAt,
		HasSplitLock:  opts.splitLock,
	})
}
