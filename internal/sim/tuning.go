package sim

import "github.com/modu-apps/cell-eater/internal/fixed"

const (
	worldSize         = 2000
	colorCount        = 8
	maxCellsPerPlayer = 8

	// mergeDelayFrames is how long a freshly split pair stays apart before
	// it may recombine.
	mergeDelayFrames = 450
	// splitControlDelay is the window, in frames, during which movement
	// leaves a split cell's velocity to the launch impulse.
	splitControlDelay = 12

	defaultInitialFood = 120
)

var (
	worldExtent = fixed.FromInt(worldSize)

	// speed is a per-frame displacement, not a rate; integration adds it
	// once per frame without a timestep multiply.
	speed = fixed.FromInt(5)

	foodRadius        = fixed.FromInt(5)
	defaultCellRadius = fixed.FromInt(20)
	minSplitRadius    = fixed.FromInt(16)
	maxRadius         = fixed.FromInt(200)

	repulsionFactor = fixed.FromFloat(0.2)
	repulsionBase   = fixed.FromFloat(0.5)

	eatRatio   = fixed.FromFloat(1.1)
	foodGrow   = fixed.FromFloat(0.2)
	playerGrow = fixed.FromFloat(0.25)

	foodSpawnChance = fixed.FromFloat(0.02)

	splitImpulse = fixed.FromInt(12)

	// stopThresholdDiv sets the dead zone as a fraction of the cell's own
	// radius: closer than radius/4 to the target means stop.
	stopThresholdDiv = fixed.FromInt(4)

	// minSeparationSq guards exact coincidence before dividing by distance.
	minSeparationSq = fixed.FromFloat(0.0001)

	sqrt2 = fixed.Sqrt(fixed.FromInt(2))
)
