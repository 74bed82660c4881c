package sim

import (
	"context"
	"strings"

	"github.com/modu-apps/cell-eater/internal/fixed"
	"github.com/modu-apps/cell-eater/internal/store"
	"github.com/modu-apps/cell-eater/logging"
	gameplaylog "github.com/modu-apps/cell-eater/logging/gameplay"
	lifecyclelog "github.com/modu-apps/cell-eater/logging/lifecycle"
)

const defaultSeed = "prototype"

// Config captures the knobs used when creating a room.
type Config struct {
	Seed        string `json:"seed"`
	InitialFood int    `json:"initialFood"`
	// FoodDrip enables the per-frame probabilistic pellet spawn.
	FoodDrip bool `json:"foodDrip"`
}

// normalized returns a config with defaults applied. A negative InitialFood
// means an empty arena; zero means the default field.
func (cfg Config) normalized() Config {
	normalized := cfg
	normalized.Seed = strings.TrimSpace(normalized.Seed)
	if normalized.Seed == "" {
		normalized.Seed = defaultSeed
	}
	if normalized.InitialFood == 0 {
		normalized.InitialFood = defaultInitialFood
	} else if normalized.InitialFood < 0 {
		normalized.InitialFood = 0
	}
	return normalized
}

// DefaultConfig returns the room configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{Seed: defaultSeed, InitialFood: defaultInitialFood, FoodDrip: true}
}

// Deps bundles the runtime collaborators a world needs.
type Deps struct {
	Publisher logging.Publisher
}

// FrameInput is everything that happened to a frame from the outside:
// clients joining and leaving, and per-client input updates. Replaying the
// same sequence of FrameInputs from the same checkpoint reproduces the same
// state bit for bit.
type FrameInput struct {
	Joins  []string            `msgpack:"joins" json:"joins,omitempty"`
	Leaves []string            `msgpack:"leaves" json:"leaves,omitempty"`
	Inputs []store.InputRecord `msgpack:"inputs" json:"inputs,omitempty"`
}

func (fi FrameInput) empty() bool {
	return len(fi.Joins) == 0 && len(fi.Leaves) == 0 && len(fi.Inputs) == 0
}

// World owns the authoritative simulation state for one room.
type World struct {
	config    Config
	store     *store.Store
	rng       *fixed.Rand
	publisher logging.Publisher
	journal   *Journal

	pending FrameInput
}

// New constructs a room world, spawning the initial food field.
func New(cfg Config, deps Deps) *World {
	normalized := cfg.normalized()

	publisher := deps.Publisher
	if publisher == nil {
		publisher = logging.NopPublisher()
	}

	w := &World{
		config:    normalized,
		store:     store.New(),
		rng:       fixed.NewRand(normalized.Seed, "room"),
		publisher: publisher,
		journal:   NewJournal(defaultJournalCapacity),
	}

	for i := 0; i < normalized.InitialFood; i++ {
		w.spawnFood()
	}
	w.journal.RecordKeyframe(0, w.encodeCheckpoint())
	return w
}

// Config returns the normalized room configuration.
func (w *World) Config() Config { return w.config }

// Frame returns the current simulation frame.
func (w *World) Frame() uint64 { return w.store.Frame() }

// Store exposes the entity store for read-side consumers (broadcast, tests).
func (w *World) Store() *store.Store { return w.store }

// WorldSize returns the arena edge length in world units.
func (w *World) WorldSize() float64 { return worldSize }

// JournalWindow reports the frame range the journal can roll back to.
func (w *World) JournalWindow() (oldest, newest uint64, frames int) {
	return w.journal.Window()
}

// StageJoin queues a client join for the next frame.
func (w *World) StageJoin(client string) {
	w.pending.Joins = append(w.pending.Joins, client)
}

// StageLeave queues a client departure for the next frame.
func (w *World) StageLeave(client string) {
	w.pending.Leaves = append(w.pending.Leaves, client)
}

// StageInput queues a client's input for the next frame. The target arrives
// already quantized to fixed point; the quantized value is what the journal
// records and what every replica simulates against.
func (w *World) StageInput(client string, target fixed.Vec, hasTarget, split bool) {
	w.pending.Inputs = append(w.pending.Inputs, store.InputRecord{
		Owner:     client,
		TargetX:   target.X,
		TargetY:   target.Y,
		HasTarget: hasTarget,
		Split:     split,
	})
}

// Step consumes the staged external events and advances the simulation one
// frame. It records the frame's inputs and resulting keyframe in the journal
// so resimulation can start from any retained frame.
func (w *World) Step() {
	frameInput := w.pending
	w.pending = FrameInput{}

	w.step(frameInput)

	frame := w.store.Frame()
	w.journal.RecordInputs(frame, frameInput)
	w.journal.RecordKeyframe(frame, w.encodeCheckpoint())
}

// step is the deterministic frame body shared by live stepping and replay.
func (w *World) step(frameInput FrameInput) {
	for _, client := range frameInput.Joins {
		w.admitClient(client)
	}
	for _, client := range frameInput.Leaves {
		w.expelClient(client)
	}
	for _, rec := range frameInput.Inputs {
		token := w.store.Intern(rec.Owner)
		prev, _ := w.store.Input(token)
		w.store.SetInput(token, store.Input{
			Target:    fixed.Vec{X: rec.TargetX, Y: rec.TargetY},
			HasTarget: rec.HasTarget,
			// Split latches until the split pass consumes it.
			Split: rec.Split || prev.Split,
		})
	}

	w.store.AdvanceFrame()

	groups := groupByOwner(w.store)
	pushes := computeRepulsion(groups)
	w.resolveMovement(groups, pushes)

	w.resolveContacts()

	if w.config.FoodDrip && w.rng.Fixed() < foodSpawnChance {
		w.spawnFood()
	}

	// Contacts and spawns change the population; the split and merge passes
	// must see the current cell lists.
	w.resolveSplits(groupByOwner(w.store))
	w.resolveMerges(groupByOwner(w.store))
}

// admitClient spawns the client's first cell. Idempotent against a client
// that already owns cells (a reconnect replayed as a join).
func (w *World) admitClient(client string) {
	token := w.store.Intern(client)
	for _, id := range w.store.CellIDs() {
		if cell, ok := w.store.Cell(id); ok && cell.Owner == token {
			return
		}
	}
	cell := w.spawnCell(client, cellOptions{})
	lifecyclelog.ClientJoined(context.Background(), w.publisher, w.store.Frame(),
		logging.EntityRef{ID: client, Kind: logging.EntityKindClient},
		lifecyclelog.ClientJoinedPayload{CellID: uint64(cell.ID)}, nil)
}

// expelClient destroys all of the client's cells. The merge and lockout
// bookkeeping lives on the cells, so it goes with them.
func (w *World) expelClient(client string) {
	token := w.store.Intern(client)
	removed := w.store.RemoveClient(token)
	if len(removed) == 0 {
		return
	}
	lifecyclelog.ClientLeft(context.Background(), w.publisher, w.store.Frame(),
		logging.EntityRef{ID: client, Kind: logging.EntityKindClient},
		lifecyclelog.ClientLeftPayload{CellsRemoved: len(removed)}, nil)
}

func (w *World) publishEaten(eater, prey *store.Cell) {
	gameplaylog.CellEaten(context.Background(), w.publisher, w.store.Frame(),
		logging.EntityRef{ID: w.store.OwnerString(eater.Owner), Kind: logging.EntityKindClient},
		gameplaylog.CellEatenPayload{
			EaterID: uint64(eater.ID),
			PreyID:  uint64(prey.ID),
			Prey:    w.store.OwnerString(prey.Owner),
		}, nil)
}
