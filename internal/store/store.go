// Package store owns the authoritative entity state for one room: cells,
// food pellets, and the last-seen input per client. Entities are referenced
// by monotonically increasing identifiers; identifiers are never reused, so
// a stale reference observed after a same-frame destruction simply fails its
// lookup instead of aliasing a new entity.
package store

import (
	"sort"

	"github.com/modu-apps/cell-eater/internal/fixed"
)

// ID identifies a live entity. The zero ID is never assigned.
type ID uint64

// OwnerToken is the per-process interned form of a client identifier.
// Tokens are assigned in join order, which differs between processes that
// saw clients join in different orders; anything ordering-sensitive must go
// through OwnerString and compare the string form.
type OwnerToken uint32

// Cell is a player-controlled circular body.
//
// MergeableAt and SplitLockedAt live on the component rather than in a side
// table so that checkpoint restore carries them with the rest of the entity
// state.
type Cell struct {
	ID     ID
	Owner  OwnerToken
	Color  uint8
	Pos    fixed.Vec
	Vel    fixed.Vec
	Radius int64

	// MergeableAt is the earliest frame this cell may merge with a sibling.
	// Zero means mergeable immediately.
	MergeableAt uint64
	// SplitLockedAt is the frame of the most recent split involving this
	// cell, or zero if it never split. Movement leaves the velocity alone
	// for a short window after it.
	SplitLockedAt uint64
	// HasSplitLock distinguishes a lock recorded at frame zero from no lock.
	HasSplitLock bool
}

// Food is a static pellet.
type Food struct {
	ID     ID
	Color  uint8
	Pos    fixed.Vec
	Radius int64
}

// Input is the last-set command state for one client.
type Input struct {
	Target    fixed.Vec
	HasTarget bool
	Split     bool
}

// Store is the entity store for a single room. It is not concurrency safe;
// the frame step is single threaded and the hub serializes access.
type Store struct {
	cells map[ID]*Cell
	food  map[ID]*Food

	inputs map[OwnerToken]Input

	ownerTokens  map[string]OwnerToken
	ownerStrings []string

	nextID ID
	frame  uint64
}

func New() *Store {
	return &Store{
		cells:       make(map[ID]*Cell),
		food:        make(map[ID]*Food),
		inputs:      make(map[OwnerToken]Input),
		ownerTokens: make(map[string]OwnerToken),
	}
}

// Intern maps a client identifier string to its per-process token, assigning
// one on first sight.
func (s *Store) Intern(owner string) OwnerToken {
	if token, ok := s.ownerTokens[owner]; ok {
		return token
	}
	token := OwnerToken(len(s.ownerStrings))
	s.ownerTokens[owner] = token
	s.ownerStrings = append(s.ownerStrings, owner)
	return token
}

// OwnerString resolves a token back to the canonical string identifier.
func (s *Store) OwnerString(token OwnerToken) string {
	if int(token) >= len(s.ownerStrings) {
		return ""
	}
	return s.ownerStrings[int(token)]
}

// Frame returns the current simulation frame counter.
func (s *Store) Frame() uint64 { return s.frame }

// AdvanceFrame increments the frame counter. Called once per movement pass.
func (s *Store) AdvanceFrame() { s.frame++ }

// SpawnCell allocates an identifier and registers the cell.
func (s *Store) SpawnCell(cell Cell) *Cell {
	s.nextID++
	cell.ID = s.nextID
	stored := cell
	s.cells[stored.ID] = &stored
	return &stored
}

// SpawnFood allocates an identifier and registers the pellet.
func (s *Store) SpawnFood(food Food) *Food {
	s.nextID++
	food.ID = s.nextID
	stored := food
	s.food[stored.ID] = &stored
	return &stored
}

// Cell returns the live cell for id, or ok=false if it was destroyed.
func (s *Store) Cell(id ID) (*Cell, bool) {
	cell, ok := s.cells[id]
	return cell, ok
}

// Food returns the live pellet for id, or ok=false if it was destroyed.
func (s *Store) Food(id ID) (*Food, bool) {
	pellet, ok := s.food[id]
	return pellet, ok
}

// DestroyCell removes a cell. Later lookups in the same frame observe the
// destruction, which the merge and contact passes rely on.
func (s *Store) DestroyCell(id ID) bool {
	if _, ok := s.cells[id]; !ok {
		return false
	}
	delete(s.cells, id)
	return true
}

// DestroyFood removes a pellet.
func (s *Store) DestroyFood(id ID) bool {
	if _, ok := s.food[id]; !ok {
		return false
	}
	delete(s.food, id)
	return true
}

// CellIDs returns all live cell identifiers sorted ascending. This is the
// only sanctioned way to enumerate cells; iterating the map directly leaks
// host iteration order into the simulation.
func (s *Store) CellIDs() []ID {
	ids := make([]ID, 0, len(s.cells))
	for id := range s.cells {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// FoodIDs returns all live pellet identifiers sorted ascending.
func (s *Store) FoodIDs() []ID {
	ids := make([]ID, 0, len(s.food))
	for id := range s.food {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// CellCount reports the number of live cells.
func (s *Store) CellCount() int { return len(s.cells) }

// FoodCount reports the number of live pellets.
func (s *Store) FoodCount() int { return len(s.food) }

// SetInput records the last-seen input for a client.
func (s *Store) SetInput(owner OwnerToken, input Input) {
	s.inputs[owner] = input
}

// Input returns the last-set input for a client, or ok=false if the client
// never sent one.
func (s *Store) Input(owner OwnerToken) (Input, bool) {
	input, ok := s.inputs[owner]
	return input, ok
}

// ClearSplit drops the one-shot split flag after the split pass consumed it.
func (s *Store) ClearSplit(owner OwnerToken) {
	if input, ok := s.inputs[owner]; ok && input.Split {
		input.Split = false
		s.inputs[owner] = input
	}
}

// RemoveClient destroys every cell owned by the client and forgets its
// input. The interned token survives; tokens are never reused.
func (s *Store) RemoveClient(owner OwnerToken) []ID {
	removed := make([]ID, 0)
	for _, id := range s.CellIDs() {
		if cell := s.cells[id]; cell != nil && cell.Owner == owner {
			delete(s.cells, id)
			removed = append(removed, id)
		}
	}
	delete(s.inputs, owner)
	return removed
}
