package sim

import (
	"sort"

	"github.com/modu-apps/cell-eater/internal/store"
)

// OwnerGroup is one client's cells in canonical order.
type OwnerGroup struct {
	Owner   store.OwnerToken
	OwnerID string
	Cells   []*store.Cell
}

// groupByOwner partitions the live cells by owning client and fixes the
// traversal order every other pass reuses: cells sorted by entity ID
// ascending inside a group, groups sorted by the owner's string identifier.
//
// The string sort matters: owner tokens are interned in join order, which a
// late-joining process observes differently, so token order is not stable
// across hosts. The string identifier is.
func groupByOwner(s *store.Store) []OwnerGroup {
	byOwner := make(map[store.OwnerToken]*OwnerGroup)
	order := make([]*OwnerGroup, 0)

	// CellIDs is sorted ascending, which gives the intra-group cell order
	// for free as cells append in enumeration order.
	for _, id := range s.CellIDs() {
		cell, ok := s.Cell(id)
		if !ok {
			continue
		}
		group, ok := byOwner[cell.Owner]
		if !ok {
			group = &OwnerGroup{
				Owner:   cell.Owner,
				OwnerID: s.OwnerString(cell.Owner),
			}
			byOwner[cell.Owner] = group
			order = append(order, group)
		}
		group.Cells = append(group.Cells, cell)
	}

	sort.Slice(order, func(i, j int) bool { return order[i].OwnerID < order[j].OwnerID })

	groups := make([]OwnerGroup, len(order))
	for i, group := range order {
		groups[i] = *group
	}
	return groups
}
