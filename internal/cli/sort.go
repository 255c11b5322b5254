package cli

import (
	"sort"

	"github.com/pfrederiksen/kzmaps/internal/globalmap"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByName    SortOrder = "name"
	SortByTier    SortOrder = "tier"
	SortByID      SortOrder = "id"
	SortByCreated SortOrder = "created"
)

// Valid reports whether o is a known sort order
func (o SortOrder) Valid() bool {
	switch o {
	case SortByName, SortByTier, SortByID, SortByCreated:
		return true
	default:
		return false
	}
}

// sortMaps sorts maps in place. Fetch already returns maps by name, so
// SortByName leaves the order untouched.
func sortMaps(maps []globalmap.GlobalMap, order SortOrder) {
	switch order {
	case SortByTier:
		sort.SliceStable(maps, func(i, j int) bool {
			if maps[i].Tier != maps[j].Tier {
				return maps[i].Tier < maps[j].Tier
			}
			// If tiers are equal, sort by name
			return maps[i].Name < maps[j].Name
		})
	case SortByID:
		sort.SliceStable(maps, func(i, j int) bool {
			return maps[i].ID < maps[j].ID
		})
	case SortByCreated:
		sort.SliceStable(maps, func(i, j int) bool {
			return maps[i].CreatedOn.Before(maps[j].CreatedOn.Time)
		})
	}
}
