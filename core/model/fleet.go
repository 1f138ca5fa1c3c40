package model

import "sort"

// Fleet is an ordered, de-duplicated set of vehicle identifiers. Iterating a
// Fleet is deterministic: ids are kept in ascending order so repeated runs
// visit vehicles the same way.
type Fleet []string

// NewFleet builds a Fleet from raw ids, dropping duplicates and empty
// entries and sorting the result.
func NewFleet(ids []string) Fleet {
	seen := make(map[string]struct{}, len(ids))
	fleet := make(Fleet, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		fleet = append(fleet, id)
	}
	sort.Strings(fleet)
	return fleet
}

// Contains reports whether the fleet holds the given vehicle id.
func (f Fleet) Contains(id string) bool {
	i := sort.SearchStrings(f, id)
	return i < len(f) && f[i] == id
}
