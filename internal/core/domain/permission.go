package domain

import "sort"

// PermissionID identifies a single catalog entry. IDs are stable and never
// recycled or renumbered at runtime.
type PermissionID string

// PermissionSet is an unordered set of permission IDs.
type PermissionSet map[PermissionID]struct{}

// NewPermissionSet builds a set from the provided IDs.
func NewPermissionSet(ids ...PermissionID) PermissionSet {
	set := make(PermissionSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Has reports whether the set contains the given ID.
func (s PermissionSet) Has(id PermissionID) bool {
	_, ok := s[id]
	return ok
}

// Add inserts the ID into the set.
func (s PermissionSet) Add(id PermissionID) {
	s[id] = struct{}{}
}

// Remove deletes the ID from the set.
func (s PermissionSet) Remove(id PermissionID) {
	delete(s, id)
}

// Clone returns an independent copy of the set. A nil set clones to an
// empty, usable set.
func (s PermissionSet) Clone() PermissionSet {
	out := make(PermissionSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Union returns a new set containing every ID present in either set.
func (s PermissionSet) Union(other PermissionSet) PermissionSet {
	out := s.Clone()
	for id := range other {
		out[id] = struct{}{}
	}
	return out
}

// ContainsAll reports whether every ID in other is present in s.
func (s PermissionSet) ContainsAll(other PermissionSet) bool {
	for id := range other {
		if !s.Has(id) {
			return false
		}
	}
	return true
}

// Equal reports whether both sets hold exactly the same IDs.
func (s PermissionSet) Equal(other PermissionSet) bool {
	return len(s) == len(other) && s.ContainsAll(other)
}

// Sorted returns the IDs in lexicographic order for stable payloads and logs.
func (s PermissionSet) Sorted() []PermissionID {
	out := make([]PermissionID, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Strings returns the sorted IDs as plain strings, the shape wire payloads use.
func (s PermissionSet) Strings() []string {
	ids := s.Sorted()
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
