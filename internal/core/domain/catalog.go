package domain

import "fmt"

// Permission is an immutable catalog entry: a single (resource, action)
// capability with a stable identifier.
type Permission struct {
	ID       PermissionID
	Resource string
	Action   string
}

// ResourcePermissions groups the catalog entries belonging to one resource.
type ResourcePermissions struct {
	Resource    string
	Permissions []Permission
}

// Catalog is the closed, hand-maintained enumeration of every permission the
// platform knows about. It ships as compiled-in configuration and is never
// mutated at runtime.
type Catalog struct {
	entries   []Permission
	byKey     map[string]Permission
	byID      map[PermissionID]Permission
	resources []string
}

// NewCatalog validates and indexes the provided entries. Duplicate IDs or
// duplicate (resource, action) pairs are a programming error and panic.
func NewCatalog(entries []Permission) *Catalog {
	c := &Catalog{
		entries: entries,
		byKey:   make(map[string]Permission, len(entries)),
		byID:    make(map[PermissionID]Permission, len(entries)),
	}

	seenResource := make(map[string]bool)
	for _, entry := range entries {
		key := catalogKey(entry.Resource, entry.Action)
		if _, dup := c.byKey[key]; dup {
			panic(fmt.Sprintf("catalog: duplicate entry %s.%s", entry.Resource, entry.Action))
		}
		if _, dup := c.byID[entry.ID]; dup {
			panic(fmt.Sprintf("catalog: duplicate permission id %q", entry.ID))
		}
		c.byKey[key] = entry
		c.byID[entry.ID] = entry
		if !seenResource[entry.Resource] {
			seenResource[entry.Resource] = true
			c.resources = append(c.resources, entry.Resource)
		}
	}

	return c
}

// Lookup returns the permission ID for a (resource, action) pair. An unknown
// pair is a programming error, not user input, and panics.
func (c *Catalog) Lookup(resource, action string) PermissionID {
	entry, ok := c.byKey[catalogKey(resource, action)]
	if !ok {
		panic(fmt.Sprintf("catalog: unknown permission %s.%s", resource, action))
	}
	return entry.ID
}

// Contains reports whether the ID belongs to the catalog.
func (c *Catalog) Contains(id PermissionID) bool {
	_, ok := c.byID[id]
	return ok
}

// Get returns the catalog entry for an ID.
func (c *Catalog) Get(id PermissionID) (Permission, bool) {
	entry, ok := c.byID[id]
	return entry, ok
}

// All returns the full set of catalog permission IDs.
func (c *Catalog) All() PermissionSet {
	set := make(PermissionSet, len(c.entries))
	for _, entry := range c.entries {
		set[entry.ID] = struct{}{}
	}
	return set
}

// Size returns the number of catalog entries.
func (c *Catalog) Size() int {
	return len(c.entries)
}

// GroupedByResource returns the catalog in declaration order, grouped the way
// the permissions page renders it.
func (c *Catalog) GroupedByResource() []ResourcePermissions {
	groups := make([]ResourcePermissions, 0, len(c.resources))
	for _, resource := range c.resources {
		group := ResourcePermissions{Resource: resource}
		for _, entry := range c.entries {
			if entry.Resource == resource {
				group.Permissions = append(group.Permissions, entry)
			}
		}
		groups = append(groups, group)
	}
	return groups
}

func catalogKey(resource, action string) string {
	return resource + "." + action
}

// DefaultCatalog is the compiled-in permission table for the maintenance
// dashboard. IDs are stable; new entries append, existing entries never move.
func DefaultCatalog() *Catalog {
	return NewCatalog([]Permission{
		{ID: "1", Resource: "machines", Action: "view"},
		{ID: "2", Resource: "machines", Action: "create"},
		{ID: "3", Resource: "machines", Action: "edit"},
		{ID: "4", Resource: "machines", Action: "delete"},

		{ID: "5", Resource: "workorders", Action: "view"},
		{ID: "6", Resource: "workorders", Action: "create"},
		{ID: "7", Resource: "workorders", Action: "edit"},
		{ID: "8", Resource: "workorders", Action: "delete"},
		{ID: "9", Resource: "workorders", Action: "assign"},

		{ID: "10", Resource: "inventory", Action: "view"},
		{ID: "11", Resource: "inventory", Action: "create"},
		{ID: "12", Resource: "inventory", Action: "edit"},
		{ID: "13", Resource: "inventory", Action: "delete"},
		{ID: "14", Resource: "inventory", Action: "adjust"},

		{ID: "15", Resource: "reports", Action: "view"},
		{ID: "16", Resource: "reports", Action: "export"},

		{ID: "17", Resource: "team", Action: "view"},
		{ID: "18", Resource: "team", Action: "invite"},
		{ID: "19", Resource: "team", Action: "edit"},
		{ID: "20", Resource: "team", Action: "delete"},

		{ID: "21", Resource: "settings", Action: "view"},
		{ID: "22", Resource: "settings", Action: "edit"},

		{ID: "23", Resource: "permissions", Action: "view"},
		{ID: "24", Resource: "permissions", Action: "edit"},
	})
}
