package domain

// Resolve computes the effective permission set for a role and a set of
// custom grants. It is a pure function: it retains no references to its
// inputs and the returned set is independent of them.
//
// The superadmin role resolves to the entire catalog regardless of its
// stored permissions. Otherwise the result is the union of the role's
// permissions (empty when role is nil) and the custom grants.
func Resolve(catalog *Catalog, role *Role, custom PermissionSet) PermissionSet {
	if role != nil && role.IsSuperadmin() {
		return catalog.All()
	}

	effective := custom.Clone()
	if role != nil {
		effective = effective.Union(role.Permissions)
	}
	return effective
}
