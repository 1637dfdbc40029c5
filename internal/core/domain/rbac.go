package domain

import "strings"

// SuperadminRoleName is the reserved role name. A role carrying it has the
// entire catalog as its effective authority regardless of its stored
// permission set.
const SuperadminRoleName = "superadmin"

// Role is a named, reusable bundle of permissions assignable to users.
type Role struct {
	ID          string // empty until the role has been persisted upstream
	Name        string
	Description string
	Permissions PermissionSet
}

// IsSuperadmin reports whether this is the reserved superadmin role. The flag
// is derived from the name and never stored or sent over the wire.
func (r Role) IsSuperadmin() bool {
	return strings.TrimSpace(r.Name) == SuperadminRoleName
}

// IsPersisted reports whether the role has been saved upstream.
func (r Role) IsPersisted() bool {
	return r.ID != ""
}

// User is a dashboard operator. RoleID is empty when the user has no role and
// holds custom permissions only.
type User struct {
	ID                string
	Name              string
	NIK               string
	Email             string
	Department        string
	DepartmentID      string
	RoleID            string
	CustomPermissions PermissionSet
}

// HasRole reports whether the user references a role.
func (u User) HasRole() bool {
	return u.RoleID != ""
}
