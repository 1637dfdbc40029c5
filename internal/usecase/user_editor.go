package usecase

import (
	"context"
	"fmt"

	"github.com/maintdesk/access-service/internal/core/domain"
	"github.com/maintdesk/access-service/internal/core/port"
)

// UserPermissionEditor is a single-operator editing session over one user's
// role assignment and custom permissions. The role's permission set is
// snapshotted at session start (and on every reassignment), not live-linked;
// Save re-snapshots immediately before persisting so a role edited elsewhere
// during the session cannot leave a stale derived set behind.
type UserPermissionEditor struct {
	svc *UserService

	userID string
	roleID string
	role   *domain.Role // snapshot copy, nil when no role

	rolePermissions domain.PermissionSet
	custom          domain.PermissionSet
	effective       domain.PermissionSet

	saving bool
	closed bool
}

// snapshotRole copies the role's permissions into the session and recomputes
// the effective set. An empty roleID clears the snapshot.
func (e *UserPermissionEditor) snapshotRole(roleID string) error {
	if roleID == "" {
		e.roleID = ""
		e.role = nil
		e.rolePermissions = make(domain.PermissionSet)
	} else {
		role, err := e.svc.roles.Get(roleID)
		if err != nil {
			return err
		}
		e.roleID = roleID
		e.role = role
		e.rolePermissions = role.Permissions.Clone()
	}

	e.recompute()
	return nil
}

func (e *UserPermissionEditor) recompute() {
	e.effective = domain.Resolve(e.svc.catalog, e.role, e.custom)
}

// ReassignRole moves the user onto a different role (or none). Custom
// permissions are deliberately untouched; only the role-derived part of the
// effective set changes.
func (e *UserPermissionEditor) ReassignRole(roleID string) error {
	return e.snapshotRole(roleID)
}

// Toggle flips membership of the permission in the user's custom set. It is
// a no-op when the role is superadmin, and a no-op for role-granted
// permissions: those can only be removed by changing the user's role.
func (e *UserPermissionEditor) Toggle(id domain.PermissionID) error {
	if !e.svc.catalog.Contains(id) {
		return fmt.Errorf("%w: %s", ErrUnknownPermission, id)
	}
	if e.role != nil && e.role.IsSuperadmin() {
		return nil
	}
	if e.rolePermissions.Has(id) {
		return nil
	}

	if e.custom.Has(id) {
		e.custom.Remove(id)
	} else {
		e.custom.Add(id)
	}
	e.recompute()
	return nil
}

// NoRoleWarning reports whether the session has no role assigned, in which
// case permissions come from custom permissions only. Save is still allowed.
func (e *UserPermissionEditor) NoRoleWarning() bool {
	return e.roleID == ""
}

// RoleID returns the session's current role assignment.
func (e *UserPermissionEditor) RoleID() string {
	return e.roleID
}

// RolePermissions returns a copy of the session's role snapshot.
func (e *UserPermissionEditor) RolePermissions() domain.PermissionSet {
	return e.rolePermissions.Clone()
}

// CustomPermissions returns a copy of the in-progress custom set.
func (e *UserPermissionEditor) CustomPermissions() domain.PermissionSet {
	return e.custom.Clone()
}

// Effective returns a copy of the session's resolved permission set.
func (e *UserPermissionEditor) Effective() domain.PermissionSet {
	return e.effective.Clone()
}

// Save persists the role assignment and custom permissions, never the
// derived effective set. The role snapshot is refreshed right before the
// call; if the role can no longer be resolved the mutation is rejected
// instead of being applied with a stale derived set. On success the
// directory is refreshed and the returned record carries locally recomputed
// derived sets.
func (e *UserPermissionEditor) Save(ctx context.Context) (*UserRecord, error) {
	if e.closed {
		return nil, ErrEditorClosed
	}
	if e.saving {
		return nil, ErrSaveInProgress
	}

	e.saving = true
	defer func() { e.saving = false }()

	if err := e.snapshotRole(e.roleID); err != nil {
		return nil, fmt.Errorf("refresh role snapshot: %w", err)
	}

	input := port.UserPermissionsInput{
		RoleID:            e.roleID,
		CustomPermissions: e.custom.Sorted(),
	}

	updated, err := e.svc.store.UpdatePermissions(ctx, e.userID, input)
	if err != nil {
		return nil, fmt.Errorf("save user permissions: %w", err)
	}

	if err := e.svc.Refresh(ctx); err != nil {
		return nil, err
	}

	record, err := e.svc.Get(updated.ID)
	if err != nil {
		return nil, err
	}

	e.closed = true
	return record, nil
}
