package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/maintdesk/access-service/internal/core/domain"
	"github.com/maintdesk/access-service/internal/core/port"
)

var (
	// ErrMissingName indicates the role name is empty after trimming.
	ErrMissingName = errors.New("role name is required")
	// ErrReservedName indicates an attempt to name a regular role "superadmin".
	ErrReservedName = errors.New("role name is reserved")
	// ErrUnknownPermission indicates a permission ID outside the catalog.
	ErrUnknownPermission = errors.New("unknown permission")
	// ErrSaveInProgress indicates a save was re-invoked while one is outstanding.
	ErrSaveInProgress = errors.New("save already in progress")
	// ErrEditorClosed indicates the editing session already ended.
	ErrEditorClosed = errors.New("editor session has ended")
)

// RoleEditor is a single-operator editing session over one role. Validation
// failures never reach the network; collaborator failures leave the session
// open so the operator can retry without re-entering data.
type RoleEditor struct {
	svc *RoleService

	id          string // empty for an unsaved role
	name        string
	description string
	permissions domain.PermissionSet
	superadmin  bool // set at session start, never derived from later renames

	saving bool
	closed bool
}

// SetName updates the in-progress role name.
func (e *RoleEditor) SetName(name string) {
	e.name = name
}

// SetDescription updates the in-progress description.
func (e *RoleEditor) SetDescription(description string) {
	e.description = description
}

// Name returns the in-progress name.
func (e *RoleEditor) Name() string {
	return e.name
}

// Permissions returns a copy of the in-progress permission set.
func (e *RoleEditor) Permissions() domain.PermissionSet {
	return e.permissions.Clone()
}

// IsNew reports whether the session creates a role rather than updating one.
func (e *RoleEditor) IsNew() bool {
	return e.id == ""
}

// Toggle flips membership of the permission in the role's set. It is a no-op
// when the session somehow holds the superadmin role, whose authority is
// definitional rather than enumerated.
func (e *RoleEditor) Toggle(id domain.PermissionID) error {
	if !e.svc.catalog.Contains(id) {
		return fmt.Errorf("%w: %s", ErrUnknownPermission, id)
	}
	if e.superadmin {
		return nil
	}

	if e.permissions.Has(id) {
		e.permissions.Remove(id)
	} else {
		e.permissions.Add(id)
	}
	return nil
}

// Validate checks the in-progress role without touching the network.
func (e *RoleEditor) Validate() error {
	name := strings.TrimSpace(e.name)
	if name == "" {
		return ErrMissingName
	}
	if name == domain.SuperadminRoleName && !e.superadmin {
		return ErrReservedName
	}
	return nil
}

// Save validates and persists the role: create when the role has never been
// saved, update otherwise. The superadmin flag is never part of the payload.
// On success the role store (and its dependents) are fully refreshed and the
// session ends; on failure the session stays open for retry.
func (e *RoleEditor) Save(ctx context.Context) (*domain.Role, error) {
	if e.closed {
		return nil, ErrEditorClosed
	}
	if e.saving {
		return nil, ErrSaveInProgress
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}

	e.saving = true
	defer func() { e.saving = false }()

	input := port.RoleInput{
		Name:        strings.TrimSpace(e.name),
		Description: strings.TrimSpace(e.description),
		Permissions: e.permissions.Sorted(),
	}

	var (
		saved *domain.Role
		err   error
	)
	if e.IsNew() {
		saved, err = e.svc.store.Create(ctx, input)
	} else {
		saved, err = e.svc.store.Update(ctx, e.id, input)
	}
	if err != nil {
		return nil, fmt.Errorf("save role: %w", err)
	}

	if err := e.svc.refreshAll(ctx); err != nil {
		return nil, err
	}

	e.closed = true
	return saved, nil
}
