package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/maintdesk/access-service/internal/core/domain"
	"github.com/maintdesk/access-service/internal/core/port"
)

var (
	// ErrSuperadminImmutable indicates an attempt to edit or delete the superadmin role.
	ErrSuperadminImmutable = errors.New("superadmin role cannot be edited or deleted")
	// ErrRoleInUse indicates the role still has users assigned and cannot be deleted.
	ErrRoleInUse = errors.New("role is assigned to users")
	// ErrRoleNotFound indicates the referenced role is not in the store.
	ErrRoleNotFound = errors.New("role not found")
)

// RoleUsage reports whether any user still references a role. Implemented by
// the user directory; wired in at startup.
type RoleUsage interface {
	RoleInUse(roleID string) bool
}

// Refresher is anything whose cache must be rebuilt after a role mutation.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// RoleService owns the canonical in-memory list of roles. It is populated by
// full fetches from the upstream store; mutations go through RoleEditor
// sessions and always end in a full refresh, never an optimistic merge.
type RoleService struct {
	store   port.RoleStore
	catalog *domain.Catalog
	log     *zap.Logger

	usage      RoleUsage
	dependents []Refresher

	mu    sync.RWMutex
	roles []domain.Role
	byID  map[string]domain.Role
}

// NewRoleService constructs a RoleService.
func NewRoleService(store port.RoleStore, catalog *domain.Catalog, log *zap.Logger) *RoleService {
	if log == nil {
		log = zap.NewNop()
	}
	return &RoleService{
		store:   store,
		catalog: catalog,
		log:     log,
		byID:    make(map[string]domain.Role),
	}
}

// WithRoleUsage wires the in-use check consulted before role deletion.
func (s *RoleService) WithRoleUsage(usage RoleUsage) *RoleService {
	s.usage = usage
	return s
}

// WithDependent registers a cache that must be refreshed after every
// successful role mutation, before results are surfaced to callers.
func (s *RoleService) WithDependent(dep Refresher) *RoleService {
	s.dependents = append(s.dependents, dep)
	return s
}

// Refresh replaces the cached role list with a full upstream fetch.
func (s *RoleService) Refresh(ctx context.Context) error {
	roles, err := s.store.List(ctx)
	if err != nil {
		return fmt.Errorf("refresh roles: %w", err)
	}

	byID := make(map[string]domain.Role, len(roles))
	for _, role := range roles {
		byID[role.ID] = role
	}

	s.mu.Lock()
	s.roles = roles
	s.byID = byID
	s.mu.Unlock()

	s.log.Debug("role store refreshed", zap.Int("count", len(roles)))
	return nil
}

// refreshAll reloads this store and then every dependent cache, preserving
// the ordering guarantee that derived snapshots are rebuilt before the
// mutation result is surfaced.
func (s *RoleService) refreshAll(ctx context.Context) error {
	if err := s.Refresh(ctx); err != nil {
		return err
	}
	for _, dep := range s.dependents {
		if err := dep.Refresh(ctx); err != nil {
			return err
		}
	}
	return nil
}

// List returns a copy of the cached roles.
func (s *RoleService) List(ctx context.Context) ([]domain.Role, error) {
	s.mu.RLock()
	loaded := s.roles != nil
	s.mu.RUnlock()

	if !loaded {
		if err := s.Refresh(ctx); err != nil {
			return nil, err
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Role, len(s.roles))
	copy(out, s.roles)
	return out, nil
}

// Get returns the cached role with the given ID.
func (s *RoleService) Get(id string) (*domain.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	role, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRoleNotFound, id)
	}
	out := role
	out.Permissions = role.Permissions.Clone()
	return &out, nil
}

// Delete removes a role. The superadmin role is rejected outright, and a
// role still referenced by users is blocked rather than cascaded.
func (s *RoleService) Delete(ctx context.Context, id string) error {
	role, err := s.Get(id)
	if err != nil {
		return err
	}
	if role.IsSuperadmin() {
		return ErrSuperadminImmutable
	}
	if s.usage != nil && s.usage.RoleInUse(id) {
		return ErrRoleInUse
	}

	// A repository.ErrNotFound here means the role vanished between load
	// and delete; it propagates as a collaborator error, never swallowed.
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete role: %w", err)
	}

	return s.refreshAll(ctx)
}

// NewEditor starts an editing session. Pass nil to create a new role. The
// superadmin role is never editable and is rejected here as well as in the UI.
func (s *RoleService) NewEditor(role *domain.Role) (*RoleEditor, error) {
	if role != nil && role.IsSuperadmin() {
		return nil, ErrSuperadminImmutable
	}

	editor := &RoleEditor{
		svc:         s,
		permissions: make(domain.PermissionSet),
	}
	if role != nil {
		editor.id = role.ID
		editor.name = role.Name
		editor.description = role.Description
		editor.permissions = role.Permissions.Clone()
		editor.superadmin = role.IsSuperadmin()
	}
	return editor, nil
}

// EditorByID starts an editing session for a stored role.
func (s *RoleService) EditorByID(id string) (*RoleEditor, error) {
	role, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	return s.NewEditor(role)
}
