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

// ErrUserNotFound indicates the referenced user is not in the directory.
var ErrUserNotFound = errors.New("user not found")

// UserRecord is a directory entry: the upstream user plus the derived sets
// this service maintains. RolePermissions and Effective are recomputed
// locally on every refresh and mutation; they are never read off the wire.
type UserRecord struct {
	domain.User
	RolePermissions domain.PermissionSet
	Effective       domain.PermissionSet
}

// NoRoleWarning reports the "no role assigned; permissions come from custom
// permissions only" state the permissions page surfaces.
func (r UserRecord) NoRoleWarning() bool {
	return !r.HasRole()
}

// UserService owns the canonical in-memory user directory. Derived
// permission sets are rebuilt from the role store on every refresh so the
// invariant effective == resolve(role, custom) holds after every mutation.
type UserService struct {
	store   port.UserStore
	roles   *RoleService
	catalog *domain.Catalog
	log     *zap.Logger

	mu    sync.RWMutex
	users []UserRecord
	byID  map[string]UserRecord
}

// NewUserService constructs a UserService.
func NewUserService(store port.UserStore, roles *RoleService, catalog *domain.Catalog, log *zap.Logger) *UserService {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserService{
		store:   store,
		roles:   roles,
		catalog: catalog,
		log:     log,
		byID:    make(map[string]UserRecord),
	}
}

// Refresh replaces the directory with a full upstream fetch and recomputes
// every derived set against the current role store.
func (s *UserService) Refresh(ctx context.Context) error {
	users, err := s.store.List(ctx)
	if err != nil {
		return fmt.Errorf("refresh users: %w", err)
	}

	records := make([]UserRecord, 0, len(users))
	byID := make(map[string]UserRecord, len(users))
	for _, user := range users {
		record := s.buildRecord(user)
		records = append(records, record)
		byID[record.ID] = record
	}

	s.mu.Lock()
	s.users = records
	s.byID = byID
	s.mu.Unlock()

	s.log.Debug("user directory refreshed", zap.Int("count", len(records)))
	return nil
}

// buildRecord recomputes the derived sets for one user. A role reference
// that no longer resolves is logged and treated as no role rather than
// poisoning the whole directory.
func (s *UserService) buildRecord(user domain.User) UserRecord {
	record := UserRecord{
		User:            user,
		RolePermissions: make(domain.PermissionSet),
	}

	var role *domain.Role
	if user.HasRole() {
		found, err := s.roles.Get(user.RoleID)
		if err != nil {
			s.log.Warn("user references unknown role",
				zap.String("user_id", user.ID),
				zap.String("role_id", user.RoleID),
			)
		} else {
			role = found
			record.RolePermissions = found.Permissions.Clone()
		}
	}

	record.Effective = domain.Resolve(s.catalog, role, user.CustomPermissions)
	return record
}

// List returns a copy of the directory.
func (s *UserService) List(ctx context.Context) ([]UserRecord, error) {
	s.mu.RLock()
	loaded := s.users != nil
	s.mu.RUnlock()

	if !loaded {
		if err := s.Refresh(ctx); err != nil {
			return nil, err
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]UserRecord, len(s.users))
	copy(out, s.users)
	return out, nil
}

// Get returns the directory entry for a user ID.
func (s *UserService) Get(id string) (*UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, id)
	}
	record.CustomPermissions = record.CustomPermissions.Clone()
	record.RolePermissions = record.RolePermissions.Clone()
	record.Effective = record.Effective.Clone()
	return &record, nil
}

// RoleInUse reports whether any directory entry references the role. Used to
// block role deletion while assignments exist.
func (s *UserService) RoleInUse(roleID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, record := range s.users {
		if record.RoleID == roleID {
			return true
		}
	}
	return false
}

// Delete removes a user upstream and refreshes the directory.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return s.Refresh(ctx)
}

// NewEditor starts a permission-editing session for a user, snapshotting the
// current role's permission set into the session.
func (s *UserService) NewEditor(userID string) (*UserPermissionEditor, error) {
	record, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	editor := &UserPermissionEditor{
		svc:    s,
		userID: record.ID,
		custom: record.CustomPermissions.Clone(),
	}
	if err := editor.snapshotRole(record.RoleID); err != nil {
		return nil, err
	}
	return editor, nil
}

var _ RoleUsage = (*UserService)(nil)
