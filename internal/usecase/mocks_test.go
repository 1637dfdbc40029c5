package usecase

import (
	"context"

	"github.com/maintdesk/access-service/internal/core/domain"
	"github.com/maintdesk/access-service/internal/core/port"
)

type updateRoleCall struct {
	ID    string
	Input port.RoleInput
}

type mockRoleStore struct {
	roles []domain.Role

	listCalls   int
	createCalls []port.RoleInput
	updateCalls []updateRoleCall
	deleteCalls []string

	listErr   error
	createErr error
	updateErr error
	deleteErr error
}

func (m *mockRoleStore) List(ctx context.Context) ([]domain.Role, error) {
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]domain.Role, len(m.roles))
	copy(out, m.roles)
	return out, nil
}

func (m *mockRoleStore) Create(ctx context.Context, input port.RoleInput) (*domain.Role, error) {
	m.createCalls = append(m.createCalls, input)
	if m.createErr != nil {
		return nil, m.createErr
	}
	role := domain.Role{
		ID:          "role-new",
		Name:        input.Name,
		Description: input.Description,
		Permissions: domain.NewPermissionSet(input.Permissions...),
	}
	m.roles = append(m.roles, role)
	return &role, nil
}

func (m *mockRoleStore) Update(ctx context.Context, id string, input port.RoleInput) (*domain.Role, error) {
	m.updateCalls = append(m.updateCalls, updateRoleCall{ID: id, Input: input})
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	role := domain.Role{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		Permissions: domain.NewPermissionSet(input.Permissions...),
	}
	for i := range m.roles {
		if m.roles[i].ID == id {
			m.roles[i] = role
		}
	}
	return &role, nil
}

func (m *mockRoleStore) Delete(ctx context.Context, id string) error {
	m.deleteCalls = append(m.deleteCalls, id)
	if m.deleteErr != nil {
		return m.deleteErr
	}
	kept := m.roles[:0]
	for _, role := range m.roles {
		if role.ID != id {
			kept = append(kept, role)
		}
	}
	m.roles = kept
	return nil
}

type updateUserCall struct {
	ID    string
	Input port.UserPermissionsInput
}

type mockUserStore struct {
	users []domain.User

	listCalls   int
	updateCalls []updateUserCall
	deleteCalls []string

	listErr   error
	updateErr error
	deleteErr error
}

func (m *mockUserStore) List(ctx context.Context) ([]domain.User, error) {
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]domain.User, len(m.users))
	copy(out, m.users)
	return out, nil
}

func (m *mockUserStore) UpdatePermissions(ctx context.Context, id string, input port.UserPermissionsInput) (*domain.User, error) {
	m.updateCalls = append(m.updateCalls, updateUserCall{ID: id, Input: input})
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	for i := range m.users {
		if m.users[i].ID != id {
			continue
		}
		m.users[i].RoleID = input.RoleID
		m.users[i].CustomPermissions = domain.NewPermissionSet(input.CustomPermissions...)
		user := m.users[i]
		return &user, nil
	}
	return nil, ErrUserNotFound
}

func (m *mockUserStore) Delete(ctx context.Context, id string) error {
	m.deleteCalls = append(m.deleteCalls, id)
	if m.deleteErr != nil {
		return m.deleteErr
	}
	kept := m.users[:0]
	for _, user := range m.users {
		if user.ID != id {
			kept = append(kept, user)
		}
	}
	m.users = kept
	return nil
}

type staticUsage struct{ inUse bool }

func (s staticUsage) RoleInUse(string) bool { return s.inUse }

type refreshRecorder struct {
	calls int
	err   error
}

func (r *refreshRecorder) Refresh(context.Context) error {
	r.calls++
	return r.err
}

var (
	_ port.RoleStore = (*mockRoleStore)(nil)
	_ port.UserStore = (*mockUserStore)(nil)
)
