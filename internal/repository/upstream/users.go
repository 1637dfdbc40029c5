package upstream

import (
	"context"
	"fmt"

	"github.com/maintdesk/access-service/internal/core/domain"
	"github.com/maintdesk/access-service/internal/core/port"
)

// userDTO mirrors the upstream user shape. Field naming is mixed
// (camelCase and snake_case) because the upstream API grew that way.
type userDTO struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	NIK               string   `json:"nik"`
	Email             string   `json:"email"`
	RoleID            *string  `json:"roleId"`
	Department        string   `json:"department"`
	DepartmentID      string   `json:"department_id"`
	CustomPermissions []string `json:"customPermissions"`
	AllPermissions    []string `json:"allPermissions"`
}

type userPermissionsPayload struct {
	RoleID            *string  `json:"roleId"`
	CustomPermissions []string `json:"customPermissions"`
}

// toDomain drops the upstream's allPermissions field on purpose: the
// effective set is always recomputed locally, never trusted from the wire.
func (d userDTO) toDomain() domain.User {
	custom := make(domain.PermissionSet, len(d.CustomPermissions))
	for _, id := range d.CustomPermissions {
		custom.Add(domain.PermissionID(id))
	}

	user := domain.User{
		ID:                d.ID,
		Name:              d.Name,
		NIK:               d.NIK,
		Email:             d.Email,
		Department:        d.Department,
		DepartmentID:      d.DepartmentID,
		CustomPermissions: custom,
	}
	if d.RoleID != nil {
		user.RoleID = *d.RoleID
	}
	return user
}

func newUserPermissionsPayload(input port.UserPermissionsInput) userPermissionsPayload {
	custom := make([]string, len(input.CustomPermissions))
	for i, id := range input.CustomPermissions {
		custom[i] = string(id)
	}

	payload := userPermissionsPayload{CustomPermissions: custom}
	if input.RoleID != "" {
		roleID := input.RoleID
		payload.RoleID = &roleID
	}
	return payload
}

// ListUsers fetches the full user directory.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var dtos []userDTO

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&dtos).
		Get("/users")
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("list users: %w", statusError(resp))
	}

	users := make([]domain.User, 0, len(dtos))
	for _, dto := range dtos {
		users = append(users, dto.toDomain())
	}
	return users, nil
}

// UpdatePermissions persists a user's role assignment and custom
// permissions. Only those two fields travel; derived sets stay local.
func (c *Client) UpdatePermissions(ctx context.Context, id string, input port.UserPermissionsInput) (*domain.User, error) {
	var dto userDTO

	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetBody(newUserPermissionsPayload(input)).
		SetResult(&dto).
		Patch("/users/{id}/permissions")
	if err != nil {
		return nil, fmt.Errorf("update user permissions %s: %w", id, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("update user permissions %s: %w", id, statusError(resp))
	}

	user := dto.toDomain()
	return &user, nil
}

// DeleteUser removes a user from the upstream directory.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", id).
		Delete("/users/{id}")
	if err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	if resp.IsError() {
		return fmt.Errorf("delete user %s: %w", id, statusError(resp))
	}
	return nil
}

// userStore adapts the shared client to the UserStore port so the role and
// user stores can be wired independently.
type userStore struct {
	client *Client
}

// Users returns the client's UserStore view.
func (c *Client) Users() port.UserStore {
	return userStore{client: c}
}

func (s userStore) List(ctx context.Context) ([]domain.User, error) {
	return s.client.ListUsers(ctx)
}

func (s userStore) UpdatePermissions(ctx context.Context, id string, input port.UserPermissionsInput) (*domain.User, error) {
	return s.client.UpdatePermissions(ctx, id, input)
}

func (s userStore) Delete(ctx context.Context, id string) error {
	return s.client.DeleteUser(ctx, id)
}

var _ port.UserStore = userStore{}
