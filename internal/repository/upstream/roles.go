package upstream

import (
	"context"
	"fmt"

	"github.com/maintdesk/access-service/internal/core/domain"
	"github.com/maintdesk/access-service/internal/core/port"
)

type roleDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

type rolePayload struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

func (d roleDTO) toDomain() domain.Role {
	permissions := make(domain.PermissionSet, len(d.Permissions))
	for _, id := range d.Permissions {
		permissions.Add(domain.PermissionID(id))
	}
	return domain.Role{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Permissions: permissions,
	}
}

func newRolePayload(input port.RoleInput) rolePayload {
	permissions := make([]string, len(input.Permissions))
	for i, id := range input.Permissions {
		permissions[i] = string(id)
	}
	return rolePayload{
		Name:        input.Name,
		Description: input.Description,
		Permissions: permissions,
	}
}

// List fetches every role.
func (c *Client) List(ctx context.Context) ([]domain.Role, error) {
	var dtos []roleDTO

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&dtos).
		Get("/roles")
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("list roles: %w", statusError(resp))
	}

	roles := make([]domain.Role, 0, len(dtos))
	for _, dto := range dtos {
		roles = append(roles, dto.toDomain())
	}
	return roles, nil
}

// Create persists a new role and returns it with its assigned ID.
func (c *Client) Create(ctx context.Context, input port.RoleInput) (*domain.Role, error) {
	var dto roleDTO

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(newRolePayload(input)).
		SetResult(&dto).
		Post("/roles")
	if err != nil {
		return nil, fmt.Errorf("create role: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("create role: %w", statusError(resp))
	}

	role := dto.toDomain()
	return &role, nil
}

// Update replaces an existing role's name, description and permissions.
func (c *Client) Update(ctx context.Context, id string, input port.RoleInput) (*domain.Role, error) {
	var dto roleDTO

	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetBody(newRolePayload(input)).
		SetResult(&dto).
		Put("/roles/{id}")
	if err != nil {
		return nil, fmt.Errorf("update role %s: %w", id, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("update role %s: %w", id, statusError(resp))
	}

	role := dto.toDomain()
	return &role, nil
}

// Delete removes a role.
func (c *Client) Delete(ctx context.Context, id string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", id).
		Delete("/roles/{id}")
	if err != nil {
		return fmt.Errorf("delete role %s: %w", id, err)
	}
	if resp.IsError() {
		return fmt.Errorf("delete role %s: %w", id, statusError(resp))
	}
	return nil
}

var _ port.RoleStore = (*Client)(nil)
