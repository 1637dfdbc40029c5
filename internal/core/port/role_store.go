package port

import (
	"context"

	"github.com/maintdesk/access-service/internal/core/domain"
)

// RoleInput is the payload persisted for a role. The superadmin flag is
// never part of it: upstream derives it from the name.
type RoleInput struct {
	Name        string
	Description string
	Permissions []domain.PermissionID
}

// RoleStore handles role persistence against the upstream dashboard API.
type RoleStore interface {
	List(ctx context.Context) ([]domain.Role, error)
	Create(ctx context.Context, input RoleInput) (*domain.Role, error)
	Update(ctx context.Context, id string, input RoleInput) (*domain.Role, error)
	Delete(ctx context.Context, id string) error
}
