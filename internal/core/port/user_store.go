package port

import (
	"context"

	"github.com/maintdesk/access-service/internal/core/domain"
)

// UserPermissionsInput is the payload persisted when a user's role or custom
// permissions change. The derived effective set is never sent; upstream and
// this service both recompute it independently.
type UserPermissionsInput struct {
	RoleID            string // empty means no role
	CustomPermissions []domain.PermissionID
}

// UserStore handles user persistence against the upstream dashboard API.
// User creation and role catalogs live upstream; this service only edits
// role assignment and custom permissions.
type UserStore interface {
	List(ctx context.Context) ([]domain.User, error)
	UpdatePermissions(ctx context.Context, id string, input UserPermissionsInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
