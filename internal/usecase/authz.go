package usecase

import (
	"fmt"

	"github.com/maintdesk/access-service/internal/core/domain"
)

// Alias names the dashboard pages use instead of raw catalog IDs.
const (
	AliasManageUsers     = "manage_users"
	AliasEditPermissions = "edit_permissions"
	AliasViewPermissions = "view_permissions"
	AliasManageInventory = "manage_inventory"
	AliasExportReports   = "export_reports"
)

// Authorizer answers hasPermission queries for the UI. It accepts either a
// raw catalog permission ID or a named alias, expands the alias through a
// static table, and checks membership in the user's cached effective set.
// It never re-runs resolution itself.
type Authorizer struct {
	catalog *domain.Catalog
	users   *UserService
	aliases map[string][]domain.PermissionID
}

// NewAuthorizer builds the authorizer and its alias table. Alias targets go
// through catalog lookup, so a typo in the table fails at startup, not at
// query time.
func NewAuthorizer(catalog *domain.Catalog, users *UserService) *Authorizer {
	return &Authorizer{
		catalog: catalog,
		users:   users,
		aliases: map[string][]domain.PermissionID{
			AliasManageUsers: {
				catalog.Lookup("team", "edit"),
				catalog.Lookup("team", "delete"),
			},
			AliasEditPermissions: {
				catalog.Lookup("permissions", "edit"),
			},
			AliasViewPermissions: {
				catalog.Lookup("permissions", "view"),
			},
			AliasManageInventory: {
				catalog.Lookup("inventory", "edit"),
				catalog.Lookup("inventory", "adjust"),
			},
			AliasExportReports: {
				catalog.Lookup("reports", "export"),
			},
		},
	}
}

// expand resolves a permission string to the catalog IDs it stands for.
func (a *Authorizer) expand(permission string) ([]domain.PermissionID, error) {
	if ids, ok := a.aliases[permission]; ok {
		return ids, nil
	}
	id := domain.PermissionID(permission)
	if a.catalog.Contains(id) {
		return []domain.PermissionID{id}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownPermission, permission)
}

// HasPermission reports whether the user's effective set covers the
// permission or every ID behind the alias.
func (a *Authorizer) HasPermission(userID, permission string) (bool, error) {
	record, err := a.users.Get(userID)
	if err != nil {
		return false, err
	}
	return a.Allows(record, permission)
}

// Allows checks an already-loaded record against a permission or alias.
func (a *Authorizer) Allows(record *UserRecord, permission string) (bool, error) {
	ids, err := a.expand(permission)
	if err != nil {
		return false, err
	}

	for _, id := range ids {
		if !record.Effective.Has(id) {
			return false, nil
		}
	}
	return true, nil
}
