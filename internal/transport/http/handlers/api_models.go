package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/maintdesk/access-service/internal/core/domain"
	"github.com/maintdesk/access-service/internal/transport/http/middleware"
	"github.com/maintdesk/access-service/internal/usecase"
)

// ErrorResponse is the uniform error envelope for the HTTP API.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

func newErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	return ErrorResponse{
		Error:   errorMsg,
		TraceID: middleware.GetTraceID(c),
	}
}

// PermissionResponse is a single catalog entry.
type PermissionResponse struct {
	ID       string `json:"id"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

// PermissionGroupResponse is the catalog grouped by resource, the shape the
// permissions page renders its checkbox matrix from.
type PermissionGroupResponse struct {
	Resource    string               `json:"resource"`
	Permissions []PermissionResponse `json:"permissions"`
}

// RoleResponse mirrors the dashboard's role shape. IsSuperadmin is derived
// server-side so clients never have to compare names themselves.
type RoleResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Permissions  []string `json:"permissions"`
	IsSuperadmin bool     `json:"isSuperadmin"`
}

// CreateRoleRequest carries a new role definition.
type CreateRoleRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

// UpdateRoleRequest carries the full desired state of an existing role.
type UpdateRoleRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

// UserResponse is a directory entry with the derived permission sets.
// RoleID is null for users without a role, matching the upstream contract.
type UserResponse struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	NIK               string   `json:"nik,omitempty"`
	Email             string   `json:"email"`
	Department        string   `json:"department,omitempty"`
	DepartmentID      string   `json:"department_id,omitempty"`
	RoleID            *string  `json:"roleId"`
	CustomPermissions []string `json:"customPermissions"`
	RolePermissions   []string `json:"rolePermissions"`
	Effective         []string `json:"effectivePermissions"`
	NoRoleWarning     bool     `json:"noRoleWarning"`
}

// UpdateUserPermissionsRequest carries the two fields the edit dialog is
// allowed to change. RoleID null means "no role".
type UpdateUserPermissionsRequest struct {
	RoleID            *string  `json:"roleId"`
	CustomPermissions []string `json:"customPermissions"`
}

// CheckRequest asks whether a user holds a permission. Permission accepts
// either a raw catalog ID or a named alias such as "manage_users".
type CheckRequest struct {
	UserID     string `json:"userId" binding:"required"`
	Permission string `json:"permission" binding:"required"`
}

// CheckResponse is the authorization verdict.
type CheckResponse struct {
	UserID     string `json:"userId"`
	Permission string `json:"permission"`
	Allowed    bool   `json:"allowed"`
}

func toPermissionResponse(p domain.Permission) PermissionResponse {
	return PermissionResponse{
		ID:       string(p.ID),
		Resource: p.Resource,
		Action:   p.Action,
	}
}

func toRoleResponse(role domain.Role) RoleResponse {
	return RoleResponse{
		ID:           role.ID,
		Name:         role.Name,
		Description:  role.Description,
		Permissions:  role.Permissions.Strings(),
		IsSuperadmin: role.IsSuperadmin(),
	}
}

func toUserResponse(record usecase.UserRecord) UserResponse {
	var roleID *string
	if record.HasRole() {
		id := record.RoleID
		roleID = &id
	}
	return UserResponse{
		ID:                record.User.ID,
		Name:              record.Name,
		NIK:               record.NIK,
		Email:             record.Email,
		Department:        record.Department,
		DepartmentID:      record.DepartmentID,
		RoleID:            roleID,
		CustomPermissions: record.CustomPermissions.Strings(),
		RolePermissions:   record.RolePermissions.Strings(),
		Effective:         record.Effective.Strings(),
		NoRoleWarning:     record.NoRoleWarning(),
	}
}
