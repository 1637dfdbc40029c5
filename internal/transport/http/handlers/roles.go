package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/maintdesk/access-service/internal/core/domain"
	"github.com/maintdesk/access-service/internal/repository"
	"github.com/maintdesk/access-service/internal/usecase"
)

// RoleHandler exposes role management over HTTP.
type RoleHandler struct {
	roles  *usecase.RoleService
	logger *zap.Logger
}

func NewRoleHandler(roles *usecase.RoleService, logger *zap.Logger) *RoleHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoleHandler{roles: roles, logger: logger}
}

var roleMutationErrorCases = []ErrorCase{
	{Err: usecase.ErrMissingName, Status: http.StatusBadRequest, Message: "role name is required"},
	{Err: usecase.ErrReservedName, Status: http.StatusBadRequest, Message: "role name is reserved"},
	{Err: usecase.ErrUnknownPermission, Status: http.StatusBadRequest, Message: "unknown permission id"},
	{Err: usecase.ErrSuperadminImmutable, Status: http.StatusForbidden, Message: "superadmin role cannot be modified"},
	{Err: usecase.ErrSaveInProgress, Status: http.StatusConflict, Message: "a save is already in progress"},
	{Err: usecase.ErrRoleNotFound, Status: http.StatusNotFound, Message: "role not found"},
	{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "role not found"},
	{Err: repository.ErrUnauthorized, Status: http.StatusBadGateway, Message: "upstream rejected the request"},
}

// List returns every role known to the service.
func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.roles.List(c.Request.Context())
	if err != nil {
		RespondWithMappedError(c, h.logger, err, []ErrorCase{
			{Err: repository.ErrUnauthorized, Status: http.StatusBadGateway, Message: "upstream rejected the request"},
		}, "failed to list roles")
		return
	}

	out := make([]RoleResponse, 0, len(roles))
	for _, role := range roles {
		out = append(out, toRoleResponse(role))
	}
	c.JSON(http.StatusOK, gin.H{"roles": out})
}

// Create persists a new role built from the request body.
func (h *RoleHandler) Create(c *gin.Context) {
	var req CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, newErrorResponse(c, "invalid request body"))
		return
	}

	editor, err := h.roles.NewEditor(nil)
	if err != nil {
		RespondWithMappedError(c, h.logger, err, roleMutationErrorCases, "failed to create role")
		return
	}
	editor.SetName(req.Name)
	editor.SetDescription(req.Description)

	saved, err := h.applyAndSave(c, editor, req.Permissions)
	if err != nil {
		RespondWithMappedError(c, h.logger, err, roleMutationErrorCases, "failed to create role")
		return
	}
	c.JSON(http.StatusCreated, toRoleResponse(*saved))
}

// Update replaces an existing role's name, description, and permission set.
func (h *RoleHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, newErrorResponse(c, "invalid request body"))
		return
	}

	editor, err := h.roles.EditorByID(id)
	if err != nil {
		RespondWithMappedError(c, h.logger, err, roleMutationErrorCases, "failed to update role")
		return
	}
	editor.SetName(req.Name)
	editor.SetDescription(req.Description)

	saved, err := h.applyAndSave(c, editor, req.Permissions)
	if err != nil {
		RespondWithMappedError(c, h.logger, err, roleMutationErrorCases, "failed to update role")
		return
	}
	c.JSON(http.StatusOK, toRoleResponse(*saved))
}

// Delete removes a role. Deletion is refused while users still hold it.
func (h *RoleHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.roles.Delete(c.Request.Context(), id); err != nil {
		RespondWithMappedError(c, h.logger, err, []ErrorCase{
			{Err: usecase.ErrSuperadminImmutable, Status: http.StatusForbidden, Message: "superadmin role cannot be deleted"},
			{Err: usecase.ErrRoleInUse, Status: http.StatusConflict, Message: "role is still assigned to users"},
			{Err: usecase.ErrRoleNotFound, Status: http.StatusNotFound, Message: "role not found"},
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "role not found"},
			{Err: repository.ErrUnauthorized, Status: http.StatusBadGateway, Message: "upstream rejected the request"},
		}, "failed to delete role")
		return
	}
	c.Status(http.StatusNoContent)
}

// applyAndSave drives the editing session toward the requested permission
// list, then saves. Unknown IDs surface before anything hits the network.
func (h *RoleHandler) applyAndSave(c *gin.Context, editor *usecase.RoleEditor, desired []string) (*domain.Role, error) {
	want := domain.NewPermissionSet()
	for _, raw := range desired {
		want.Add(domain.PermissionID(raw))
	}

	current := editor.Permissions()
	for _, id := range current.Sorted() {
		if !want.Has(id) {
			if err := editor.Toggle(id); err != nil {
				return nil, err
			}
		}
	}
	for _, id := range want.Sorted() {
		if !current.Has(id) {
			if err := editor.Toggle(id); err != nil {
				return nil, err
			}
		}
	}

	return editor.Save(c.Request.Context())
}
