package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/maintdesk/access-service/internal/core/domain"
	"github.com/maintdesk/access-service/internal/repository"
	"github.com/maintdesk/access-service/internal/usecase"
)

// UserHandler exposes the user directory and per-user permission editing.
type UserHandler struct {
	users  *usecase.UserService
	logger *zap.Logger
}

func NewUserHandler(users *usecase.UserService, logger *zap.Logger) *UserHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserHandler{users: users, logger: logger}
}

var userMutationErrorCases = []ErrorCase{
	{Err: usecase.ErrUserNotFound, Status: http.StatusNotFound, Message: "user not found"},
	{Err: usecase.ErrRoleNotFound, Status: http.StatusBadRequest, Message: "unknown role id"},
	{Err: usecase.ErrUnknownPermission, Status: http.StatusBadRequest, Message: "unknown permission id"},
	{Err: usecase.ErrSaveInProgress, Status: http.StatusConflict, Message: "a save is already in progress"},
	{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "user not found"},
	{Err: repository.ErrUnauthorized, Status: http.StatusBadGateway, Message: "upstream rejected the request"},
}

// List returns every user with their derived permission sets.
func (h *UserHandler) List(c *gin.Context) {
	records, err := h.users.List(c.Request.Context())
	if err != nil {
		RespondWithMappedError(c, h.logger, err, []ErrorCase{
			{Err: repository.ErrUnauthorized, Status: http.StatusBadGateway, Message: "upstream rejected the request"},
		}, "failed to list users")
		return
	}

	out := make([]UserResponse, 0, len(records))
	for _, record := range records {
		out = append(out, toUserResponse(record))
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

// Get returns one directory entry.
func (h *UserHandler) Get(c *gin.Context) {
	record, err := h.users.Get(c.Param("id"))
	if err != nil {
		RespondWithMappedError(c, h.logger, err, userMutationErrorCases, "failed to load user")
		return
	}
	c.JSON(http.StatusOK, toUserResponse(*record))
}

// UpdatePermissions reassigns the user's role and reconciles their custom
// permissions through an editing session, so role-granted permissions can
// never be revoked and the role snapshot is re-read before persisting.
func (h *UserHandler) UpdatePermissions(c *gin.Context) {
	id := c.Param("id")

	var req UpdateUserPermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, newErrorResponse(c, "invalid request body"))
		return
	}

	editor, err := h.users.NewEditor(id)
	if err != nil {
		RespondWithMappedError(c, h.logger, err, userMutationErrorCases, "failed to update user permissions")
		return
	}

	roleID := ""
	if req.RoleID != nil {
		roleID = *req.RoleID
	}
	if err := editor.ReassignRole(roleID); err != nil {
		RespondWithMappedError(c, h.logger, err, userMutationErrorCases, "failed to update user permissions")
		return
	}

	if err := reconcileCustomPermissions(editor, req.CustomPermissions); err != nil {
		RespondWithMappedError(c, h.logger, err, userMutationErrorCases, "failed to update user permissions")
		return
	}

	record, err := editor.Save(c.Request.Context())
	if err != nil {
		RespondWithMappedError(c, h.logger, err, userMutationErrorCases, "failed to update user permissions")
		return
	}
	c.JSON(http.StatusOK, toUserResponse(*record))
}

// Delete removes a user from the upstream directory.
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondWithMappedError(c, h.logger, err, userMutationErrorCases, "failed to delete user")
		return
	}
	c.Status(http.StatusNoContent)
}

// reconcileCustomPermissions drives the editor toward the requested custom
// set. Toggling a role-granted permission is a no-op inside the editor, so
// requests listing role permissions as custom are harmless.
func reconcileCustomPermissions(editor *usecase.UserPermissionEditor, desired []string) error {
	want := domain.NewPermissionSet()
	for _, raw := range desired {
		want.Add(domain.PermissionID(raw))
	}

	current := editor.CustomPermissions()
	for _, id := range current.Sorted() {
		if !want.Has(id) {
			if err := editor.Toggle(id); err != nil {
				return err
			}
		}
	}
	for _, id := range want.Sorted() {
		if !current.Has(id) && !editor.RolePermissions().Has(id) {
			if err := editor.Toggle(id); err != nil {
				return err
			}
		}
	}
	return nil
}
