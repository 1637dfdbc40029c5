package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/maintdesk/access-service/internal/usecase"
)

// AuthzHandler answers permission checks against the cached directory.
type AuthzHandler struct {
	authorizer *usecase.Authorizer
	logger     *zap.Logger
}

func NewAuthzHandler(authorizer *usecase.Authorizer, logger *zap.Logger) *AuthzHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthzHandler{authorizer: authorizer, logger: logger}
}

// Check evaluates whether the user holds the named permission. Aliases such
// as "manage_users" require every underlying catalog permission.
func (h *AuthzHandler) Check(c *gin.Context) {
	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, newErrorResponse(c, "invalid request body"))
		return
	}

	allowed, err := h.authorizer.HasPermission(req.UserID, req.Permission)
	if err != nil {
		RespondWithMappedError(c, h.logger, err, []ErrorCase{
			{Err: usecase.ErrUserNotFound, Status: http.StatusNotFound, Message: "user not found"},
			{Err: usecase.ErrUnknownPermission, Status: http.StatusBadRequest, Message: "unknown permission"},
		}, "failed to check permission")
		return
	}

	c.JSON(http.StatusOK, CheckResponse{
		UserID:     req.UserID,
		Permission: req.Permission,
		Allowed:    allowed,
	})
}
