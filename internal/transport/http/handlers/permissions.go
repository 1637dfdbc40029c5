package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maintdesk/access-service/internal/core/domain"
)

// PermissionHandler serves the compiled-in permission catalog.
type PermissionHandler struct {
	catalog *domain.Catalog
}

func NewPermissionHandler(catalog *domain.Catalog) *PermissionHandler {
	return &PermissionHandler{catalog: catalog}
}

// List returns the whole catalog grouped by resource. The catalog never
// changes at runtime, so the response is safe to cache client-side.
func (h *PermissionHandler) List(c *gin.Context) {
	grouped := h.catalog.GroupedByResource()
	groups := make([]PermissionGroupResponse, 0, len(grouped))
	for _, g := range grouped {
		perms := make([]PermissionResponse, 0, len(g.Permissions))
		for _, p := range g.Permissions {
			perms = append(perms, toPermissionResponse(p))
		}
		groups = append(groups, PermissionGroupResponse{
			Resource:    g.Resource,
			Permissions: perms,
		})
	}
	c.JSON(http.StatusOK, gin.H{"permissions": groups})
}
