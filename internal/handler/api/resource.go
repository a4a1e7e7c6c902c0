package api

import (
	"net/http"

	reqdto "pawsuite/internal/handler/dto/request"
	resdto "pawsuite/internal/handler/dto/response"
	"pawsuite/internal/handler/httperr"
	"pawsuite/internal/handler/middleware"
	"pawsuite/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ResourceHandler struct {
	queries queries.ResourceQueries
}

func NewResourceHandler(qs queries.ResourceQueries) *ResourceHandler {
	return &ResourceHandler{queries: qs}
}

// @Summary List resources
// @Description List the tenant's bookable units, optionally filtered by suite type
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param X-Tenant header string true "Tenant slug"
// @Param suiteType query string false "Suite type filter"
// @Success 200 {object} resdto.ResourceListResponse
// @Router /resources [get]
func (h *ResourceHandler) ListResources(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		abortMissingTenant(c)
		return
	}

	var q reqdto.ListResourcesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters")
		return
	}

	views, err := h.queries.ListResources(c.Request.Context(), tenantID, q.SuiteType)
	if err != nil {
		abortDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromResourceViews(views))
}
