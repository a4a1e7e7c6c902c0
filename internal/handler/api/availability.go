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

type AvailabilityHandler struct {
	queries queries.ReservationQueries
}

func NewAvailabilityHandler(qs queries.ReservationQueries) *AvailabilityHandler {
	return &AvailabilityHandler{queries: qs}
}

// @Summary Check resource availability
// @Description Reports whether a resource is free for [startDate, endDate)
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param X-Tenant header string true "Tenant slug"
// @Param resourceId query string true "Resource ID"
// @Param startDate query string true "Window start (RFC 3339)"
// @Param endDate query string true "Window end (RFC 3339)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /availability [get]
func (h *AvailabilityHandler) CheckAvailability(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		abortMissingTenant(c)
		return
	}

	var q reqdto.CheckAvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters")
		return
	}

	available, conflicts, err := h.queries.CheckAvailability(c.Request.Context(), tenantID, q.ResourceID, q.StartDate, q.EndDate)
	if err != nil {
		abortDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAvailability(available, conflicts))
}
