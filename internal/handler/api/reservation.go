package api

import (
	"net/http"

	"pawsuite/internal/domain/reservation"
	reqdto "pawsuite/internal/handler/dto/request"
	resdto "pawsuite/internal/handler/dto/response"
	"pawsuite/internal/handler/httperr"
	"pawsuite/internal/handler/middleware"
	"pawsuite/internal/usecase/commands"
	"pawsuite/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	commands commands.ReservationCommands
	queries  queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, qs queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{
		commands: cmds,
		queries:  qs,
	}
}

// @Summary Create reservation
// @Description Book a stay; boarding and daycare require a resource or suite type
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-Tenant header string true "Tenant slug"
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		abortMissingTenant(c)
		return
	}

	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format")
		return
	}

	view, err := h.commands.Create(c.Request.Context(), commands.CreateReservationParams{
		TenantID:   tenantID,
		CustomerID: req.CustomerID,
		PetID:      req.PetID,
		ServiceID:  req.ServiceID,
		ResourceID: req.ResourceID,
		SuiteType:  req.SuiteType,
		StartAt:    req.StartDate,
		EndAt:      req.EndDate,
		PriceCents: req.PriceCents,
		ExternalID: req.ExternalID,
		Note:       req.Note,
	})
	if err != nil {
		abortDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromReservationView(view))
}

// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param X-Tenant header string true "Tenant slug"
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		abortMissingTenant(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID format")
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		abortDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary List reservations
// @Description Cursor-paginated listing with status, customer, resource and date filters
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param X-Tenant header string true "Tenant slug"
// @Success 200 {object} resdto.ReservationListResponse
// @Router /reservations [get]
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		abortMissingTenant(c)
		return
	}

	var q reqdto.ListReservationsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters")
		return
	}

	result, err := h.queries.List(c.Request.Context(), tenantID, queries.ListFilters{
		Status:     q.Status,
		CustomerID: q.CustomerID,
		ResourceID: q.ResourceID,
		From:       q.From,
		To:         q.To,
	}, q.Limit, q.After)
	if err != nil {
		abortDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromListResult(result))
}

// @Summary Update reservation
// @Description Partial update; schedule or resource changes re-run the conflict check
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-Tenant header string true "Tenant slug"
// @Param id path string true "Reservation ID"
// @Param request body reqdto.UpdateReservationRequest true "Fields to update"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id} [patch]
func (h *ReservationHandler) UpdateReservation(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		abortMissingTenant(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID format")
		return
	}

	var req reqdto.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format")
		return
	}

	view, err := h.commands.Update(c.Request.Context(), tenantID, id, commands.UpdateReservationParams{
		ResourceID:     req.ResourceID,
		RemoveResource: req.RemoveResource,
		SuiteType:      req.SuiteType,
		StartAt:        req.StartDate,
		EndAt:          req.EndDate,
		PriceCents:     req.PriceCents,
		Note:           req.Note,
	})
	if err != nil {
		abortDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Confirm reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param X-Tenant header string true "Tenant slug"
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Router /reservations/{id}/confirm [post]
func (h *ReservationHandler) ConfirmReservation(c *gin.Context) {
	h.transition(c, reservation.StatusConfirmed)
}

// @Summary Cancel reservation
// @Description Cancelling frees the resource for the vacated window
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param X-Tenant header string true "Tenant slug"
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	h.transition(c, reservation.StatusCancelled)
}

// @Summary Complete reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param X-Tenant header string true "Tenant slug"
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Router /reservations/{id}/complete [post]
func (h *ReservationHandler) CompleteReservation(c *gin.Context) {
	h.transition(c, reservation.StatusCompleted)
}

// @Summary Mark reservation as no-show
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param X-Tenant header string true "Tenant slug"
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Router /reservations/{id}/no-show [post]
func (h *ReservationHandler) MarkNoShow(c *gin.Context) {
	h.transition(c, reservation.StatusNoShow)
}

func (h *ReservationHandler) transition(c *gin.Context, next reservation.Status) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		abortMissingTenant(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID format")
		return
	}

	view, err := h.commands.Transition(c.Request.Context(), tenantID, id, next)
	if err != nil {
		abortDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}
