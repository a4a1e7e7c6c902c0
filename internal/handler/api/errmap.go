package api

import (
	"errors"
	"net/http"

	"pawsuite/internal/handler/httperr"
	"pawsuite/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type errStatus struct {
	status  int
	message string
}

// sentinel -> response mapping for the booking endpoints. Cross-tenant
// references deliberately share one opaque message so a caller cannot tell a
// foreign entity from a forbidden one.
var errStatuses = []struct {
	sentinel error
	errStatus
}{
	{errs.ErrResourceRequired, errStatus{http.StatusBadRequest, "Boarding and daycare reservations require a resource or suite type"}},
	{errs.ErrResourceRemovalBlocked, errStatus{http.StatusBadRequest, "Resource assignment cannot be removed from this reservation"}},
	{errs.ErrInvalidStayPeriod, errStatus{http.StatusBadRequest, "Start date must be before end date"}},
	{errs.ErrInvalidStatusTransition, errStatus{http.StatusBadRequest, "Invalid status transition"}},
	{errs.ErrResourceInactive, errStatus{http.StatusBadRequest, "Resource is not active"}},
	{errs.ErrInvalidPrice, errStatus{http.StatusBadRequest, "Price cannot be negative"}},
	{errs.ErrInvalidCursor, errStatus{http.StatusBadRequest, "Invalid pagination cursor"}},

	{errs.ErrCrossTenantReference, errStatus{http.StatusForbidden, "Referenced entity is not accessible"}},

	{errs.ErrTenantNotFound, errStatus{http.StatusNotFound, "Tenant not found"}},
	{errs.ErrCustomerNotFound, errStatus{http.StatusNotFound, "Customer not found"}},
	{errs.ErrPetNotFound, errStatus{http.StatusNotFound, "Pet not found"}},
	{errs.ErrServiceNotFound, errStatus{http.StatusNotFound, "Service not found"}},
	{errs.ErrResourceNotFound, errStatus{http.StatusNotFound, "Resource not found"}},
	{errs.ErrReservationNotFound, errStatus{http.StatusNotFound, "Reservation not found"}},

	{errs.ErrReservationOverlap, errStatus{http.StatusConflict, "Reservation overlaps an existing booking on this resource"}},
	{errs.ErrNoResourceAvailable, errStatus{http.StatusConflict, "No resource of the requested type is available for this window"}},
	{errs.ErrOrderNumberExhausted, errStatus{http.StatusConflict, "Could not generate an order number, please retry"}},
	{errs.ErrConcurrentReservation, errStatus{http.StatusConflict, "A concurrent booking won this slot, please retry"}},
}

func abortDomainError(c *gin.Context, err error) {
	for _, m := range errStatuses {
		if errors.Is(err, m.sentinel) {
			httperr.AbortWithError(c, m.status, err, m.message)
			return
		}
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
}

func abortMissingTenant(c *gin.Context) {
	httperr.AbortWithError(c, http.StatusInternalServerError,
		errs.New("tenant id missing from context"), "Internal server error")
}
