package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	CustomerID uuid.UUID  `json:"customerId" binding:"required"`
	PetID      uuid.UUID  `json:"petId" binding:"required"`
	ServiceID  uuid.UUID  `json:"serviceId" binding:"required"`
	ResourceID *uuid.UUID `json:"resourceId"`
	SuiteType  *string    `json:"suiteType"`
	StartDate  time.Time  `json:"startDate" binding:"required"`
	EndDate    time.Time  `json:"endDate" binding:"required"`
	PriceCents int64      `json:"priceCents" binding:"gte=0"`
	ExternalID *string    `json:"externalId"`
	Note       string     `json:"note"`
}

// UpdateReservationRequest is a partial edit. Omitted fields keep their
// current value; removeResource=true clears the assignment (distinct from
// simply omitting resourceId).
type UpdateReservationRequest struct {
	ResourceID     *uuid.UUID `json:"resourceId"`
	RemoveResource bool       `json:"removeResource"`
	SuiteType      *string    `json:"suiteType"`
	StartDate      *time.Time `json:"startDate"`
	EndDate        *time.Time `json:"endDate"`
	PriceCents     *int64     `json:"priceCents"`
	Note           *string    `json:"note"`
}

type ListReservationsQuery struct {
	Status     *string    `form:"status"`
	CustomerID *uuid.UUID `form:"customerId"`
	ResourceID *uuid.UUID `form:"resourceId"`
	From       *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To         *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit      int        `form:"limit"`
	After      string     `form:"after"`
}

type CheckAvailabilityQuery struct {
	ResourceID uuid.UUID `form:"resourceId" binding:"required"`
	StartDate  time.Time `form:"startDate" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	EndDate    time.Time `form:"endDate" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}

type ListResourcesQuery struct {
	SuiteType *string `form:"suiteType"`
}
