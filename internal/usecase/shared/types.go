package shared

import (
	"time"

	"pawsuite/internal/domain/service"

	"github.com/google/uuid"
)

// EntityRef is the minimal projection the tenant isolation guard needs:
// identity plus owning tenant.
type EntityRef struct {
	ID       uuid.UUID
	TenantID uuid.UUID
}

type ServiceSnapshot struct {
	ID       uuid.UUID
	TenantID uuid.UUID
	Name     string
	Category service.Category
}

type ResourceSnapshot struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Name      string
	SuiteType string
	Active    bool
}

type ReservationSnapshot struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	CustomerID  uuid.UUID
	PetID       uuid.UUID
	ServiceID   uuid.UUID
	ResourceID  *uuid.UUID
	SuiteType   *string
	StartAt     time.Time
	EndAt       time.Time
	Status      string
	OrderNumber string
	PriceCents  int64
	ExternalID  *string
	Note        *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
