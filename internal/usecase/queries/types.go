package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side). JSON shape follows the platform's public
// API: camelCase fields, embedded display names for list rendering.

type ReservationView struct {
	ID           uuid.UUID  `json:"id"`
	TenantID     uuid.UUID  `json:"tenantId"`
	CustomerID   uuid.UUID  `json:"customerId"`
	CustomerName string     `json:"customerName"`
	PetID        uuid.UUID  `json:"petId"`
	PetName      string     `json:"petName"`
	ServiceID    uuid.UUID  `json:"serviceId"`
	ServiceName  string     `json:"serviceName"`
	Category     string     `json:"category"`
	ResourceID   *uuid.UUID `json:"resourceId,omitempty"`
	ResourceName *string    `json:"resourceName,omitempty"`
	SuiteType    *string    `json:"suiteType,omitempty"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      time.Time  `json:"endDate"`
	Status       string     `json:"status"`
	OrderNumber  string     `json:"orderNumber"`
	PriceCents   int64      `json:"priceCents"`
	ExternalID   *string    `json:"externalId,omitempty"`
	Note         *string    `json:"note,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type ReservationListItem struct {
	ID           uuid.UUID  `json:"id"`
	PetName      string     `json:"petName"`
	ServiceName  string     `json:"serviceName"`
	ResourceID   *uuid.UUID `json:"resourceId,omitempty"`
	ResourceName *string    `json:"resourceName,omitempty"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      time.Time  `json:"endDate"`
	Status       string     `json:"status"`
	OrderNumber  string     `json:"orderNumber"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type ResourceView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	SuiteType string    `json:"suiteType"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListFilters narrows reservation listings. Nil fields are ignored.
type ListFilters struct {
	Status     *string
	CustomerID *uuid.UUID
	ResourceID *uuid.UUID
	From       *time.Time
	To         *time.Time
}

// Keyset is a decoded pagination cursor position.
type Keyset struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

type ListResult struct {
	Items      []*ReservationListItem
	TotalCount int64
	NextCursor *string
	Warnings   []string
}
