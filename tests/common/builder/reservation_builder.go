//go:build unit || e2e

package builder

import (
	"time"

	domreservation "pawsuite/internal/domain/reservation"
	"pawsuite/internal/domain/service"
	reqdto "pawsuite/internal/handler/dto/request"
	"pawsuite/internal/usecase/commands"
	"pawsuite/internal/usecase/queries"
	"pawsuite/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	TenantID     uuid.UUID
	CustomerID   uuid.UUID
	CustomerName string
	PetID        uuid.UUID
	PetName      string
	ServiceID    uuid.UUID
	ServiceName  string
	Category     service.Category
	ResourceID   *uuid.UUID
	ResourceName *string
	SuiteType    *string
	StartAt      time.Time
	EndAt        time.Time
	Status       domreservation.Status
	OrderNumber  string
	PriceCents   int64
	Note         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Now().UTC().Truncate(time.Second)
	resourceID := uuid.New()
	resourceName := "A01"
	return &ReservationBuilder{
		TenantID:     uuid.New(),
		CustomerID:   uuid.New(),
		CustomerName: "Dana Whitfield",
		PetID:        uuid.New(),
		PetName:      "Biscuit",
		ServiceID:    uuid.New(),
		ServiceName:  "Overnight Boarding",
		Category:     service.CategoryBoarding,
		ResourceID:   &resourceID,
		ResourceName: &resourceName,
		StartAt:      now.Add(24 * time.Hour),
		EndAt:        now.Add(72 * time.Hour),
		Status:       domreservation.StatusPending,
		OrderNumber:  "RES-20260830-001",
		PriceCents:   12000,
		Note:         "Prefers the quiet corner",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *ReservationBuilder) BuildDomain() (*domreservation.Reservation, error) {
	period, err := domreservation.NewStayPeriod(b.StartAt, b.EndAt)
	if err != nil {
		return nil, err
	}
	return domreservation.NewReservation(domreservation.NewReservationParams{
		TenantID:   b.TenantID,
		CustomerID: b.CustomerID,
		PetID:      b.PetID,
		ServiceID:  b.ServiceID,
		Category:   b.Category,
		ResourceID: b.ResourceID,
		SuiteType:  b.SuiteType,
		Period:     period,
		PriceCents: b.PriceCents,
		Note:       domreservation.NewNote(b.Note),
	})
}

func (b *ReservationBuilder) BuildSnapshot() *shared.ReservationSnapshot {
	note := b.Note
	return &shared.ReservationSnapshot{
		ID:          uuid.New(),
		TenantID:    b.TenantID,
		CustomerID:  b.CustomerID,
		PetID:       b.PetID,
		ServiceID:   b.ServiceID,
		ResourceID:  b.ResourceID,
		SuiteType:   b.SuiteType,
		StartAt:     b.StartAt,
		EndAt:       b.EndAt,
		Status:      string(b.Status),
		OrderNumber: b.OrderNumber,
		PriceCents:  b.PriceCents,
		Note:        &note,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	note := b.Note
	return &queries.ReservationView{
		ID:           uuid.New(),
		TenantID:     b.TenantID,
		CustomerID:   b.CustomerID,
		CustomerName: b.CustomerName,
		PetID:        b.PetID,
		PetName:      b.PetName,
		ServiceID:    b.ServiceID,
		ServiceName:  b.ServiceName,
		Category:     string(b.Category),
		ResourceID:   b.ResourceID,
		ResourceName: b.ResourceName,
		SuiteType:    b.SuiteType,
		StartDate:    b.StartAt,
		EndDate:      b.EndAt,
		Status:       string(b.Status),
		OrderNumber:  b.OrderNumber,
		PriceCents:   b.PriceCents,
		Note:         &note,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func (b *ReservationBuilder) BuildListItem() *queries.ReservationListItem {
	return &queries.ReservationListItem{
		ID:           uuid.New(),
		PetName:      b.PetName,
		ServiceName:  b.ServiceName,
		ResourceID:   b.ResourceID,
		ResourceName: b.ResourceName,
		StartDate:    b.StartAt,
		EndDate:      b.EndAt,
		Status:       string(b.Status),
		OrderNumber:  b.OrderNumber,
		CreatedAt:    b.CreatedAt,
	}
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		CustomerID: b.CustomerID,
		PetID:      b.PetID,
		ServiceID:  b.ServiceID,
		ResourceID: b.ResourceID,
		SuiteType:  b.SuiteType,
		StartDate:  b.StartAt,
		EndDate:    b.EndAt,
		PriceCents: b.PriceCents,
		Note:       b.Note,
	}
}

func (b *ReservationBuilder) BuildCreateParams() commands.CreateReservationParams {
	return commands.CreateReservationParams{
		TenantID:   b.TenantID,
		CustomerID: b.CustomerID,
		PetID:      b.PetID,
		ServiceID:  b.ServiceID,
		ResourceID: b.ResourceID,
		SuiteType:  b.SuiteType,
		StartAt:    b.StartAt,
		EndAt:      b.EndAt,
		PriceCents: b.PriceCents,
		Note:       b.Note,
	}
}

func (b *ReservationBuilder) BuildServiceSnapshot() *shared.ServiceSnapshot {
	return &shared.ServiceSnapshot{
		ID:       b.ServiceID,
		TenantID: b.TenantID,
		Name:     b.ServiceName,
		Category: b.Category,
	}
}

func (b *ReservationBuilder) BuildResourceSnapshot() *shared.ResourceSnapshot {
	snap := &shared.ResourceSnapshot{
		TenantID:  b.TenantID,
		Name:      "A01",
		SuiteType: "standard",
		Active:    true,
	}
	if b.ResourceID != nil {
		snap.ID = *b.ResourceID
	} else {
		snap.ID = uuid.New()
	}
	if b.ResourceName != nil {
		snap.Name = *b.ResourceName
	}
	if b.SuiteType != nil {
		snap.SuiteType = *b.SuiteType
	}
	return snap
}

// Fluent builder methods
func (b *ReservationBuilder) WithTenantID(id uuid.UUID) *ReservationBuilder {
	b.TenantID = id
	return b
}

func (b *ReservationBuilder) WithCategory(category service.Category) *ReservationBuilder {
	b.Category = category
	return b
}

func (b *ReservationBuilder) WithResourceID(id *uuid.UUID) *ReservationBuilder {
	b.ResourceID = id
	return b
}

func (b *ReservationBuilder) WithSuiteType(suiteType *string) *ReservationBuilder {
	b.SuiteType = suiteType
	return b
}

func (b *ReservationBuilder) WithWindow(start, end time.Time) *ReservationBuilder {
	b.StartAt = start
	b.EndAt = end
	return b
}

func (b *ReservationBuilder) WithStatus(status domreservation.Status) *ReservationBuilder {
	b.Status = status
	return b
}

func (b *ReservationBuilder) WithPriceCents(price int64) *ReservationBuilder {
	b.PriceCents = price
	return b
}

func (b *ReservationBuilder) AsDaycare() *ReservationBuilder {
	b.Category = service.CategoryDaycare
	b.ServiceName = "Full-Day Daycare"
	return b
}

func (b *ReservationBuilder) AsGrooming() *ReservationBuilder {
	b.Category = service.CategoryGrooming
	b.ServiceName = "Bath and Trim"
	b.ResourceID = nil
	b.ResourceName = nil
	b.SuiteType = nil
	return b
}
