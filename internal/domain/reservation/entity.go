package reservation

import (
	"errors"
	"time"

	"pawsuite/internal/domain/service"

	"github.com/google/uuid"
)

var (
	ErrInvalidStayPeriod  = errors.New("invalid stay period")
	ErrNegativePrice      = errors.New("price cannot be negative")
	ErrInvalidStatus      = errors.New("invalid reservation status")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrTerminalState      = errors.New("reservation is in a terminal state")
	ErrMissingOrderNumber = errors.New("order number not assigned")
)

// Reservation is the aggregate the booking engine exists to protect: a stay
// for one pet, optionally pinned to one physical resource, never overlapping
// another active stay on the same resource.
type Reservation struct {
	id          uuid.UUID
	tenantID    uuid.UUID
	customerID  uuid.UUID
	petID       uuid.UUID
	serviceID   uuid.UUID
	resourceID  *uuid.UUID
	suiteType   *string
	period      StayPeriod
	status      Status
	orderNumber string
	priceCents  int64
	externalID  *string
	note        Note
	createdAt   time.Time
	updatedAt   time.Time
}

type NewReservationParams struct {
	TenantID   uuid.UUID
	CustomerID uuid.UUID
	PetID      uuid.UUID
	ServiceID  uuid.UUID
	Category   service.Category
	ResourceID *uuid.UUID
	SuiteType  *string
	Period     StayPeriod
	PriceCents int64
	Note       Note
}

func NewReservation(p NewReservationParams) (*Reservation, error) {
	if err := ValidateResourceRequirement(p.Category, p.ResourceID, p.SuiteType); err != nil {
		return nil, err
	}
	if p.PriceCents < 0 {
		return nil, ErrNegativePrice
	}

	return &Reservation{
		id:         uuid.New(),
		tenantID:   p.TenantID,
		customerID: p.CustomerID,
		petID:      p.PetID,
		serviceID:  p.ServiceID,
		resourceID: p.ResourceID,
		suiteType:  p.SuiteType,
		period:     p.Period,
		status:     StatusPending,
		priceCents: p.PriceCents,
		note:       p.Note,
	}, nil
}

func ReconstructReservation(
	id, tenantID, customerID, petID, serviceID uuid.UUID,
	resourceID *uuid.UUID,
	suiteType *string,
	period StayPeriod,
	status Status,
	orderNumber string,
	priceCents int64,
	externalID *string,
	note Note,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:          id,
		tenantID:    tenantID,
		customerID:  customerID,
		petID:       petID,
		serviceID:   serviceID,
		resourceID:  resourceID,
		suiteType:   suiteType,
		period:      period,
		status:      status,
		orderNumber: orderNumber,
		priceCents:  priceCents,
		externalID:  externalID,
		note:        note,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// AssignResource pins the reservation to a concrete resource, typically the
// allocator's pick when the caller only supplied a suite type.
func (r *Reservation) AssignResource(resourceID uuid.UUID) {
	id := resourceID
	r.resourceID = &id
}

// ClearResource drops the resource assignment. Callers must have checked
// ValidateResourceRemoval first.
func (r *Reservation) ClearResource() {
	r.resourceID = nil
}

func (r *Reservation) SetSuiteType(suiteType string) {
	if suiteType == "" {
		r.suiteType = nil
		return
	}
	st := suiteType
	r.suiteType = &st
}

func (r *Reservation) SetPriceCents(priceCents int64) error {
	if priceCents < 0 {
		return ErrNegativePrice
	}
	r.priceCents = priceCents
	return nil
}

func (r *Reservation) SetNote(note Note) {
	r.note = note
}

// AssignOrderNumber attaches the generated tenant/day order number. It is
// called inside the creation transaction, after sequence generation.
func (r *Reservation) AssignOrderNumber(orderNumber string) {
	r.orderNumber = orderNumber
}

// Reschedule moves the stay window. Overlap re-validation against the store
// is the lifecycle store's job, inside the same transaction as the write.
func (r *Reservation) Reschedule(period StayPeriod) error {
	if r.status.IsTerminal() {
		return ErrTerminalState
	}
	r.period = period
	return nil
}

func (r *Reservation) TransitionTo(next Status) error {
	if !next.IsValid() {
		return ErrInvalidStatus
	}
	if !r.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	r.status = next
	return nil
}

// BlocksResource reports whether this reservation currently occupies its
// resource for overlap purposes.
func (r *Reservation) BlocksResource() bool {
	return r.resourceID != nil && r.status.BlocksResource()
}

func (r *Reservation) ID() uuid.UUID          { return r.id }
func (r *Reservation) TenantID() uuid.UUID    { return r.tenantID }
func (r *Reservation) CustomerID() uuid.UUID  { return r.customerID }
func (r *Reservation) PetID() uuid.UUID       { return r.petID }
func (r *Reservation) ServiceID() uuid.UUID   { return r.serviceID }
func (r *Reservation) ResourceID() *uuid.UUID { return r.resourceID }
func (r *Reservation) SuiteType() *string     { return r.suiteType }
func (r *Reservation) Period() StayPeriod     { return r.period }
func (r *Reservation) Status() Status         { return r.status }
func (r *Reservation) OrderNumber() string    { return r.orderNumber }
func (r *Reservation) PriceCents() int64      { return r.priceCents }
func (r *Reservation) ExternalID() *string    { return r.externalID }
func (r *Reservation) Note() Note             { return r.note }
func (r *Reservation) CreatedAt() time.Time   { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time   { return r.updatedAt }
