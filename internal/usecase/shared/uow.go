package shared

import (
	"context"
	"time"

	"pawsuite/internal/domain/reservation"

	"github.com/google/uuid"
)

// UnitOfWork scopes the engine's check-then-act sequences to one storage
// transaction. The overlap check and the reservation write must commit or
// abort together; see the lifecycle store.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	// LockResourceWindow serializes writers touching the same
	// (tenant, resource) pair for the remainder of the transaction.
	LockResourceWindow(ctx context.Context, tenantID, resourceID uuid.UUID) error

	Reservations() ReservationRepository
	Sequences() SequenceRepository
	Reads() CommandReads
}

type ReservationRepository interface {
	Create(ctx context.Context, res *reservation.Reservation) (uuid.UUID, error)
	Update(ctx context.Context, res *reservation.Reservation) error
}

type SequenceRepository interface {
	// NextOrderNumber returns the next PREFIX-YYYYMMDD-NNN identifier for the
	// tenant and calendar day via a single atomic counter increment.
	NextOrderNumber(ctx context.Context, tenantID uuid.UUID, day time.Time, prefix string) (string, error)

	// OrderNumberTaken reports whether a reservation already holds the
	// number (possible with imported legacy records running ahead of the
	// counter).
	OrderNumberTaken(ctx context.Context, tenantID uuid.UUID, orderNumber string) (bool, error)
}

// CommandReads are the lookups the command side performs inside (or ahead of)
// a transaction: guard refs, rule inputs, allocator candidates and the
// availability index.
type CommandReads interface {
	CustomerRef(ctx context.Context, id uuid.UUID) (*EntityRef, error)
	PetRef(ctx context.Context, id uuid.UUID) (*EntityRef, error)
	ServiceByID(ctx context.Context, id uuid.UUID) (*ServiceSnapshot, error)
	ResourceByID(ctx context.Context, id uuid.UUID) (*ResourceSnapshot, error)

	// ActiveResourcesByType returns the tenant's active resources of the
	// given suite type in deterministic name-ascending order.
	ActiveResourcesByType(ctx context.Context, tenantID uuid.UUID, suiteType string) ([]*ResourceSnapshot, error)

	// OverlappingReservationIDs is the availability index: ids of
	// resource-blocking reservations on the resource whose [start,end)
	// intersects the given window, excluding excludeID when non-nil.
	OverlappingReservationIDs(ctx context.Context, tenantID, resourceID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]uuid.UUID, error)

	// ReservationByID loads the row and locks it for the rest of the
	// transaction, serializing concurrent editors of the same reservation.
	ReservationByID(ctx context.Context, tenantID, id uuid.UUID) (*ReservationSnapshot, error)
}
