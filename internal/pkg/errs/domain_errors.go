package errs

import "errors"

// Sentinel errors shared by the booking usecase layers. Handlers map these to
// HTTP status codes; see internal/handler/api.
var (
	// Validation (400)
	ErrResourceRequired        = errors.New("resource or suite type required")
	ErrResourceRemovalBlocked  = errors.New("cannot remove resource assignment from a reservation that requires one")
	ErrInvalidStayPeriod       = errors.New("invalid stay period")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrResourceInactive        = errors.New("resource is not active")
	ErrInvalidPrice            = errors.New("price cannot be negative")
	ErrInvalidCursor           = errors.New("invalid pagination cursor")

	// Tenant isolation (403)
	ErrCrossTenantReference = errors.New("referenced entity belongs to another tenant")

	// Not found (404)
	ErrTenantNotFound      = errors.New("tenant not found")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrPetNotFound         = errors.New("pet not found")
	ErrServiceNotFound     = errors.New("service not found")
	ErrResourceNotFound    = errors.New("resource not found")
	ErrReservationNotFound = errors.New("reservation not found")

	// Conflict (409)
	ErrReservationOverlap    = errors.New("reservation overlaps an existing booking")
	ErrNoResourceAvailable   = errors.New("no available resource for the requested window")
	ErrOrderNumberExhausted  = errors.New("order number generation exhausted retries")
	ErrConcurrentReservation = errors.New("concurrent reservation attempt detected")

	// Storage (500)
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
