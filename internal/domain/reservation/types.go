package reservation

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
	StatusNoShow    Status = "NO_SHOW"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status ends the reservation lifecycle.
// Terminal reservations never count toward overlap, which is what frees the
// resource without an explicit release.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	default:
		return false
	}
}

// BlocksResource reports whether a reservation in this status occupies its
// resource for overlap purposes.
func (s Status) BlocksResource() bool {
	return s != StatusCancelled && s != StatusNoShow
}

// CanTransitionTo encodes the status machine:
// PENDING -> CONFIRMED/CANCELLED/NO_SHOW, CONFIRMED -> CANCELLED/COMPLETED/NO_SHOW.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled || next == StatusNoShow
	case StatusConfirmed:
		return next == StatusCancelled || next == StatusCompleted || next == StatusNoShow
	default:
		return false
	}
}
