package commands

import (
	"context"
	"time"

	"pawsuite/internal/pkg/errs"
	"pawsuite/internal/usecase/shared"

	"github.com/google/uuid"
)

// allocateResource picks the first active resource of the requested suite
// type with no blocking reservation overlapping [start, end). Candidates
// arrive in name-ascending order, so allocation is deterministic: two
// identical requests against the same state pick the same unit. The pick is
// provisional until the caller re-checks it under the resource lock.
func allocateResource(ctx context.Context, reads shared.CommandReads, tenantID uuid.UUID, suiteType string, start, end time.Time) (*shared.ResourceSnapshot, error) {
	candidates, err := reads.ActiveResourcesByType(ctx, tenantID, suiteType)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	for _, candidate := range candidates {
		conflicts, err := reads.OverlappingReservationIDs(ctx, tenantID, candidate.ID, start, end, nil)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if len(conflicts) == 0 {
			return candidate, nil
		}
	}

	return nil, errs.Mark(
		errs.Newf("no available resource of type %s for the requested window", suiteType),
		errs.ErrNoResourceAvailable,
	)
}
