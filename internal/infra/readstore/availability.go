package readstore

import (
	"context"
	"time"

	"pawsuite/internal/domain/reservation"
	"pawsuite/internal/infra"
	"pawsuite/internal/infra/db"
	"pawsuite/internal/infra/psql"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// AvailabilityIndex answers "is this resource free for this window" straight
// from the reservation set. Nothing is cached: correctness under concurrency
// comes from running this query inside the same transaction as the write.
type AvailabilityIndex struct {
	db db.Querier
}

func NewAvailabilityIndex(q db.Querier) *AvailabilityIndex {
	return &AvailabilityIndex{db: q}
}

// OverlappingReservationIDs returns blocking reservations on the resource
// whose [start_at, end_at) intersects [start, end). Half-open semantics:
// s1 < e2 AND s2 < e1, so back-to-back stays never collide. Cancelled and
// no-show reservations are exempt, which is what frees their resource.
func (a *AvailabilityIndex) OverlappingReservationIDs(ctx context.Context, tenantID, resourceID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]uuid.UUID, error) {
	qb := psql.Select("id").
		From("reservations").
		Where(sq.Eq{"tenant_id": tenantID, "resource_id": resourceID}).
		Where(sq.NotEq{"status": []string{
			reservation.StatusCancelled.String(),
			reservation.StatusNoShow.String(),
		}}).
		Where(sq.Lt{"start_at": end}).
		Where(sq.Gt{"end_at": start}).
		OrderBy("start_at ASC")

	if excludeID != nil {
		qb = qb.Where(sq.NotEq{"id": *excludeID})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build overlap query", err)
	}

	rows, err := a.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query overlapping reservations", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan overlapping reservation id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read overlapping reservations", err)
	}

	return ids, nil
}

func (a *AvailabilityIndex) ResourceExists(ctx context.Context, tenantID, resourceID uuid.UUID) (bool, error) {
	query, args, err := psql.Select("1").
		From("resources").
		Where(sq.Eq{"id": resourceID, "tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return false, infra.WrapRepoErr("failed to build resource existence query", err)
	}

	var one int
	if err := a.db.QueryRow(ctx, query, args...).Scan(&one); err != nil {
		if infra.IsNoRows(err) {
			return false, nil
		}
		return false, infra.WrapRepoErr("failed to check resource existence", err)
	}

	return true, nil
}
