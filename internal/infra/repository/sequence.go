package repository

import (
	"context"
	"fmt"
	"time"

	"pawsuite/internal/infra"
	"pawsuite/internal/infra/db"

	"github.com/google/uuid"
)

// SequenceRepository hands out tenant/day-scoped order numbers. The counter
// row is bumped with one atomic upsert, so two concurrent creations on the
// same tenant and day can never read the same value.
type SequenceRepository struct {
	db db.Querier
}

func NewSequenceRepository(q db.Querier) *SequenceRepository {
	return &SequenceRepository{db: q}
}

const nextCounterSQL = `
INSERT INTO order_counters (tenant_id, day, counter)
VALUES ($1, $2, 1)
ON CONFLICT (tenant_id, day)
DO UPDATE SET counter = order_counters.counter + 1
RETURNING counter`

func (s *SequenceRepository) NextOrderNumber(ctx context.Context, tenantID uuid.UUID, day time.Time, prefix string) (string, error) {
	var counter int64
	err := s.db.QueryRow(ctx, nextCounterSQL, tenantID, day.Format("2006-01-02")).Scan(&counter)
	if err != nil {
		return "", infra.WrapRepoErr("failed to advance order counter", err)
	}

	return fmt.Sprintf("%s-%s-%03d", prefix, day.Format("20060102"), counter), nil
}

func (s *SequenceRepository) OrderNumberTaken(ctx context.Context, tenantID uuid.UUID, orderNumber string) (bool, error) {
	var one int
	err := s.db.QueryRow(ctx,
		"SELECT 1 FROM reservations WHERE tenant_id = $1 AND order_number = $2",
		tenantID, orderNumber,
	).Scan(&one)
	if err != nil {
		if infra.IsNoRows(err) {
			return false, nil
		}
		return false, infra.WrapRepoErr("failed to check order number", err)
	}
	return true, nil
}
