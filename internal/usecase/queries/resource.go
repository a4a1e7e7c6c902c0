package queries

import (
	"context"

	"pawsuite/internal/pkg/errs"

	"github.com/google/uuid"
)

type ResourceQueries interface {
	ListResources(ctx context.Context, tenantID uuid.UUID, suiteType *string) ([]*ResourceView, error)
}

type ResourceReadStore interface {
	ListByTenant(ctx context.Context, tenantID uuid.UUID, suiteType *string) ([]*ResourceView, error)
}

type resourceQueriesImpl struct {
	store ResourceReadStore
}

func NewResourceQueries(store ResourceReadStore) ResourceQueries {
	return &resourceQueriesImpl{store: store}
}

func (q *resourceQueriesImpl) ListResources(ctx context.Context, tenantID uuid.UUID, suiteType *string) ([]*ResourceView, error) {
	views, err := q.store.ListByTenant(ctx, tenantID, suiteType)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}
