package readstore

import (
	"context"

	"pawsuite/internal/infra"
	"pawsuite/internal/infra/db"
	"pawsuite/internal/infra/psql"
	"pawsuite/internal/usecase/shared"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// EntityRefReadStore resolves the owning tenant of entities referenced by a
// booking request. The isolation guard compares these against the acting
// tenant before anything else runs.
type EntityRefReadStore struct {
	db db.Querier
}

func NewEntityRefReadStore(q db.Querier) *EntityRefReadStore {
	return &EntityRefReadStore{db: q}
}

func (s *EntityRefReadStore) CustomerRef(ctx context.Context, id uuid.UUID) (*shared.EntityRef, error) {
	return s.ref(ctx, "customers", "customer", id)
}

func (s *EntityRefReadStore) PetRef(ctx context.Context, id uuid.UUID) (*shared.EntityRef, error) {
	return s.ref(ctx, "pets", "pet", id)
}

func (s *EntityRefReadStore) ref(ctx context.Context, table, label string, id uuid.UUID) (*shared.EntityRef, error) {
	query, args, err := psql.Select("id", "tenant_id").
		From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build "+label+" ref query", err)
	}

	var ref shared.EntityRef
	if err := s.db.QueryRow(ctx, query, args...).Scan(&ref.ID, &ref.TenantID); err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr(label+" not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find "+label, err)
	}

	return &ref, nil
}

func (s *EntityRefReadStore) ServiceByID(ctx context.Context, id uuid.UUID) (*shared.ServiceSnapshot, error) {
	query, args, err := psql.Select("id", "tenant_id", "name", "category").
		From("services").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build service query", err)
	}

	var snap shared.ServiceSnapshot
	if err := s.db.QueryRow(ctx, query, args...).Scan(&snap.ID, &snap.TenantID, &snap.Name, &snap.Category); err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("service not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find service", err)
	}

	return &snap, nil
}
