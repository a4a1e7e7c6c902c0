package readstore

import (
	"context"

	"pawsuite/internal/infra"
	"pawsuite/internal/infra/db"
	"pawsuite/internal/infra/psql"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type TenantReadStore struct {
	db db.Querier
}

func NewTenantReadStore(q db.Querier) *TenantReadStore {
	return &TenantReadStore{db: q}
}

// IDBySlug resolves an active tenant's identifier from its subdomain slug.
func (t *TenantReadStore) IDBySlug(ctx context.Context, slug string) (uuid.UUID, error) {
	query, args, err := psql.Select("id").
		From("tenants").
		Where(sq.Eq{"slug": slug, "active": true}).
		ToSql()
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to build tenant query", err)
	}

	var id uuid.UUID
	if err := t.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if infra.IsNoRows(err) {
			return uuid.Nil, infra.WrapRepoErr("tenant not found", err, infra.KindNotFound)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to resolve tenant", err)
	}

	return id, nil
}
