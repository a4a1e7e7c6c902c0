package readstore

import (
	"context"

	"pawsuite/internal/infra"
	"pawsuite/internal/infra/db"
	"pawsuite/internal/infra/psql"
	"pawsuite/internal/usecase/queries"
	"pawsuite/internal/usecase/shared"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type ResourceReadStore struct {
	db db.Querier
}

func NewResourceReadStore(q db.Querier) *ResourceReadStore {
	return &ResourceReadStore{db: q}
}

func (r *ResourceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.ResourceSnapshot, error) {
	query, args, err := psql.Select("id", "tenant_id", "name", "suite_type", "active").
		From("resources").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build resource query", err)
	}

	var snap shared.ResourceSnapshot
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&snap.ID,
		&snap.TenantID,
		&snap.Name,
		&snap.SuiteType,
		&snap.Active,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find resource by ID", err)
	}

	return &snap, nil
}

// ActiveByType lists allocation candidates. Name-ascending order keeps the
// allocator's greedy search deterministic.
func (r *ResourceReadStore) ActiveByType(ctx context.Context, tenantID uuid.UUID, suiteType string) ([]*shared.ResourceSnapshot, error) {
	query, args, err := psql.Select("id", "tenant_id", "name", "suite_type", "active").
		From("resources").
		Where(sq.Eq{"tenant_id": tenantID, "suite_type": suiteType, "active": true}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build resource candidates query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list resource candidates", err)
	}
	defer rows.Close()

	var snapshots []*shared.ResourceSnapshot
	for rows.Next() {
		var snap shared.ResourceSnapshot
		if err := rows.Scan(&snap.ID, &snap.TenantID, &snap.Name, &snap.SuiteType, &snap.Active); err != nil {
			return nil, infra.WrapRepoErr("failed to scan resource candidate", err)
		}
		snapshots = append(snapshots, &snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read resource candidates", err)
	}

	return snapshots, nil
}

func (r *ResourceReadStore) ListByTenant(ctx context.Context, tenantID uuid.UUID, suiteType *string) ([]*queries.ResourceView, error) {
	qb := psql.Select("id", "name", "suite_type", "active", "created_at", "updated_at").
		From("resources").
		Where(sq.Eq{"tenant_id": tenantID}).
		OrderBy("name ASC")

	if suiteType != nil {
		qb = qb.Where(sq.Eq{"suite_type": *suiteType})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build resource list query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list resources", err)
	}
	defer rows.Close()

	var views []*queries.ResourceView
	for rows.Next() {
		var view queries.ResourceView
		err := rows.Scan(&view.ID, &view.Name, &view.SuiteType, &view.Active, &view.CreatedAt, &view.UpdatedAt)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan resource", err)
		}
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read resources", err)
	}

	return views, nil
}
