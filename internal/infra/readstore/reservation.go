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

var reservationViewColumns = []string{
	"r.id",
	"r.tenant_id",
	"r.customer_id",
	"c.name AS customer_name",
	"r.pet_id",
	"p.name AS pet_name",
	"r.service_id",
	"s.name AS service_name",
	"s.category",
	"r.resource_id",
	"res.name AS resource_name",
	"r.suite_type",
	"r.start_at",
	"r.end_at",
	"r.status",
	"r.order_number",
	"r.price_cents",
	"r.external_id",
	"r.note",
	"r.created_at",
	"r.updated_at",
}

type ReservationReadStore struct {
	db db.Querier
}

func NewReservationReadStore(q db.Querier) *ReservationReadStore {
	return &ReservationReadStore{db: q}
}

func (r *ReservationReadStore) viewQuery() sq.SelectBuilder {
	return psql.Select(reservationViewColumns...).
		From("reservations r").
		Join("customers c ON c.id = r.customer_id").
		Join("pets p ON p.id = r.pet_id").
		Join("services s ON s.id = r.service_id").
		LeftJoin("resources res ON res.id = r.resource_id")
}

func (r *ReservationReadStore) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*queries.ReservationView, error) {
	query, args, err := r.viewQuery().
		Where(sq.Eq{"r.id": id, "r.tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build reservation view query", err)
	}

	var view queries.ReservationView
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&view.ID,
		&view.TenantID,
		&view.CustomerID,
		&view.CustomerName,
		&view.PetID,
		&view.PetName,
		&view.ServiceID,
		&view.ServiceName,
		&view.Category,
		&view.ResourceID,
		&view.ResourceName,
		&view.SuiteType,
		&view.StartDate,
		&view.EndDate,
		&view.Status,
		&view.OrderNumber,
		&view.PriceCents,
		&view.ExternalID,
		&view.Note,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	return &view, nil
}

func applyListFilters(qb sq.SelectBuilder, filters queries.ListFilters) sq.SelectBuilder {
	if filters.Status != nil {
		qb = qb.Where(sq.Eq{"r.status": *filters.Status})
	}
	if filters.CustomerID != nil {
		qb = qb.Where(sq.Eq{"r.customer_id": *filters.CustomerID})
	}
	if filters.ResourceID != nil {
		qb = qb.Where(sq.Eq{"r.resource_id": *filters.ResourceID})
	}
	if filters.From != nil {
		qb = qb.Where(sq.GtOrEq{"r.end_at": *filters.From})
	}
	if filters.To != nil {
		qb = qb.Where(sq.Lt{"r.start_at": *filters.To})
	}
	return qb
}

func (r *ReservationReadStore) List(ctx context.Context, tenantID uuid.UUID, filters queries.ListFilters, limit int32, after *queries.Keyset) ([]*queries.ReservationListItem, error) {
	qb := psql.Select(
		"r.id",
		"p.name AS pet_name",
		"s.name AS service_name",
		"r.resource_id",
		"res.name AS resource_name",
		"r.start_at",
		"r.end_at",
		"r.status",
		"r.order_number",
		"r.created_at",
	).
		From("reservations r").
		Join("pets p ON p.id = r.pet_id").
		Join("services s ON s.id = r.service_id").
		LeftJoin("resources res ON res.id = r.resource_id").
		Where(sq.Eq{"r.tenant_id": tenantID})

	qb = applyListFilters(qb, filters)

	if after != nil {
		qb = qb.Where(sq.Expr("(r.created_at, r.id) < (?, ?)", after.CreatedAt, after.ID))
	}

	query, args, err := qb.
		OrderBy("r.created_at DESC", "r.id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build reservation list query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	defer rows.Close()

	var items []*queries.ReservationListItem
	for rows.Next() {
		var item queries.ReservationListItem
		err := rows.Scan(
			&item.ID,
			&item.PetName,
			&item.ServiceName,
			&item.ResourceID,
			&item.ResourceName,
			&item.StartDate,
			&item.EndDate,
			&item.Status,
			&item.OrderNumber,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation list item", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation list", err)
	}

	return items, nil
}

func (r *ReservationReadStore) Count(ctx context.Context, tenantID uuid.UUID, filters queries.ListFilters) (int64, error) {
	qb := psql.Select("COUNT(*)").
		From("reservations r").
		Where(sq.Eq{"r.tenant_id": tenantID})

	query, args, err := applyListFilters(qb, filters).ToSql()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build reservation count query", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count reservations", err)
	}

	return count, nil
}

// SnapshotByID is the command-side read: raw columns, no joins, used for
// update revalidation inside a transaction. The row is locked for the rest
// of the transaction so concurrent editors serialize on it; without the lock
// a patch that changes neither window nor resource could write a stale
// window back over a committed reschedule.
func (r *ReservationReadStore) SnapshotByID(ctx context.Context, tenantID, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	query, args, err := psql.Select(
		"id", "tenant_id", "customer_id", "pet_id", "service_id",
		"resource_id", "suite_type", "start_at", "end_at", "status",
		"order_number", "price_cents", "external_id", "note",
		"created_at", "updated_at",
	).
		From("reservations").
		Where(sq.Eq{"id": id, "tenant_id": tenantID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build reservation snapshot query", err)
	}

	var snap shared.ReservationSnapshot
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&snap.ID,
		&snap.TenantID,
		&snap.CustomerID,
		&snap.PetID,
		&snap.ServiceID,
		&snap.ResourceID,
		&snap.SuiteType,
		&snap.StartAt,
		&snap.EndAt,
		&snap.Status,
		&snap.OrderNumber,
		&snap.PriceCents,
		&snap.ExternalID,
		&snap.Note,
		&snap.CreatedAt,
		&snap.UpdatedAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load reservation snapshot", err)
	}

	return &snap, nil
}
