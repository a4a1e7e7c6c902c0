package repository

import (
	"context"

	"pawsuite/internal/domain/reservation"
	"pawsuite/internal/infra"
	"pawsuite/internal/infra/db"
	"pawsuite/internal/infra/psql"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type ReservationRepository struct {
	db db.Querier
}

func NewReservationRepository(q db.Querier) *ReservationRepository {
	return &ReservationRepository{db: q}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) (uuid.UUID, error) {
	var note *string
	if !res.Note().IsEmpty() {
		n := res.Note().String()
		note = &n
	}

	query, args, err := psql.Insert("reservations").
		Columns(
			"id",
			"tenant_id",
			"customer_id",
			"pet_id",
			"service_id",
			"resource_id",
			"suite_type",
			"start_at",
			"end_at",
			"status",
			"order_number",
			"price_cents",
			"external_id",
			"note",
		).
		Values(
			res.ID(),
			res.TenantID(),
			res.CustomerID(),
			res.PetID(),
			res.ServiceID(),
			res.ResourceID(),
			res.SuiteType(),
			res.Period().Start(),
			res.Period().End(),
			res.Status().String(),
			res.OrderNumber(),
			res.PriceCents(),
			res.ExternalID(),
			note,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to build reservation insert", err)
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", err)
	}

	return id, nil
}

func (r *ReservationRepository) Update(ctx context.Context, res *reservation.Reservation) error {
	var note *string
	if !res.Note().IsEmpty() {
		n := res.Note().String()
		note = &n
	}

	query, args, err := psql.Update("reservations").
		Set("resource_id", res.ResourceID()).
		Set("suite_type", res.SuiteType()).
		Set("start_at", res.Period().Start()).
		Set("end_at", res.Period().End()).
		Set("status", res.Status().String()).
		Set("price_cents", res.PriceCents()).
		Set("note", note).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": res.ID(), "tenant_id": res.TenantID()}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build reservation update", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}

	return nil
}
