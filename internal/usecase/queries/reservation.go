package queries

import (
	"context"
	"time"

	"pawsuite/internal/infra"
	"pawsuite/internal/pkg/config"
	"pawsuite/internal/pkg/errs"

	"github.com/google/uuid"
)

type ReservationQueries interface {
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*ReservationView, error)
	List(ctx context.Context, tenantID uuid.UUID, filters ListFilters, limit int, after string) (*ListResult, error)
	CheckAvailability(ctx context.Context, tenantID, resourceID uuid.UUID, start, end time.Time) (bool, []uuid.UUID, error)
}

type ReservationReadStore interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*ReservationView, error)
	List(ctx context.Context, tenantID uuid.UUID, filters ListFilters, limit int32, after *Keyset) ([]*ReservationListItem, error)
	Count(ctx context.Context, tenantID uuid.UUID, filters ListFilters) (int64, error)
}

type AvailabilityReadStore interface {
	OverlappingReservationIDs(ctx context.Context, tenantID, resourceID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]uuid.UUID, error)
	ResourceExists(ctx context.Context, tenantID, resourceID uuid.UUID) (bool, error)
}

type reservationQueriesImpl struct {
	store        ReservationReadStore
	availability AvailabilityReadStore
	maxLimit     int
}

func NewReservationQueries(store ReservationReadStore, availability AvailabilityReadStore, cfg config.Config) ReservationQueries {
	return &reservationQueriesImpl{
		store:        store,
		availability: availability,
		maxLimit:     cfg.Booking.MaxListLimit,
	}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*ReservationView, error) {
	view, err := q.store.FindByID(ctx, tenantID, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrReservationNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

// List reads are not serialized with writes; a page may briefly trail a
// concurrent booking.
func (q *reservationQueriesImpl) List(ctx context.Context, tenantID uuid.UUID, filters ListFilters, limit int, after string) (*ListResult, error) {
	clamped, warnings := ClampLimit(limit, q.maxLimit)

	var keyset *Keyset
	if after != "" {
		decoded, err := DecodeAfterCursor(after)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrInvalidCursor)
		}
		keyset = decoded
	}

	// Fetch one extra row to decide whether a next page exists.
	items, err := q.store.List(ctx, tenantID, filters, int32(clamped)+1, keyset)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	var nextCursor *string
	if len(items) > clamped {
		items = items[:clamped]
		last := items[len(items)-1]
		cursor := EncodeAfterCursor(last.CreatedAt, last.ID)
		nextCursor = &cursor
	}

	total, err := q.store.Count(ctx, tenantID, filters)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return &ListResult{
		Items:      items,
		TotalCount: total,
		NextCursor: nextCursor,
		Warnings:   warnings,
	}, nil
}

func (q *reservationQueriesImpl) CheckAvailability(ctx context.Context, tenantID, resourceID uuid.UUID, start, end time.Time) (bool, []uuid.UUID, error) {
	if !start.Before(end) {
		return false, nil, errs.ErrInvalidStayPeriod
	}

	exists, err := q.availability.ResourceExists(ctx, tenantID, resourceID)
	if err != nil {
		return false, nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !exists {
		return false, nil, errs.ErrResourceNotFound
	}

	conflicts, err := q.availability.OverlappingReservationIDs(ctx, tenantID, resourceID, start, end, nil)
	if err != nil {
		return false, nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return len(conflicts) == 0, conflicts, nil
}
