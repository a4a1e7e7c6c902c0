package commands

import (
	"context"
	"errors"
	"time"

	"pawsuite/internal/domain/reservation"
	"pawsuite/internal/infra"
	"pawsuite/internal/pkg/clock"
	"pawsuite/internal/pkg/config"
	"pawsuite/internal/pkg/errs"
	"pawsuite/internal/usecase/queries"
	"pawsuite/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateReservationParams struct {
	TenantID   uuid.UUID
	CustomerID uuid.UUID
	PetID      uuid.UUID
	ServiceID  uuid.UUID
	ResourceID *uuid.UUID
	SuiteType  *string
	StartAt    time.Time
	EndAt      time.Time
	PriceCents int64
	ExternalID *string
	Note       string
}

// UpdateReservationParams carries a partial update. Nil pointer fields are
// left untouched; RemoveResource distinguishes "clear the assignment" from
// "no change", which a bare nil ResourceID cannot.
type UpdateReservationParams struct {
	ResourceID     *uuid.UUID
	RemoveResource bool
	SuiteType      *string
	StartAt        *time.Time
	EndAt          *time.Time
	PriceCents     *int64
	Note           *string
}

type ReservationCommands interface {
	Create(ctx context.Context, p CreateReservationParams) (*queries.ReservationView, error)
	Update(ctx context.Context, tenantID, reservationID uuid.UUID, p UpdateReservationParams) (*queries.ReservationView, error)
	Transition(ctx context.Context, tenantID, reservationID uuid.UUID, next reservation.Status) (*queries.ReservationView, error)
}

type reservationCommandsImpl struct {
	uow     shared.UnitOfWork
	queries queries.ReservationQueries
	clock   clock.Clock
	booking config.BookingConfig
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	q queries.ReservationQueries,
	clk clock.Clock,
	cfg config.Config,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:     uow,
		queries: q,
		clock:   clk,
		booking: cfg.Booking,
	}
}

// Create books a stay. The whole check-then-act sequence runs in one
// transaction: ownership guard, resource rules, allocation, the advisory lock
// on the final resource, the overlap re-check, order number generation and
// the insert. Losing a race surfaces as a conflict, never as a double
// booking.
func (c *reservationCommandsImpl) Create(ctx context.Context, p CreateReservationParams) (*queries.ReservationView, error) {
	period, err := reservation.NewStayPeriod(p.StartAt, p.EndAt)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidStayPeriod)
	}

	var reservationID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		reads := tx.Reads()

		customer, err := reads.CustomerRef(ctx, p.CustomerID)
		if err != nil {
			return mapReadErr(err, errs.ErrCustomerNotFound)
		}
		pet, err := reads.PetRef(ctx, p.PetID)
		if err != nil {
			return mapReadErr(err, errs.ErrPetNotFound)
		}
		svc, err := reads.ServiceByID(ctx, p.ServiceID)
		if err != nil {
			return mapReadErr(err, errs.ErrServiceNotFound)
		}

		refs := []ownedRef{
			{label: "customer", tenantID: customer.TenantID},
			{label: "pet", tenantID: pet.TenantID},
			{label: "service", tenantID: svc.TenantID},
		}

		if p.ResourceID != nil {
			res, err := reads.ResourceByID(ctx, *p.ResourceID)
			if err != nil {
				return mapReadErr(err, errs.ErrResourceNotFound)
			}
			refs = append(refs, ownedRef{label: "resource", tenantID: res.TenantID})
			if err := guardTenantOwnership(p.TenantID, refs...); err != nil {
				return err
			}
			if !res.Active {
				return errs.Mark(errs.Newf("resource %s is not active", res.Name), errs.ErrResourceInactive)
			}
		} else if err := guardTenantOwnership(p.TenantID, refs...); err != nil {
			return err
		}

		entity, err := reservation.NewReservation(reservation.NewReservationParams{
			TenantID:   p.TenantID,
			CustomerID: p.CustomerID,
			PetID:      p.PetID,
			ServiceID:  p.ServiceID,
			Category:   svc.Category,
			ResourceID: p.ResourceID,
			SuiteType:  p.SuiteType,
			Period:     period,
			PriceCents: p.PriceCents,
			Note:       reservation.NewNote(p.Note),
		})
		if err != nil {
			return mapDomainErr(err)
		}

		if entity.ResourceID() == nil && p.SuiteType != nil && *p.SuiteType != "" {
			picked, err := allocateResource(ctx, reads, p.TenantID, *p.SuiteType, p.StartAt, p.EndAt)
			if err != nil {
				return err
			}
			entity.AssignResource(picked.ID)
		}

		if rid := entity.ResourceID(); rid != nil {
			if err := tx.LockResourceWindow(ctx, p.TenantID, *rid); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			conflicts, err := reads.OverlappingReservationIDs(ctx, p.TenantID, *rid, p.StartAt, p.EndAt, nil)
			if err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			if len(conflicts) > 0 {
				return overlapErr(conflicts)
			}
		}

		orderNumber, err := c.nextFreeOrderNumber(ctx, tx, p.TenantID)
		if err != nil {
			return err
		}
		entity.AssignOrderNumber(orderNumber)

		id, err := tx.Reservations().Create(ctx, entity)
		if err != nil {
			// A unique violation here means a legacy import claimed the
			// order number between the existence check and the insert.
			// Callers retry the booking, same as counter exhaustion.
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, errs.ErrOrderNumberExhausted)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		reservationID = id
		return nil
	})
	if err != nil {
		return nil, mapTxErr(err)
	}

	return c.queries.GetByID(ctx, p.TenantID, reservationID)
}

// Update applies a partial edit and, when the window or resource changed,
// re-runs the overlap check under the resource lock with the reservation's
// own id excluded so it never conflicts with itself.
func (c *reservationCommandsImpl) Update(ctx context.Context, tenantID, reservationID uuid.UUID, p UpdateReservationParams) (*queries.ReservationView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		reads := tx.Reads()

		snap, err := reads.ReservationByID(ctx, tenantID, reservationID)
		if err != nil {
			return mapReadErr(err, errs.ErrReservationNotFound)
		}
		svc, err := reads.ServiceByID(ctx, snap.ServiceID)
		if err != nil {
			return mapReadErr(err, errs.ErrServiceNotFound)
		}

		newResourceID := snap.ResourceID
		switch {
		case p.RemoveResource:
			newResourceID = nil
		case p.ResourceID != nil:
			newResourceID = p.ResourceID
		}

		if err := reservation.ValidateResourceRemoval(svc.Category, snap.ResourceID, newResourceID); err != nil {
			return mapDomainErr(err)
		}

		resourceChanged := p.RemoveResource || (p.ResourceID != nil && (snap.ResourceID == nil || *p.ResourceID != *snap.ResourceID))
		if resourceChanged && newResourceID != nil {
			res, err := reads.ResourceByID(ctx, *newResourceID)
			if err != nil {
				return mapReadErr(err, errs.ErrResourceNotFound)
			}
			if err := guardTenantOwnership(tenantID, ownedRef{label: "resource", tenantID: res.TenantID}); err != nil {
				return err
			}
			if !res.Active {
				return errs.Mark(errs.Newf("resource %s is not active", res.Name), errs.ErrResourceInactive)
			}
		}

		newStart := snap.StartAt
		if p.StartAt != nil {
			newStart = *p.StartAt
		}
		newEnd := snap.EndAt
		if p.EndAt != nil {
			newEnd = *p.EndAt
		}
		period, err := reservation.NewStayPeriod(newStart, newEnd)
		if err != nil {
			return errs.Mark(err, errs.ErrInvalidStayPeriod)
		}

		entity := snapshotToEntity(snap)
		if err := entity.Reschedule(period); err != nil {
			return mapDomainErr(err)
		}
		if resourceChanged {
			if newResourceID != nil {
				entity.AssignResource(*newResourceID)
			} else {
				entity.ClearResource()
			}
		}

		windowChanged := p.StartAt != nil || p.EndAt != nil
		if rid := entity.ResourceID(); rid != nil && (windowChanged || resourceChanged) {
			if err := tx.LockResourceWindow(ctx, tenantID, *rid); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			exclude := snap.ID
			conflicts, err := reads.OverlappingReservationIDs(ctx, tenantID, *rid, newStart, newEnd, &exclude)
			if err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			if len(conflicts) > 0 {
				return overlapErr(conflicts)
			}
		}

		if err := applyScalarPatch(entity, p); err != nil {
			return err
		}

		if err := tx.Reservations().Update(ctx, entity); err != nil {
			return mapReadErr(err, errs.ErrReservationNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, mapTxErr(err)
	}

	return c.queries.GetByID(ctx, tenantID, reservationID)
}

// Transition moves the reservation along the status machine. Transitions out
// of the blocking set implicitly free the resource; no lock is needed because
// relaxing the overlap invariant cannot create a double booking.
func (c *reservationCommandsImpl) Transition(ctx context.Context, tenantID, reservationID uuid.UUID, next reservation.Status) (*queries.ReservationView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().ReservationByID(ctx, tenantID, reservationID)
		if err != nil {
			return mapReadErr(err, errs.ErrReservationNotFound)
		}

		entity := snapshotToEntity(snap)
		if err := entity.TransitionTo(next); err != nil {
			return mapDomainErr(err)
		}

		if err := tx.Reservations().Update(ctx, entity); err != nil {
			return mapReadErr(err, errs.ErrReservationNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, mapTxErr(err)
	}

	return c.queries.GetByID(ctx, tenantID, reservationID)
}

// nextFreeOrderNumber advances the atomic counter and, when an imported
// legacy record already holds the produced number, advances again up to the
// configured retry cap. Checking for existence keeps the retry inside the
// open transaction without tripping a unique violation, which would abort it.
func (c *reservationCommandsImpl) nextFreeOrderNumber(ctx context.Context, tx shared.Tx, tenantID uuid.UUID) (string, error) {
	day := c.clock.Today()

	for attempt := 0; attempt < c.booking.SequenceMaxRetries; attempt++ {
		orderNumber, err := tx.Sequences().NextOrderNumber(ctx, tenantID, day, c.booking.OrderPrefix)
		if err != nil {
			return "", errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		taken, err := tx.Sequences().OrderNumberTaken(ctx, tenantID, orderNumber)
		if err != nil {
			return "", errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !taken {
			return orderNumber, nil
		}
	}

	return "", errs.Mark(
		errs.Newf("could not produce a free order number after %d attempts", c.booking.SequenceMaxRetries),
		errs.ErrOrderNumberExhausted,
	)
}

func snapshotToEntity(snap *shared.ReservationSnapshot) *reservation.Reservation {
	period, _ := reservation.NewStayPeriod(snap.StartAt, snap.EndAt)
	var note reservation.Note
	if snap.Note != nil {
		note = reservation.NewNote(*snap.Note)
	}
	return reservation.ReconstructReservation(
		snap.ID, snap.TenantID, snap.CustomerID, snap.PetID, snap.ServiceID,
		snap.ResourceID, snap.SuiteType, period,
		reservation.Status(snap.Status), snap.OrderNumber,
		snap.PriceCents, snap.ExternalID, note,
		snap.CreatedAt, snap.UpdatedAt,
	)
}

func applyScalarPatch(entity *reservation.Reservation, p UpdateReservationParams) error {
	if p.PriceCents != nil {
		if err := entity.SetPriceCents(*p.PriceCents); err != nil {
			return errs.Mark(err, errs.ErrInvalidPrice)
		}
	}
	if p.SuiteType != nil {
		entity.SetSuiteType(*p.SuiteType)
	}
	if p.Note != nil {
		entity.SetNote(reservation.NewNote(*p.Note))
	}
	return nil
}

func overlapErr(conflicts []uuid.UUID) error {
	return errs.Mark(
		errs.Newf("window overlaps %d existing reservation(s), first %s", len(conflicts), conflicts[0]),
		errs.ErrReservationOverlap,
	)
}

// mapReadErr translates repository not-found kinds into the domain sentinel
// and everything else into a storage failure.
func mapReadErr(err error, notFound error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, notFound)
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}

func mapDomainErr(err error) error {
	switch {
	case errors.Is(err, reservation.ErrResourceRequired):
		return errs.Mark(err, errs.ErrResourceRequired)
	case errors.Is(err, reservation.ErrResourceRemovalBlocked):
		return errs.Mark(err, errs.ErrResourceRemovalBlocked)
	case errors.Is(err, reservation.ErrInvalidTransition), errors.Is(err, reservation.ErrInvalidStatus), errors.Is(err, reservation.ErrTerminalState):
		return errs.Mark(err, errs.ErrInvalidStatusTransition)
	case errors.Is(err, reservation.ErrNegativePrice):
		return errs.Mark(err, errs.ErrInvalidPrice)
	default:
		return err
	}
}

// mapTxErr classifies transaction-level failures: a serialization or deadlock
// abort means another writer won the race, which callers see as a conflict.
func mapTxErr(err error) error {
	if err == nil {
		return nil
	}
	if infra.IsKind(err, infra.KindConflict) {
		return errs.Mark(err, errs.ErrConcurrentReservation)
	}
	return err
}
