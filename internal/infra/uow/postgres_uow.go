package uow

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pawsuite/internal/infra"
	"pawsuite/internal/infra/db"
	"pawsuite/internal/infra/readstore"
	"pawsuite/internal/infra/repository"
	"pawsuite/internal/pkg/errs"
	"pawsuite/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	errTransactionBegin  = errs.New("failed to begin transaction")
	errTransactionCommit = errs.New("failed to commit transaction")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

// Within runs fn inside one transaction. The booking engine's check-and-write
// sequences rely on this being a single atomic unit; a serialization or
// deadlock abort surfaces as a CONFLICT-kind error and is never retried here,
// so the losing concurrent writer sees 409 (retrying is the caller's call).
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	defer func() {
		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "error", rollbackErr.Error())
			}
		}
	}()

	tx := &pgTx{dbtx: pgxTx}

	if err := fn(ctx, tx); err != nil {
		return err
	}

	if err := pgxTx.Commit(ctx); err != nil {
		return infra.WrapRepoErr("commit failed", errs.Mark(err, errTransactionCommit))
	}

	return nil
}

type pgTx struct {
	dbtx db.Querier

	// Lazy-initialized repositories
	reservationRepo shared.ReservationRepository
	sequenceRepo    shared.SequenceRepository
	commandReads    shared.CommandReads
}

// LockResourceWindow takes a transaction-scoped advisory lock keyed on the
// (tenant, resource) pair. Every writer that may touch the resource's
// schedule takes this lock before the overlap check, so the check and the
// insert/update commit as one serialized unit per resource. Released
// automatically at commit/rollback.
func (t *pgTx) LockResourceWindow(ctx context.Context, tenantID, resourceID uuid.UUID) error {
	_, err := t.dbtx.Exec(ctx,
		"SELECT pg_advisory_xact_lock(hashtextextended($1, 0))",
		tenantID.String()+":"+resourceID.String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to acquire resource lock", err)
	}
	return nil
}

func (t *pgTx) Reservations() shared.ReservationRepository {
	if t.reservationRepo == nil {
		t.reservationRepo = repository.NewReservationRepository(t.dbtx)
	}
	return t.reservationRepo
}

func (t *pgTx) Sequences() shared.SequenceRepository {
	if t.sequenceRepo == nil {
		t.sequenceRepo = repository.NewSequenceRepository(t.dbtx)
	}
	return t.sequenceRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = NewCommandReads(t.dbtx)
	}
	return t.commandReads
}

// CommandReads bundles the read stores the command side uses, bound to the
// same connection as the writes so in-transaction checks see a consistent
// view.
type commandReads struct {
	dbtx db.Querier

	// Lazy-initialized readstores
	entityRefStore   *readstore.EntityRefReadStore
	resourceStore    *readstore.ResourceReadStore
	reservationStore *readstore.ReservationReadStore
	availability     *readstore.AvailabilityIndex
}

func NewCommandReads(q db.Querier) shared.CommandReads {
	return &commandReads{dbtx: q}
}

func (r *commandReads) refs() *readstore.EntityRefReadStore {
	if r.entityRefStore == nil {
		r.entityRefStore = readstore.NewEntityRefReadStore(r.dbtx)
	}
	return r.entityRefStore
}

func (r *commandReads) resources() *readstore.ResourceReadStore {
	if r.resourceStore == nil {
		r.resourceStore = readstore.NewResourceReadStore(r.dbtx)
	}
	return r.resourceStore
}

func (r *commandReads) reservations() *readstore.ReservationReadStore {
	if r.reservationStore == nil {
		r.reservationStore = readstore.NewReservationReadStore(r.dbtx)
	}
	return r.reservationStore
}

func (r *commandReads) index() *readstore.AvailabilityIndex {
	if r.availability == nil {
		r.availability = readstore.NewAvailabilityIndex(r.dbtx)
	}
	return r.availability
}

func (r *commandReads) CustomerRef(ctx context.Context, id uuid.UUID) (*shared.EntityRef, error) {
	return r.refs().CustomerRef(ctx, id)
}

func (r *commandReads) PetRef(ctx context.Context, id uuid.UUID) (*shared.EntityRef, error) {
	return r.refs().PetRef(ctx, id)
}

func (r *commandReads) ServiceByID(ctx context.Context, id uuid.UUID) (*shared.ServiceSnapshot, error) {
	return r.refs().ServiceByID(ctx, id)
}

func (r *commandReads) ResourceByID(ctx context.Context, id uuid.UUID) (*shared.ResourceSnapshot, error) {
	return r.resources().FindByID(ctx, id)
}

func (r *commandReads) ActiveResourcesByType(ctx context.Context, tenantID uuid.UUID, suiteType string) ([]*shared.ResourceSnapshot, error) {
	return r.resources().ActiveByType(ctx, tenantID, suiteType)
}

func (r *commandReads) OverlappingReservationIDs(ctx context.Context, tenantID, resourceID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]uuid.UUID, error) {
	return r.index().OverlappingReservationIDs(ctx, tenantID, resourceID, start, end, excludeID)
}

func (r *commandReads) ReservationByID(ctx context.Context, tenantID, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	return r.reservations().SnapshotByID(ctx, tenantID, id)
}
