//go:build unit

package reservation_test

import (
	"testing"

	"pawsuite/internal/domain/reservation"
	"pawsuite/internal/domain/service"
	"pawsuite/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entityCase struct {
	name   string
	mutate func(*builder.ReservationBuilder)
	errIs  error
}

func TestNewReservation(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, reservation.StatusPending, actual.Status())
		assert.NotNil(t, actual.ResourceID())
		assert.Empty(t, actual.OrderNumber(), "order number is assigned inside the creation transaction")
	})

	t.Run("resource requirement", func(t *testing.T) {
		suite := "standard"
		runEntityCases(t, []entityCase{
			{
				name: "boarding with resource",
			},
			{
				name: "boarding with suite type only",
				mutate: func(b *builder.ReservationBuilder) {
					b.WithResourceID(nil).WithSuiteType(&suite)
				},
			},
			{
				name: "boarding with neither",
				mutate: func(b *builder.ReservationBuilder) {
					b.WithResourceID(nil).WithSuiteType(nil)
				},
				errIs: reservation.ErrResourceRequired,
			},
			{
				name: "boarding with empty suite type",
				mutate: func(b *builder.ReservationBuilder) {
					empty := ""
					b.WithResourceID(nil).WithSuiteType(&empty)
				},
				errIs: reservation.ErrResourceRequired,
			},
			{
				name: "daycare with neither",
				mutate: func(b *builder.ReservationBuilder) {
					b.AsDaycare().WithResourceID(nil).WithSuiteType(nil)
				},
				errIs: reservation.ErrResourceRequired,
			},
			{
				name: "grooming with neither",
				mutate: func(b *builder.ReservationBuilder) {
					b.AsGrooming()
				},
			},
			{
				name: "grooming may still pin a resource",
				mutate: func(b *builder.ReservationBuilder) {
					id := uuid.New()
					b.AsGrooming().WithResourceID(&id)
				},
			},
		})
	})

	t.Run("negative price", func(t *testing.T) {
		runEntityCases(t, []entityCase{
			{
				name:   "negative price rejected",
				mutate: func(b *builder.ReservationBuilder) { b.WithPriceCents(-1) },
				errIs:  reservation.ErrNegativePrice,
			},
			{
				name:   "zero price allowed",
				mutate: func(b *builder.ReservationBuilder) { b.WithPriceCents(0) },
			},
		})
	})
}

func TestStatusMachine(t *testing.T) {
	cases := []struct {
		from    reservation.Status
		to      reservation.Status
		allowed bool
	}{
		{reservation.StatusPending, reservation.StatusConfirmed, true},
		{reservation.StatusPending, reservation.StatusCancelled, true},
		{reservation.StatusPending, reservation.StatusNoShow, true},
		{reservation.StatusPending, reservation.StatusCompleted, false},
		{reservation.StatusConfirmed, reservation.StatusCancelled, true},
		{reservation.StatusConfirmed, reservation.StatusCompleted, true},
		{reservation.StatusConfirmed, reservation.StatusNoShow, true},
		{reservation.StatusConfirmed, reservation.StatusPending, false},
		{reservation.StatusCancelled, reservation.StatusConfirmed, false},
		{reservation.StatusCompleted, reservation.StatusCancelled, false},
		{reservation.StatusNoShow, reservation.StatusConfirmed, false},
	}

	for _, c := range cases {
		name := string(c.from) + " to " + string(c.to)
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, c.allowed, c.from.CanTransitionTo(c.to))
		})
	}
}

func TestTransitionTo(t *testing.T) {
	t.Run("valid transition", func(t *testing.T) {
		r, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, r.TransitionTo(reservation.StatusConfirmed))
		assert.Equal(t, reservation.StatusConfirmed, r.Status())
	})

	t.Run("invalid transition", func(t *testing.T) {
		r, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)

		err = r.TransitionTo(reservation.StatusCompleted)
		require.ErrorIs(t, err, reservation.ErrInvalidTransition)
		assert.Equal(t, reservation.StatusPending, r.Status())
	})

	t.Run("unknown status", func(t *testing.T) {
		r, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)

		err = r.TransitionTo(reservation.Status("ARCHIVED"))
		require.ErrorIs(t, err, reservation.ErrInvalidStatus)
	})
}

func TestBlocksResource(t *testing.T) {
	assert.True(t, reservation.StatusPending.BlocksResource())
	assert.True(t, reservation.StatusConfirmed.BlocksResource())
	// Completed stays remain on the books but the pet has left; cancellation
	// and no-show free the window immediately.
	assert.True(t, reservation.StatusCompleted.BlocksResource())
	assert.False(t, reservation.StatusCancelled.BlocksResource())
	assert.False(t, reservation.StatusNoShow.BlocksResource())
}

func TestReschedule(t *testing.T) {
	t.Run("terminal reservation cannot move", func(t *testing.T) {
		r, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, r.TransitionTo(reservation.StatusCancelled))

		err = r.Reschedule(r.Period())
		require.ErrorIs(t, err, reservation.ErrTerminalState)
	})
}

func TestValidateResourceRemoval(t *testing.T) {
	existing := uuid.New()
	replacement := uuid.New()

	cases := []struct {
		name     string
		category service.Category
		existing *uuid.UUID
		patched  *uuid.UUID
		errIs    error
	}{
		{"boarding cannot drop resource", service.CategoryBoarding, &existing, nil, reservation.ErrResourceRemovalBlocked},
		{"boarding may swap resource", service.CategoryBoarding, &existing, &replacement, nil},
		{"boarding without resource yet", service.CategoryBoarding, nil, nil, nil},
		{"grooming may drop resource", service.CategoryGrooming, &existing, nil, nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := reservation.ValidateResourceRemoval(c.category, c.existing, c.patched)
			if c.errIs == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, c.errIs)
			}
		})
	}
}

func runEntityCases(t *testing.T, cases []entityCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := builder.NewReservationBuilder()
			if c.mutate != nil {
				b.With(c.mutate)
			}
			actual, err := b.BuildDomain()

			if c.errIs == nil {
				require.NoError(t, err)
				require.NotNil(t, actual)
			} else {
				require.Nil(t, actual)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
