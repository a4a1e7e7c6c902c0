package components

import (
	"pawsuite/internal/handler/middleware"
	"pawsuite/internal/infra/readstore"
	"pawsuite/internal/infra/tenantcache"
	"pawsuite/internal/infra/uow"
	"pawsuite/internal/usecase/queries"
	"pawsuite/internal/usecase/shared"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	readstoreModule,
	repositoryModule,
	tenantModule,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Reservation
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
		),
		// Availability
		fx.Annotate(
			readstore.NewAvailabilityIndex,
			fx.As(new(queries.AvailabilityReadStore)),
		),
		// Resource
		fx.Annotate(
			readstore.NewResourceReadStore,
			fx.As(new(queries.ResourceReadStore)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
	),
)

var tenantModule = fx.Module("persistence/tenant",
	fx.Provide(
		fx.Annotate(
			readstore.NewTenantReadStore,
			fx.As(new(tenantcache.SlugStore)),
		),
		fx.Annotate(
			tenantcache.NewResolver,
			fx.As(new(middleware.TenantResolver)),
		),
	),
)
