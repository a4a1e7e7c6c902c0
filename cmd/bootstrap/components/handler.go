package components

import (
	"pawsuite/internal/handler"
	"pawsuite/internal/handler/api"
	"pawsuite/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		api.NewAvailabilityHandler,
		api.NewResourceHandler,
		middleware.NewAuthMiddleware,
		middleware.NewTenantMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
