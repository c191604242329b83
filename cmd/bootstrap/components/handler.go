package components

import (
	"ticket-allocator/internal/handler"
	"ticket-allocator/internal/handler/api"
	"ticket-allocator/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewQueueHandler,
		api.NewReservationHandler,
		api.NewCategoryHandler,
		api.NewAdminHandler,
		api.NewPaymentWebhookHandler,
		middleware.NewAuthMiddleware,
		newHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

type handlerParams struct {
	fx.In

	Queue       *api.QueueHandler
	Reservation *api.ReservationHandler
	Category    *api.CategoryHandler
	Admin       *api.AdminHandler
	Webhook     *api.PaymentWebhookHandler
}

func newHandlers(p handlerParams) handler.Handlers {
	return handler.Handlers{
		Queue:       p.Queue,
		Reservation: p.Reservation,
		Category:    p.Category,
		Admin:       p.Admin,
		Webhook:     p.Webhook,
	}
}
