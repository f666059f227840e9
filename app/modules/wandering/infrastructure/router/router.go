package wanderingrouter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/trace"

	wanderingservice "github.com/jollyfox-guild/vale-bot/app/modules/wandering/application"
	wanderinghandlers "github.com/jollyfox-guild/vale-bot/app/modules/wandering/infrastructure/handlers"
	"github.com/jollyfox-guild/vale-bot/app/eventbus"
	wanderingevents "github.com/jollyfox-guild/vale-bot/app/shared/events/wandering"
	"github.com/jollyfox-guild/vale-bot/app/shared/handlerwrapper"
)

// WanderingRouter handles routing for wandering module events.
type WanderingRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	tracer     trace.Tracer
}

// NewWanderingRouter creates a new WanderingRouter.
func NewWanderingRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	tracer trace.Tracer,
) *WanderingRouter {
	return &WanderingRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		tracer:     tracer,
	}
}

// Configure sets up the router with the necessary handlers and dependencies.
func (r *WanderingRouter) Configure(routerCtx context.Context, wanderingService wanderingservice.Service) error {
	handlers := wanderinghandlers.NewWanderingHandlers(wanderingService, r.logger)

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
	)

	if err := r.RegisterHandlers(routerCtx, handlers); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}
	return nil
}

type handlerDeps struct {
	router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	logger     *slog.Logger
	tracer     trace.Tracer
}

// registerHandler registers a pure transformation-pattern handler with typed payload.
func registerHandler[T any](
	deps handlerDeps,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "wandering." + topic

	deps.router.AddHandler(
		handlerName,
		topic,
		deps.subscriber,
		"", // destination topic comes from message metadata
		deps.publisher,
		handlerwrapper.WrapTyped(
			handlerName,
			deps.logger,
			deps.tracer,
			handler,
		),
	)
}

// RegisterHandlers registers event handlers using the pure transformation pattern.
func (r *WanderingRouter) RegisterHandlers(ctx context.Context, handlers wanderinghandlers.Handlers) error {
	deps := handlerDeps{
		router:     r.Router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
	}

	registerHandler(deps, wanderingevents.SpawnRequested, handlers.HandleSpawn)
	registerHandler(deps, wanderingevents.JoinRequested, handlers.HandleJoin)
	registerHandler(deps, wanderingevents.ResolveRequested, handlers.HandleResolve)
	registerHandler(deps, wanderingevents.StateRequested, handlers.HandleGetState)

	return nil
}

// Close stops the router.
func (r *WanderingRouter) Close() error {
	return r.Router.Close()
}
