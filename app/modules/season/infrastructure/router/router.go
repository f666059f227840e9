package seasonrouter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/trace"

	seasonservice "github.com/jollyfox-guild/vale-bot/app/modules/season/application"
	seasonhandlers "github.com/jollyfox-guild/vale-bot/app/modules/season/infrastructure/handlers"
	"github.com/jollyfox-guild/vale-bot/app/eventbus"
	seasonevents "github.com/jollyfox-guild/vale-bot/app/shared/events/season"
	"github.com/jollyfox-guild/vale-bot/app/shared/handlerwrapper"
)

// SeasonRouter handles routing for season module events.
type SeasonRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	tracer     trace.Tracer
}

// NewSeasonRouter creates a new SeasonRouter.
func NewSeasonRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	tracer trace.Tracer,
) *SeasonRouter {
	return &SeasonRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		tracer:     tracer,
	}
}

// Configure sets up the router with the necessary handlers and dependencies.
func (r *SeasonRouter) Configure(routerCtx context.Context, seasonService seasonservice.Service) error {
	handlers := seasonhandlers.NewSeasonHandlers(seasonService, r.logger)

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
	handlerName := "season." + topic

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
func (r *SeasonRouter) RegisterHandlers(ctx context.Context, handlers seasonhandlers.Handlers) error {
	deps := handlerDeps{
		router:     r.Router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
	}

	registerHandler(deps, seasonevents.VoteRequested, handlers.HandleVote)
	registerHandler(deps, seasonevents.ResolveRequested, handlers.HandleResolve)
	registerHandler(deps, seasonevents.StartRequested, handlers.HandleStartSeason)
	registerHandler(deps, seasonevents.ResetRequested, handlers.HandleResetSeason)
	registerHandler(deps, seasonevents.StateRequested, handlers.HandleGetState)
	registerHandler(deps, seasonevents.PowerUnlocked, handlers.HandlePowerUnlocked)

	return nil
}

// Close stops the router.
func (r *SeasonRouter) Close() error {
	return r.Router.Close()
}
