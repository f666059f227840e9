package progressionrouter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/trace"

	progressionservice "github.com/jollyfox-guild/vale-bot/app/modules/progression/application"
	progressionhandlers "github.com/jollyfox-guild/vale-bot/app/modules/progression/infrastructure/handlers"
	"github.com/jollyfox-guild/vale-bot/app/eventbus"
	progressionevents "github.com/jollyfox-guild/vale-bot/app/shared/events/progression"
	"github.com/jollyfox-guild/vale-bot/app/shared/handlerwrapper"
)

// ProgressionRouter handles routing for progression module events.
type ProgressionRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	tracer     trace.Tracer
}

// NewProgressionRouter creates a new ProgressionRouter.
func NewProgressionRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	tracer trace.Tracer,
) *ProgressionRouter {
	return &ProgressionRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		tracer:     tracer,
	}
}

// Configure sets up the router with the necessary handlers and dependencies.
func (r *ProgressionRouter) Configure(routerCtx context.Context, service progressionservice.Service) error {
	handlers := progressionhandlers.NewProgressionHandlers(service, r.logger)

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

func registerHandler[T any](
	deps handlerDeps,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "progression." + topic

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
func (r *ProgressionRouter) RegisterHandlers(ctx context.Context, handlers progressionhandlers.Handlers) error {
	deps := handlerDeps{
		router:     r.Router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
	}

	registerHandler(deps, progressionevents.ProfileRequested, handlers.HandleProfileRequest)
	registerHandler(deps, progressionevents.ScoreboardRequested, handlers.HandleScoreboardRequest)
	registerHandler(deps, progressionevents.JoinFactionRequested, handlers.HandleJoinFaction)

	return nil
}

// Close stops the router.
func (r *ProgressionRouter) Close() error {
	return r.Router.Close()
}
