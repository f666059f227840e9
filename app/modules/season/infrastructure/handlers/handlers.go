package seasonhandlers

import (
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	seasonservice "github.com/jollyfox-guild/vale-bot/app/modules/season/application"
	"github.com/jollyfox-guild/vale-bot/app/shared/handlerwrapper"
	"github.com/jollyfox-guild/vale-bot/app/shared/results"
)

// SeasonHandlers implements the Handlers interface for season events.
type SeasonHandlers struct {
	service seasonservice.Service
	logger  *slog.Logger

	// refreshLimiter coalesces board refresh notifications so a burst of
	// votes redraws the board once, not once per vote.
	refreshLimiter *rate.Limiter
}

// NewSeasonHandlers creates a new SeasonHandlers instance.
func NewSeasonHandlers(service seasonservice.Service, logger *slog.Logger) *SeasonHandlers {
	return &SeasonHandlers{
		service:        service,
		logger:         logger,
		refreshLimiter: rate.NewLimiter(rate.Every(5*time.Second), 1),
	}
}

// mapOperationResult converts a service OperationResult to handler Results.
func mapOperationResult(
	result results.OperationResult,
	successTopic, failureTopic string,
) []handlerwrapper.Result {
	if result.Success != nil {
		return []handlerwrapper.Result{{Topic: successTopic, Payload: result.Success}}
	}
	if result.Failure != nil {
		return []handlerwrapper.Result{{Topic: failureTopic, Payload: result.Failure}}
	}
	return nil
}
