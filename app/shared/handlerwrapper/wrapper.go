// Package handlerwrapper adapts typed, pure transformation handlers to
// watermill. A wrapped handler unmarshals its JSON payload, runs the typed
// function, and turns the returned Results into outgoing messages whose
// topic is carried in metadata for the metadata-routing publisher.
package handlerwrapper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/jollyfox-guild/vale-bot/app/shared/attr"
	"go.opentelemetry.io/otel/trace"
)

// TopicMetadataKey is where outgoing messages carry their destination topic.
const TopicMetadataKey = "topic"

// Result is one outgoing event produced by a handler.
type Result struct {
	Topic    string
	Payload  any
	Metadata map[string]string
}

// WrapTyped converts a typed handler into a watermill HandlerFunc.
func WrapTyped[T any](
	handlerName string,
	logger *slog.Logger,
	tracer trace.Tracer,
	handler func(ctx context.Context, payload *T) ([]Result, error),
) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		ctx := msg.Context()
		if correlationID := middleware.MessageCorrelationID(msg); correlationID != "" {
			ctx = attr.ContextWithCorrelationID(ctx, correlationID)
		}

		ctx, span := tracer.Start(ctx, handlerName)
		defer span.End()

		var payload T
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			// A malformed payload can never succeed on retry; drop it.
			logger.ErrorContext(ctx, "Dropping undecodable message",
				attr.ExtractCorrelationID(ctx),
				attr.String("handler", handlerName),
				attr.Error(err),
			)
			return nil, nil
		}

		handlerResults, err := handler(ctx, &payload)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("%s: %w", handlerName, err)
		}

		out := make([]*message.Message, 0, len(handlerResults))
		for _, result := range handlerResults {
			raw, err := json.Marshal(result.Payload)
			if err != nil {
				span.RecordError(err)
				return nil, fmt.Errorf("%s: marshal result for %s: %w", handlerName, result.Topic, err)
			}

			outMsg := message.NewMessage(watermill.NewUUID(), raw)
			outMsg.SetContext(ctx)
			outMsg.Metadata.Set(TopicMetadataKey, result.Topic)
			for k, v := range result.Metadata {
				outMsg.Metadata.Set(k, v)
			}
			middleware.SetCorrelationID(middleware.MessageCorrelationID(msg), outMsg)
			out = append(out, outMsg)
		}

		return out, nil
	}
}
