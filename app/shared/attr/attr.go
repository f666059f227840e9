// Package attr provides slog attribute helpers shared across modules.
package attr

import (
	"context"
	"log/slog"
	"time"

	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
)

func String(key, value string) slog.Attr         { return slog.String(key, value) }
func Int(key string, value int) slog.Attr        { return slog.Int(key, value) }
func Int64(key string, value int64) slog.Attr    { return slog.Int64(key, value) }
func Bool(key string, value bool) slog.Attr      { return slog.Bool(key, value) }
func Any(key string, value any) slog.Attr        { return slog.Any(key, value) }
func Time(key string, value time.Time) slog.Attr { return slog.Time(key, value) }

func Duration(key string, value time.Duration) slog.Attr {
	return slog.Duration(key, value)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

func UserID(key string, id sharedtypes.UserID) slog.Attr {
	return slog.String(key, string(id))
}

func GuildID(key string, id sharedtypes.GuildID) slog.Attr {
	return slog.String(key, string(id))
}

func FactionID(key string, id sharedtypes.FactionID) slog.Attr {
	return slog.String(key, string(id))
}

type correlationIDKey struct{}

// ContextWithCorrelationID stores a correlation id for later log extraction.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// ExtractCorrelationID pulls the correlation id off the context so log lines
// can be stitched back to the originating command.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok && id != "" {
		return slog.String("correlation_id", id)
	}
	return slog.String("correlation_id", "")
}
