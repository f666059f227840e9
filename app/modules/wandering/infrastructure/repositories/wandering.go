package wanderingdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"

	"github.com/jollyfox-guild/vale-bot/app/shared/attr"
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
	wanderingtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/wandering"
)

type WanderingDBImpl struct {
	DB     *bun.DB
	Logger *slog.Logger
}

func (db *WanderingDBImpl) Load(ctx context.Context, guildID sharedtypes.GuildID) (*wanderingtypes.Event, error) {
	var row WanderingEventRow
	err := db.DB.NewSelect().Model(&row).Where("guild_id = ?", guildID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load wandering event: %w", err)
	}

	if len(row.Event) == 0 {
		return nil, nil
	}

	var event wanderingtypes.Event
	if err := json.Unmarshal(row.Event, &event); err != nil {
		// Losing one event beats blocking the spawner forever.
		db.Logger.ErrorContext(ctx, "Discarding corrupt wandering event document",
			attr.GuildID("guild_id", guildID),
			attr.Error(err),
		)
		return nil, nil
	}
	if event.EventID == "" {
		return nil, nil
	}

	event.Normalize()
	return &event, nil
}

func (db *WanderingDBImpl) Save(ctx context.Context, guildID sharedtypes.GuildID, event *wanderingtypes.Event) error {
	var raw json.RawMessage
	if event != nil {
		b, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to marshal wandering event: %w", err)
		}
		raw = b
	}

	row := &WanderingEventRow{
		GuildID:   guildID,
		Event:     raw,
		UpdatedAt: time.Now().UTC(),
	}
	_, err := db.DB.NewInsert().
		Model(row).
		On("CONFLICT (guild_id) DO UPDATE").
		Set("event = EXCLUDED.event").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save wandering event: %w", err)
	}
	return nil
}
