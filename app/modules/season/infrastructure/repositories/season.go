package seasondb

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
	seasontypes "github.com/jollyfox-guild/vale-bot/app/shared/types/season"
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
)

type SeasonDBImpl struct {
	DB     *bun.DB
	Logger *slog.Logger
}

func (db *SeasonDBImpl) Load(ctx context.Context, guildID sharedtypes.GuildID) (*seasontypes.SeasonState, error) {
	var row SeasonStateRow
	err := db.DB.NewSelect().Model(&row).Where("guild_id = ?", guildID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return seasontypes.NewSeasonState(), nil
		}
		return nil, fmt.Errorf("failed to load season state: %w", err)
	}

	var state seasontypes.SeasonState
	if err := json.Unmarshal(row.State, &state); err != nil {
		// Losing one season's state beats crashing the scheduler forever.
		db.Logger.ErrorContext(ctx, "Discarding corrupt season document",
			attr.GuildID("guild_id", guildID),
			attr.Error(err),
		)
		return seasontypes.NewSeasonState(), nil
	}

	state.Normalize()
	return &state, nil
}

func (db *SeasonDBImpl) Save(ctx context.Context, guildID sharedtypes.GuildID, state *seasontypes.SeasonState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal season state: %w", err)
	}

	row := &SeasonStateRow{
		GuildID:   guildID,
		State:     raw,
		UpdatedAt: time.Now().UTC(),
	}
	_, err = db.DB.NewInsert().
		Model(row).
		On("CONFLICT (guild_id) DO UPDATE").
		Set("state = EXCLUDED.state").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save season state: %w", err)
	}
	return nil
}
