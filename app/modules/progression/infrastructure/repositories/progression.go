package progressiondb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	progressiontypes "github.com/jollyfox-guild/vale-bot/app/shared/types/progression"
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
)

type ProgressionDBImpl struct {
	DB *bun.DB
}

func (db *ProgressionDBImpl) GetPlayer(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID) (*progressiontypes.Player, error) {
	var row PlayerRow
	err := db.DB.NewSelect().Model(&row).
		Where("guild_id = ?", guildID).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return progressiontypes.NewPlayer(userID), nil
		}
		return nil, fmt.Errorf("failed to load player: %w", err)
	}
	return toPlayer(&row), nil
}

func toPlayer(row *PlayerRow) *progressiontypes.Player {
	return &progressiontypes.Player{
		UserID:           row.UserID,
		FactionID:        row.FactionID,
		XP:               row.XP,
		Level:            row.Level,
		MonstersSeason:   row.MonstersSeason,
		MonstersLifetime: row.MonstersLifetime,
	}
}

func (db *ProgressionDBImpl) SavePlayer(ctx context.Context, guildID sharedtypes.GuildID, player *progressiontypes.Player) error {
	row := &PlayerRow{
		GuildID:          guildID,
		UserID:           player.UserID,
		FactionID:        player.FactionID,
		XP:               player.XP,
		Level:            player.Level,
		MonstersSeason:   player.MonstersSeason,
		MonstersLifetime: player.MonstersLifetime,
		UpdatedAt:        time.Now().UTC(),
	}
	_, err := db.DB.NewInsert().
		Model(row).
		On("CONFLICT (guild_id, user_id) DO UPDATE").
		Set("faction_id = EXCLUDED.faction_id").
		Set("xp = EXCLUDED.xp").
		Set("level = EXCLUDED.level").
		Set("monsters_season = EXCLUDED.monsters_season").
		Set("monsters_lifetime = EXCLUDED.monsters_lifetime").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save player: %w", err)
	}
	return nil
}

func (db *ProgressionDBImpl) ResetSeasonCounters(ctx context.Context, guildID sharedtypes.GuildID) error {
	_, err := db.DB.NewUpdate().
		Model((*PlayerRow)(nil)).
		Set("monsters_season = 0").
		Set("updated_at = current_timestamp").
		Where("guild_id = ?", guildID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to reset season counters: %w", err)
	}
	return nil
}

func (db *ProgressionDBImpl) GetBoard(ctx context.Context, guildID sharedtypes.GuildID) (*progressiontypes.Board, error) {
	var row BoardRow
	err := db.DB.NewSelect().Model(&row).Where("guild_id = ?", guildID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return progressiontypes.NewBoard(), nil
		}
		return nil, fmt.Errorf("failed to load quest board: %w", err)
	}
	board := &progressiontypes.Board{
		SeasonID:      row.SeasonID,
		GlobalPoints:  row.GlobalPoints,
		FactionPoints: row.FactionPoints,
		ChannelID:     row.ChannelID,
		MessageID:     row.MessageID,
	}
	board.Normalize()
	return board, nil
}

func (db *ProgressionDBImpl) SaveBoard(ctx context.Context, guildID sharedtypes.GuildID, board *progressiontypes.Board) error {
	row := &BoardRow{
		GuildID:       guildID,
		SeasonID:      board.SeasonID,
		GlobalPoints:  board.GlobalPoints,
		FactionPoints: board.FactionPoints,
		ChannelID:     board.ChannelID,
		MessageID:     board.MessageID,
		UpdatedAt:     time.Now().UTC(),
	}
	_, err := db.DB.NewInsert().
		Model(row).
		On("CONFLICT (guild_id) DO UPDATE").
		Set("season_id = EXCLUDED.season_id").
		Set("global_points = EXCLUDED.global_points").
		Set("faction_points = EXCLUDED.faction_points").
		Set("channel_id = EXCLUDED.channel_id").
		Set("message_id = EXCLUDED.message_id").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save quest board: %w", err)
	}
	return nil
}
