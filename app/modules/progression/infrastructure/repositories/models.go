package progressiondb

import (
	"time"

	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
	"github.com/uptrace/bun"
)

// PlayerRow is one member's progression record.
type PlayerRow struct {
	bun.BaseModel `bun:"table:players,alias:p"`

	GuildID          sharedtypes.GuildID   `bun:"guild_id,pk,notnull,type:varchar(20)"`
	UserID           sharedtypes.UserID    `bun:"user_id,pk,notnull,type:varchar(20)"`
	FactionID        sharedtypes.FactionID `bun:"faction_id,nullzero,type:varchar(20)"`
	XP               int                   `bun:"xp,notnull,default:0"`
	Level            int                   `bun:"level,notnull,default:1"`
	MonstersSeason   int                   `bun:"monsters_season,notnull,default:0"`
	MonstersLifetime int                   `bun:"monsters_lifetime,notnull,default:0"`
	CreatedAt        time.Time             `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt        time.Time             `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// BoardRow is the per-guild seasonal scoreboard.
type BoardRow struct {
	bun.BaseModel `bun:"table:quest_boards,alias:qb"`

	GuildID       sharedtypes.GuildID           `bun:"guild_id,pk,notnull,type:varchar(20)"`
	SeasonID      string                        `bun:"season_id,notnull,default:'default_season'"`
	GlobalPoints  int                           `bun:"global_points,notnull,default:0"`
	FactionPoints map[sharedtypes.FactionID]int `bun:"faction_points,type:jsonb"`
	ChannelID     string                        `bun:"channel_id,nullzero,type:varchar(20)"`
	MessageID     string                        `bun:"message_id,nullzero,type:varchar(20)"`
	UpdatedAt     time.Time                     `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
