package wanderingdb

import (
	"encoding/json"
	"time"

	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
	"github.com/uptrace/bun"
)

// WanderingEventRow stores the wandering-event document as one JSONB row per
// guild. A SQL NULL document means no event is currently spawned.
type WanderingEventRow struct {
	bun.BaseModel `bun:"table:wandering_events,alias:we"`

	GuildID   sharedtypes.GuildID `bun:"guild_id,pk,notnull,type:varchar(20)"`
	Event     json.RawMessage     `bun:"event,type:jsonb"`
	CreatedAt time.Time           `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time           `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
