package seasondb

import (
	"encoding/json"
	"time"

	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
	"github.com/uptrace/bun"
)

// SeasonStateRow stores the seasonal-event document as one JSONB row per
// guild. The document keeps its JSON shape so the schema can evolve without
// table migrations; Normalize fills missing keys after load.
type SeasonStateRow struct {
	bun.BaseModel `bun:"table:season_states,alias:ss"`

	GuildID   sharedtypes.GuildID `bun:"guild_id,pk,notnull,type:varchar(20)"`
	State     json.RawMessage     `bun:"state,notnull,type:jsonb"`
	CreatedAt time.Time           `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time           `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
