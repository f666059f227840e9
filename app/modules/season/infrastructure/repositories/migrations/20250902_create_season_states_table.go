package migrations

import (
	"context"
	"fmt"

	seasondb "github.com/jollyfox-guild/vale-bot/app/modules/season/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating season_states table...")
			if _, err := db.NewCreateTable().Model((*seasondb.SeasonStateRow)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}
			fmt.Println("season_states table created successfully!")
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping season_states table...")
			if _, err := db.NewDropTable().Model((*seasondb.SeasonStateRow)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return err
			}
			fmt.Println("season_states table dropped successfully!")
			return nil
		},
	)
}
