package migrations

import (
	"context"
	"fmt"

	wanderingdb "github.com/jollyfox-guild/vale-bot/app/modules/wandering/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating wandering_events table...")
			if _, err := db.NewCreateTable().Model((*wanderingdb.WanderingEventRow)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}
			fmt.Println("wandering_events table created successfully!")
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping wandering_events table...")
			if _, err := db.NewDropTable().Model((*wanderingdb.WanderingEventRow)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return err
			}
			fmt.Println("wandering_events table dropped successfully!")
			return nil
		},
	)
}
