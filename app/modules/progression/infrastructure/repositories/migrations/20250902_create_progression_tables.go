package migrations

import (
	"context"
	"fmt"

	progressiondb "github.com/jollyfox-guild/vale-bot/app/modules/progression/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating players table...")
			if _, err := db.NewCreateTable().Model((*progressiondb.PlayerRow)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}
			fmt.Println("Creating quest_boards table...")
			if _, err := db.NewCreateTable().Model((*progressiondb.BoardRow)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}
			fmt.Println("progression tables created successfully!")
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping progression tables...")
			if _, err := db.NewDropTable().Model((*progressiondb.BoardRow)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return err
			}
			if _, err := db.NewDropTable().Model((*progressiondb.PlayerRow)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return err
			}
			fmt.Println("progression tables dropped successfully!")
			return nil
		},
	)
}
