package bundb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	progressiondb "github.com/jollyfox-guild/vale-bot/app/modules/progression/infrastructure/repositories"
	seasondb "github.com/jollyfox-guild/vale-bot/app/modules/season/infrastructure/repositories"
	wanderingdb "github.com/jollyfox-guild/vale-bot/app/modules/wandering/infrastructure/repositories"
	"github.com/jollyfox-guild/vale-bot/config"
)

// DBService bundles the per-module repositories over one connection pool.
type DBService struct {
	SeasonDB      *seasondb.SeasonDBImpl
	WanderingDB   *wanderingdb.WanderingDBImpl
	ProgressionDB *progressiondb.ProgressionDBImpl
	db            *bun.DB
}

// GetDB returns the underlying database connection pool.
func (dbService *DBService) GetDB() *bun.DB {
	return dbService.db
}

// NewBunDBService initializes a new DBService with the provided Postgres
// configuration.
func NewBunDBService(ctx context.Context, cfg config.PostgresConfig, logger *slog.Logger) (*DBService, error) {
	sqldb, err := pgConn(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := bun.NewDB(sqldb, pgdialect.New())

	db.RegisterModel(
		(*seasondb.SeasonStateRow)(nil),
		(*wanderingdb.WanderingEventRow)(nil),
		(*progressiondb.PlayerRow)(nil),
		(*progressiondb.BoardRow)(nil),
	)

	return &DBService{
		SeasonDB:      &seasondb.SeasonDBImpl{DB: db, Logger: logger},
		WanderingDB:   &wanderingdb.WanderingDBImpl{DB: db, Logger: logger},
		ProgressionDB: &progressiondb.ProgressionDBImpl{DB: db},
		db:            db,
	}, nil
}

func pgConn(dsn string) (*sql.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))

	if err := sqldb.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return sqldb, nil
}
