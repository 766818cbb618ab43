package bootstrap

import (
	"context"
	"log/slog"

	"table-booking/internal/infra/db"
	"table-booking/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(NewDB),
)

// NewDB opens the pool and refuses to start until the booking schema is in
// place, so a missing migration fails at boot rather than on the first request.
func NewDB(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := db.VerifySchema(ctx, pool); err != nil {
				return err
			}
			logger.Info("データベースに接続しました",
				"host", cfg.DB.Host, "database", cfg.DB.DBName, "max_conns", pool.Config().MaxConns)
			return nil
		},
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	return pool, nil
}
