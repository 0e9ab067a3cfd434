// Package pg provides PostgreSQL database connection and utility functions.
//
// It creates pgx pools wrapped by the Bun ORM, applies embedded schema migrations,
// classifies PostgreSQL errors and provides a base model with automatic timestamps.
// Queries are traced with OpenTelemetry.
package pg

import (
	"context"

	"github.com/avast/retry-go/v4"
	"github.com/code19m/errx"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rise-and-shine/foodcatalog/logger"
	"github.com/rise-and-shine/foodcatalog/pg/hooks"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/extra/bunotel"
)

// NewBunDB creates a new Bun database connection with the provided configuration.
// The connection is verified with a ping, retried with backoff while the server
// is still starting, before it is returned.
func NewBunDB(ctx context.Context, cfg Config) (*bun.DB, error) {
	pool, err := NewPool(ctx, cfg)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	sqldb := stdlib.OpenDBFromPool(pool)

	bunDB := bun.NewDB(sqldb, pgdialect.New())
	applyHooks(bunDB, cfg)

	err = waitReady(ctx, bunDB, cfg)
	if err != nil {
		_ = bunDB.Close()
		return nil, errx.Wrap(err, errx.WithDetails(errx.D{"host": cfg.Host, "database": cfg.Database}))
	}

	return bunDB, nil
}

// applyHooks adds the query logging hook (active only in debug mode, slow
// queries are still reported) and the OpenTelemetry hook.
func applyHooks(db *bun.DB, cfg Config) {
	db.AddQueryHook(
		hooks.NewDebugHook(
			hooks.WithEnabled(true),
			hooks.WithVerbose(cfg.Debug),
			hooks.WithSlowQueryThreshold(cfg.SlowQueryThreshold),
		),
	)

	db.AddQueryHook(bunotel.NewQueryHook(bunotel.WithDBName(cfg.Database)))
}

// waitReady pings db until it answers or cfg.ConnectAttempts is exhausted.
func waitReady(ctx context.Context, db bun.IDB, cfg Config) error {
	log := logger.Named("pg").With("host", cfg.Host, "database", cfg.Database)

	return retry.Do(
		func() error {
			return Ping(ctx, db)
		},
		retry.Attempts(max(cfg.ConnectAttempts, 1)),
		retry.Delay(cfg.ConnectRetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.With("attempt", n+1, "max_attempts", cfg.ConnectAttempts).Warnx(err)
		}),
		retry.Context(ctx),
	)
}

// Ping checks that the database answers within the context deadline.
func Ping(ctx context.Context, db bun.IDB) error {
	var one int
	err := db.NewSelect().ColumnExpr("1").Scan(ctx, &one)
	if err != nil {
		return errx.Wrap(err, errx.WithType(errx.T_Internal))
	}
	return nil
}
