// Command foodcatalog serves the food catalog HTTP API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/foodcatalog/cfgloader"
	"github.com/rise-and-shine/foodcatalog/http/server"
	"github.com/rise-and-shine/foodcatalog/http/server/middleware"
	"github.com/rise-and-shine/foodcatalog/internal/config"
	"github.com/rise-and-shine/foodcatalog/internal/food/api"
	"github.com/rise-and-shine/foodcatalog/internal/food/lifecycle"
	"github.com/rise-and-shine/foodcatalog/internal/food/query"
	"github.com/rise-and-shine/foodcatalog/internal/food/repo"
	"github.com/rise-and-shine/foodcatalog/internal/imagestore"
	"github.com/rise-and-shine/foodcatalog/internal/migrations"
	"github.com/rise-and-shine/foodcatalog/logger"
	"github.com/rise-and-shine/foodcatalog/meta"
	"github.com/rise-and-shine/foodcatalog/pg"
	"github.com/rise-and-shine/foodcatalog/tracing"
)

func main() {
	cfg := cfgloader.MustLoad[config.Config](cfgloader.WithDir(os.Getenv("CONFIG_DIR")))

	logger.SetGlobal(cfg.Logger)
	defer func() { _ = logger.Sync() }()

	meta.SetServiceInfo(cfg.Service.Name, cfg.Service.Version)
	meta.SetLanguageMap(api.Messages(), cfg.Service.DefaultLanguage)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Fatalx(err)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	log := logger.Named("main")

	shutdownTracer, err := tracing.InitGlobalTracer(cfg.Tracing)
	if err != nil {
		return errx.Wrap(err)
	}
	defer func() {
		if err := shutdownTracer(); err != nil {
			log.Warnx(err)
		}
	}()

	db, err := pg.NewBunDB(ctx, cfg.Postgres)
	if err != nil {
		return errx.Wrap(err)
	}
	defer func() { _ = db.Close() }()

	if cfg.Postgres.MigrateOnStart {
		err = pg.Migrate(cfg.Postgres, migrations.FS, migrations.Dir)
		if err != nil {
			return errx.Wrap(err)
		}
	}

	backend, err := newFileStore(ctx, cfg.Storage)
	if err != nil {
		return errx.Wrap(err)
	}

	foods := repo.New(db)
	images := imagestore.New(backend)
	handler := api.New(
		lifecycle.New(foods, images),
		query.New(foods),
		images,
		cfg.Storage.UploadOptions(),
	)

	srv := server.NewHTTPServer(cfg.HTTPServer, []server.Middleware{
		middleware.NewRecoveryMW(logger.Global(), cfg.HTTPServer.HideErrorDetails),
		middleware.NewTracingMW(),
		middleware.NewMetricsMW(),
		middleware.NewTimeoutMW(cfg.HTTPServer.HandleTimeout),
		middleware.NewMetaInjectMW(),
		middleware.NewLoggerMW(logger.Global()),
		middleware.NewErrorHandlerMW(cfg.HTTPServer.HideErrorDetails),
	})
	srv.RegisterHealth(map[string]server.Probe{
		"postgres": func(ctx context.Context) error { return pg.Ping(ctx, db) },
	})
	srv.RegisterRouter(func(r fiber.Router) {
		r.Get(middleware.MetricsPath, middleware.MetricsHandler())
	})
	srv.RegisterRouter(handler.Register)

	errCh := make(chan error, 1)
	go func() {
		log.With("address", cfg.HTTPServer.Address(), "storage", cfg.Storage.Driver).Info("http server started")
		errCh <- srv.Start()
	}()

	select {
	case err = <-errCh:
		return errx.Wrap(err)
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Service.ShutdownTimeout)
	defer cancel()

	err = srv.Stop(shutdownCtx)
	if err != nil {
		return errx.Wrap(err)
	}
	return nil
}
