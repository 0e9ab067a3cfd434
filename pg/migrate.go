package pg

import (
	"errors"
	"io/fs"

	"github.com/code19m/errx"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // registers the pgx5 scheme
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rise-and-shine/foodcatalog/logger"
)

// Migrate applies all pending up migrations found in dir of fsys.
func Migrate(cfg Config, fsys fs.FS, dir string) error {
	source, err := iofs.New(fsys, dir)
	if err != nil {
		return errx.Wrap(err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, cfg.migrateURL())
	if err != nil {
		return errx.Wrap(err, errx.WithDetails(errx.D{"host": cfg.Host, "database": cfg.Database}))
	}
	defer m.Close()

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errx.Wrap(err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return errx.Wrap(err)
	}

	logger.Named("pg.migrate").With("version", version, "dirty", dirty).Info("migrations applied")
	return nil
}
