package main

import (
	"context"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/foodcatalog/filestore"
	"github.com/rise-and-shine/foodcatalog/filestore/localfs"
	"github.com/rise-and-shine/foodcatalog/filestore/miniowr"
	"github.com/rise-and-shine/foodcatalog/internal/config"
)

// newFileStore builds the configured image backend.
func newFileStore(ctx context.Context, cfg config.Storage) (filestore.FileStore, error) {
	switch cfg.Driver {
	case config.DriverMinIO:
		client, err := miniowr.New(*cfg.MinIO)
		if err != nil {
			return nil, errx.Wrap(err)
		}
		err = client.EnsureBucket(ctx)
		if err != nil {
			return nil, errx.Wrap(err)
		}
		return client, nil

	default:
		store, err := localfs.New(cfg.Local)
		if err != nil {
			return nil, errx.Wrap(err)
		}
		return store, nil
	}
}
