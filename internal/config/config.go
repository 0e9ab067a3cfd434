// Package config defines the configuration of the food catalog service.
package config

import (
	"time"

	"github.com/rise-and-shine/foodcatalog/filestore/localfs"
	"github.com/rise-and-shine/foodcatalog/filestore/miniowr"
	"github.com/rise-and-shine/foodcatalog/http/server"
	"github.com/rise-and-shine/foodcatalog/http/server/upload"
	"github.com/rise-and-shine/foodcatalog/logger"
	"github.com/rise-and-shine/foodcatalog/pg"
	"github.com/rise-and-shine/foodcatalog/tracing"
)

// Storage drivers.
const (
	DriverLocal = "local"
	DriverMinIO = "minio"
)

// Config is loaded from ./config/${ENVIRONMENT}.yaml.
type Config struct {
	Service    Service        `yaml:"service"`
	Logger     logger.Config  `yaml:"logger"`
	HTTPServer server.Config  `yaml:"http_server"`
	Postgres   pg.Config      `yaml:"postgres"`
	Storage    Storage        `yaml:"storage"`
	Tracing    tracing.Config `yaml:"tracing"`
}

// Service identifies the running service.
type Service struct {
	Name    string `yaml:"name"    validate:"required" default:"foodcatalog"`
	Version string `yaml:"version" validate:"required" default:"dev"`

	// DefaultLanguage is used for error messages when the client sends no Accept-Language.
	DefaultLanguage string `yaml:"default_language" validate:"required" default:"en"`

	// ShutdownTimeout bounds graceful shutdown of the HTTP server.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"15s"`
}

// Storage selects and configures the image file store.
type Storage struct {
	Driver string `yaml:"driver" validate:"oneof=local minio" default:"local"`

	Local localfs.Config  `yaml:"local"`
	MinIO *miniowr.Config `yaml:"minio" validate:"required_if=Driver minio"`

	// MaxUploadSize is the largest accepted image in bytes. Default is 5MB.
	MaxUploadSize int64 `yaml:"max_upload_size" validate:"gt=0" default:"5242880"`

	// AllowedContentTypes restricts uploads to these media types. Empty means any image/* type.
	AllowedContentTypes []string `yaml:"allowed_content_types"`
}

// UploadOptions returns the limits applied by the upload middleware.
func (s Storage) UploadOptions() upload.Options {
	return upload.Options{
		MaxSize:             s.MaxUploadSize,
		AllowedContentTypes: s.AllowedContentTypes,
	}
}
