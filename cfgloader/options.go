package cfgloader

import "path/filepath"

const defaultDir = "./config"

// Options controls where MustLoad looks for the config file and whether it prints it.
type Options struct {
	// Silent skips printing the masked config on startup.
	Silent bool
	// Dir holds the per-environment yaml files. Defaults to ./config.
	Dir string
}

// Option configures MustLoad.
type Option func(*Options)

// WithSilent skips printing the loaded config.
func WithSilent() Option {
	return func(o *Options) {
		o.Silent = true
	}
}

// WithDir reads <dir>/<ENVIRONMENT>.yaml instead of ./config. An empty dir keeps the default.
func WithDir(dir string) Option {
	return func(o *Options) {
		if dir != "" {
			o.Dir = dir
		}
	}
}

func newOptions(opts []Option) Options {
	o := Options{Dir: defaultDir}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o Options) configPath(env string) string {
	return filepath.Join(o.Dir, env+".yaml")
}
