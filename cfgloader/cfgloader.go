// Package cfgloader loads and validates configuration at the start of an application.
package cfgloader

import (
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"slices"
	"strings"

	"github.com/code19m/errx"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvProduction = "production"
	EnvStaging    = "staging"
	EnvDev        = "dev"
	EnvLocal      = "local"
	EnvTest       = "test"

	codeInvalidEnvironment = "INVALID_ENVIRONMENT"
	codeConfigNotFound     = "CONFIG_NOT_FOUND"
	codeInvalidConfig      = "INVALID_CONFIG"
)

// MustLoad loads and validates configuration from ./config/${ENVIRONMENT}.yaml,
// or from another directory given with WithDir.
//
// A .env file in the working directory is loaded first when present, and ${VAR}
// references inside the YAML are expanded from the environment.
//
// Default values come from the `default` struct tag and are applied before
// validation. Validation uses the `validate` struct tag (go-playground/validator).
//
//	type Config struct {
//	    Host     string `yaml:"host" validate:"required"`
//	    Port     int    `yaml:"port" default:"8080"`
//	    LogLevel string `yaml:"log_level" default:"info"`
//	}
//
// Any failure is logged and terminates the process.
func MustLoad[T any](opts ...Option) T {
	o := newOptions(opts)

	_ = godotenv.Load()

	path, err := ConfigPath(opts...)
	if err != nil {
		exit(err)
	}

	config, err := Load[T](path)
	if err != nil {
		exit(err)
	}

	if !o.Silent {
		printConfig(config)
	}

	return config
}

// Load reads, expands, defaults and validates the YAML config at path.
func Load[T any](path string) (T, error) {
	var config T

	if reflect.ValueOf(config).Kind() == reflect.Ptr {
		return config, errx.New("config type must not be a pointer", errx.WithCode(codeInvalidConfig))
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, errx.New(
			fmt.Sprintf("config file not found in the path %s", path),
			errx.WithCode(codeConfigNotFound),
		)
	}
	if err != nil {
		return config, errx.Wrap(err, errx.WithDetails(errx.D{"path": path}))
	}

	data = []byte(os.ExpandEnv(string(data)))

	if err = yaml.Unmarshal(data, &config); err != nil {
		return config, errx.Wrap(err, errx.WithCode(codeInvalidConfig), errx.WithDetails(errx.D{"path": path}))
	}

	if err = defaults.Set(&config); err != nil {
		return config, errx.Wrap(err, errx.WithCode(codeInvalidConfig))
	}

	if err = validateConfig(&config); err != nil {
		return config, errx.Wrap(err)
	}

	return config, nil
}

func defineEnvironment() (string, error) {
	env := os.Getenv("ENVIRONMENT")
	if !slices.Contains([]string{EnvProduction, EnvStaging, EnvDev, EnvLocal, EnvTest}, env) {
		return "", errx.New(
			"ENVIRONMENT env variable is not set or invalid. Choices are: production, staging, dev, local, test",
			errx.WithCode(codeInvalidEnvironment),
		)
	}
	return env, nil
}

// ConfigPath returns the config file MustLoad would read for the current ENVIRONMENT.
func ConfigPath(opts ...Option) (string, error) {
	env, err := defineEnvironment()
	if err != nil {
		return "", err
	}
	return newOptions(opts).configPath(env), nil
}

func validateConfig(config any) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.Struct(config)
	if err == nil {
		return nil
	}

	failedFields := make([]string, 0)
	if errs, ok := err.(validator.ValidationErrors); ok { //nolint: errorlint // validator returns the concrete type
		for _, fe := range errs {
			tagErr := fe.Tag()
			if fe.Param() != "" {
				tagErr += "=" + fe.Param()
			}
			failedFields = append(failedFields, fmt.Sprintf("%s: %s", fe.Namespace(), tagErr))
		}
	}

	return errx.New(
		"invalid fields in config -> "+strings.Join(failedFields, ",  "),
		errx.WithCode(codeInvalidConfig),
	)
}

func exit(err error) {
	slog.Error("[cfgloader]: " + err.Error())
	os.Exit(1)
}
