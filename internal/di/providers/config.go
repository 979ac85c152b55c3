// Package providers holds the constructor functions wired into the DI
// container.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/devflowhq/devflow-server/internal/config"
	"github.com/devflowhq/devflow-server/internal/logger"
	"github.com/devflowhq/devflow-server/internal/validation"
)

// ProvideConfig resolves configuration from flags, env, and .env.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger builds the structured logger and emits the startup banner.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("Starting DevFlow Server",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"db_path", cfg.Database.Path,
	)

	return log, nil
}

// ProvideValidator builds the request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}
