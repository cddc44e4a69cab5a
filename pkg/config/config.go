// Package config loads application configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Admin holds the credentials of the bootstrap administrator account that is
// seeded into a fresh registry.
type Admin struct {
	Name     string `envconfig:"NAME" default:"Admin"`
	Email    string `envconfig:"EMAIL" default:"admin@example.com"`
	Password string `envconfig:"PASSWORD" default:"password"`
}

// Log configures the slog handler.
type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	Prefix     string `envconfig:"PREFIX" default:"fintrack"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"15:04:05"`
}

// App is the root configuration.
type App struct {
	Env   string `envconfig:"APP_ENV" default:"development"`
	Admin Admin  `envconfig:"ADMIN"`
	Log   Log    `envconfig:"LOG"`
}

// Load reads the configuration from the environment. A missing .env file is
// not an error; system environment variables still apply.
func Load(logger *slog.Logger) (*App, error) {
	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found, using system environment variables")
	} else {
		logger.Info("Environment variables loaded from .env file")
	}
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	logger.Info("App config loaded",
		"env", cfg.Env,
		"admin_email", cfg.Admin.Email,
		"log_format", cfg.Log.Format,
	)
	return &cfg, nil
}
