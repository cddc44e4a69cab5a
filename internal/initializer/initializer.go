// Package initializer wires the application dependencies: configuration,
// logger, registry and services.
package initializer

import (
	"fmt"
	"log/slog"

	"github.com/fintrack/fintrack/pkg/config"
	"github.com/fintrack/fintrack/pkg/notification"
	"github.com/fintrack/fintrack/pkg/registry"
	ledgersvc "github.com/fintrack/fintrack/pkg/service/ledger"
	"github.com/fintrack/fintrack/pkg/service/tracker"
)

// Deps holds everything the menu layer needs.
type Deps struct {
	Cfg      *config.App
	Logger   *slog.Logger
	Registry *registry.Registry
	Ledger   *ledgersvc.Service
	Tracker  *tracker.Service
}

// InitializeDependencies loads the configuration and builds the full
// dependency graph, seeding the bootstrap admin into the registry.
func InitializeDependencies() (*Deps, error) {
	cfg, err := config.Load(slog.Default())
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := setupLogger(cfg.Log)

	reg, err := registry.New(cfg.Admin, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize registry: %w", err)
	}

	notifier := notification.NewLogNotifier(logger)
	return &Deps{
		Cfg:      cfg,
		Logger:   logger,
		Registry: reg,
		Ledger:   ledgersvc.New(notifier, logger),
		Tracker:  tracker.New(notifier, logger),
	}, nil
}
