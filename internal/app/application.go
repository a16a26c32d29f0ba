package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/karandeol-26/VeriCura/internal/logging"
)

// Application is the global runtime state container. It holds the config,
// the shared components and the orchestrator. Pass it into the surfaces
// (CLI commands, HTTP server) rather than using package-level variables.
type Application struct {
	Config *Config
	Logger logging.Logger
	Comps  *Components
	Orch   *Orchestrator
}

// NewApplication builds the components and orchestrator for cfg.
func NewApplication(cfg *Config, logger logging.Logger) (*Application, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		return nil, errors.New("app: nil logger")
	}
	comps, err := NewComponents(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("new components: %w", err)
	}
	return NewApplicationFromComponents(cfg, comps, logger), nil
}

// NewApplicationFromComponents wraps prebuilt components.
func NewApplicationFromComponents(cfg *Config, comps *Components, logger logging.Logger) *Application {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Application{
		Config: cfg,
		Logger: logger,
		Comps:  comps,
		Orch:   NewOrchestrator(cfg, comps, logger),
	}
}

// Start logs the effective configuration. It starts no goroutines.
func (a *Application) Start() error {
	if a == nil {
		return errors.New("application is nil")
	}
	a.Logger.Info("application starting",
		logging.Field{Key: "client", Value: string(a.Config.WebClient.Client)},
		logging.Field{Key: "deep_analysis", Value: a.Config.Analyzer.Configured()})
	return nil
}

// Shutdown closes sessions, then the shared components.
func (a *Application) Shutdown(ctx context.Context) error {
	if a == nil {
		return errors.New("application is nil")
	}
	a.Logger.Info("application shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		a.Orch.Close()
		done <- a.Comps.Close()
	}()
	select {
	case err := <-done:
		if err != nil {
			a.Logger.Warn("component shutdown returned error", logging.Field{Key: "error", Value: err.Error()})
		}
		return err
	case <-shutdownCtx.Done():
		return shutdownCtx.Err()
	}
}
