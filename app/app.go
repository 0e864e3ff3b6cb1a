// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	navconfig "rivaas.dev/navigator/config"
	"rivaas.dev/navigator/history"
	"rivaas.dev/navigator/logging"
	"rivaas.dev/navigator/metrics"
	"rivaas.dev/navigator/navigator"
	"rivaas.dev/navigator/route"
	"rivaas.dev/navigator/tracing"
)

// App owns a navigator engine and the providers it reports to.
type App struct {
	config *config

	logger     *logging.Logger
	ownsLogger bool
	metrics    *metrics.Provider
	tracing    *tracing.Provider

	declaration *navconfig.Declaration
	table       *route.Table
	history     history.Adapter
	engine      *navigator.Engine
}

// New builds an App.
//
// Errors:
//   - [*ValidationError] for invalid settings, including environment overrides
//   - [*navconfig.Error] when the declaration cannot be loaded or compiled
//   - provider construction errors from the logging, metrics and tracing packages
func New(opts ...Option) (*App, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	a := &App{config: cfg}
	if err := a.initObservability(); err != nil {
		return nil, err
	}

	decl, err := cfg.loadDeclaration()
	if err != nil {
		_ = a.shutdownProviders(context.Background())
		return nil, err
	}
	a.declaration = decl

	if a.table, err = decl.Table(cfg.views); err != nil {
		_ = a.shutdownProviders(context.Background())
		return nil, err
	}

	a.history = cfg.history
	if a.history == nil {
		if a.history, err = decl.NewHistory(); err != nil {
			_ = a.shutdownProviders(context.Background())
			return nil, err
		}
	}

	engineOpts := append([]navigator.Option{
		navigator.WithLogger(a.logger.Logger()),
		navigator.WithTracerProvider(a.tracing.TracerProvider()),
		navigator.WithMeterProvider(a.metrics.MeterProvider()),
	}, cfg.engineOpts...)

	if a.engine, err = navigator.New(a.table, a.history, engineOpts...); err != nil {
		_ = a.shutdownProviders(context.Background())
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	a.logger.Logger().Info("navigator ready",
		"routes", a.table.Len(),
		"history_mode", decl.History.Mode,
		"location", a.engine.Active().FullPath(),
	)

	if cfg.banner != nil && cfg.environment == EnvironmentDevelopment {
		a.printBanner(cfg.banner)
	}

	return a, nil
}

// MustNew is like [New] but panics on error.
func MustNew(opts ...Option) *App {
	a, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("app: %v", err))
	}
	return a
}

func (a *App) initObservability() error {
	cfg := a.config

	if cfg.logger != nil {
		a.logger = cfg.logger
	} else {
		l, err := logging.New(cfg.loggingOptions()...)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		a.logger, a.ownsLogger = l, true
	}
	slogger := a.logger.Logger()

	mp, err := metrics.New(cfg.metricsOptions(slogger)...)
	if err != nil {
		return fmt.Errorf("failed to create metrics provider: %w", err)
	}
	a.metrics = mp

	tp, err := tracing.New(cfg.tracingOptions(slogger)...)
	if err != nil {
		_ = mp.Shutdown(context.Background())
		return fmt.Errorf("failed to create tracing provider: %w", err)
	}
	a.tracing = tp

	return nil
}

func (c *config) loggingOptions() []logging.Option {
	opts := []logging.Option{
		logging.WithOutput(os.Stderr),
		logging.WithServiceName(c.serviceName),
		logging.WithEnvironment(c.environment),
	}

	format := logging.HandlerType(c.logFormat)
	if format == "" {
		format = logging.JSONHandler
		if c.environment == EnvironmentDevelopment {
			format = logging.ConsoleHandler
		}
	}
	opts = append(opts, logging.WithHandlerType(format))

	if c.logLevel != "" {
		level, _ := logging.ParseLevel(c.logLevel) // checked by validate
		opts = append(opts, logging.WithLevel(level))
	}
	return opts
}

func (c *config) metricsOptions(logger *slog.Logger) []metrics.Option {
	opts := []metrics.Option{
		metrics.WithServiceName(c.serviceName),
		metrics.WithServiceVersion(c.serviceVersion),
		metrics.WithLogger(logger),
	}
	switch metrics.Kind(c.metricsExporter) {
	case metrics.PrometheusProvider:
		opts = append(opts, metrics.WithPrometheus(nil))
	case metrics.StdoutProvider:
		opts = append(opts, metrics.WithStdout(os.Stdout))
	case metrics.NoopProvider:
		opts = append(opts, metrics.WithNoop())
	}
	return append(opts, c.metricsOpts...)
}

func (c *config) tracingOptions(logger *slog.Logger) []tracing.Option {
	opts := []tracing.Option{
		tracing.WithServiceName(c.serviceName),
		tracing.WithServiceVersion(c.serviceVersion),
		tracing.WithLogger(logger),
	}
	switch tracing.Kind(c.tracingExporter) {
	case tracing.StdoutProvider:
		opts = append(opts, tracing.WithStdout(os.Stdout))
	case tracing.NoopProvider:
		opts = append(opts, tracing.WithNoop())
	}
	if c.sampleRate != nil {
		opts = append(opts, tracing.WithSampleRate(*c.sampleRate))
	}
	return append(opts, c.tracingOpts...)
}

func (c *config) loadDeclaration() (*navconfig.Declaration, error) {
	var decl *navconfig.Declaration
	switch {
	case c.declarationFile != "":
		d, err := navconfig.Load(context.Background(), navconfig.WithFile(c.declarationFile))
		if err != nil {
			return nil, err
		}
		decl = d
	case c.declaration != nil:
		d := *c.declaration
		decl = &d
	default:
		decl = navconfig.DefaultDeclaration()
	}

	if c.historyMode != "" {
		decl.History.Mode = c.historyMode
	}
	if c.historyBase != "" {
		decl.History.Base = c.historyBase
	}
	if err := decl.Validate(); err != nil {
		return nil, err
	}
	return decl, nil
}

// Engine returns the router engine.
func (a *App) Engine() *navigator.Engine { return a.engine }

// History returns the history adapter the engine drives.
func (a *App) History() history.Adapter { return a.history }

// Table returns the compiled route table.
func (a *App) Table() *route.Table { return a.table }

// Declaration returns the declaration the table was built from.
func (a *App) Declaration() *navconfig.Declaration { return a.declaration }

// Logger returns the app logger.
func (a *App) Logger() *logging.Logger { return a.logger }

// Metrics returns the metrics provider.
func (a *App) Metrics() *metrics.Provider { return a.metrics }

// Tracing returns the tracing provider.
func (a *App) Tracing() *tracing.Provider { return a.tracing }

// Environment returns "development" or "production".
func (a *App) Environment() string { return a.config.environment }

// ServiceName returns the configured service name.
func (a *App) ServiceName() string { return a.config.serviceName }

// Shutdown closes the engine, then flushes and stops the telemetry
// providers. A logger passed with [WithLogger] is left running.
func (a *App) Shutdown(ctx context.Context) error {
	errs := a.engine.Close()
	a.logger.Logger().Info("navigator stopped")
	return errors.Join(errs, a.shutdownProviders(ctx))
}

func (a *App) shutdownProviders(ctx context.Context) error {
	var errs error
	if a.tracing != nil {
		errs = errors.Join(errs, a.tracing.Shutdown(ctx))
	}
	if a.metrics != nil {
		errs = errors.Join(errs, a.metrics.Shutdown(ctx))
	}
	if a.ownsLogger {
		errs = errors.Join(errs, a.logger.Shutdown(ctx))
	}
	return errs
}
