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
	"io"

	navconfig "rivaas.dev/navigator/config"
	"rivaas.dev/navigator/history"
	"rivaas.dev/navigator/logging"
	"rivaas.dev/navigator/metrics"
	"rivaas.dev/navigator/navigator"
	"rivaas.dev/navigator/tracing"
)

// Environments accepted by [WithEnvironment].
const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
)

const (
	DefaultServiceName    = "navigator"
	DefaultServiceVersion = "dev"
	DefaultEnvironment    = EnvironmentDevelopment
)

// Option configures an [App].
type Option func(c *config)

type config struct {
	serviceName    string
	serviceVersion string
	environment    string

	declaration     *navconfig.Declaration
	declarationFile string
	views           navconfig.ViewResolver

	history     history.Adapter
	historyMode string // overrides the declaration when set
	historyBase string

	logger    *logging.Logger
	logLevel  string
	logFormat string

	metricsOpts     []metrics.Option
	metricsExporter string
	tracingOpts     []tracing.Option
	tracingExporter string
	sampleRate      *float64

	engineOpts []navigator.Option
	banner     io.Writer

	envErrors []error
}

func defaultConfig() *config {
	return &config{
		serviceName:    DefaultServiceName,
		serviceVersion: DefaultServiceVersion,
		environment:    DefaultEnvironment,
	}
}

// WithServiceName names the service in logs, telemetry resources and the banner.
func WithServiceName(name string) Option {
	return func(c *config) { c.serviceName = name }
}

// WithServiceVersion sets the service version reported in telemetry.
func WithServiceVersion(version string) Option {
	return func(c *config) { c.serviceVersion = version }
}

// WithEnvironment sets "development" or "production".
//
// Development enables the console log format and the route banner.
// Production logs JSON and strips colors.
func WithEnvironment(env string) Option {
	return func(c *config) { c.environment = env }
}

// WithDeclaration uses decl instead of [navconfig.DefaultDeclaration].
func WithDeclaration(decl *navconfig.Declaration) Option {
	return func(c *config) { c.declaration = decl }
}

// WithDeclarationFile loads the declaration from a YAML, JSON or TOML file.
func WithDeclarationFile(path string) Option {
	return func(c *config) { c.declarationFile = path }
}

// WithViews resolves declared view references. Without it each route's view
// is its reference string.
func WithViews(views navconfig.ViewResolver) Option {
	return func(c *config) { c.views = views }
}

// WithHistory replaces the in-memory history built from the declaration.
func WithHistory(h history.Adapter) Option {
	return func(c *config) { c.history = h }
}

// WithLogger uses an existing logger. The app does not shut it down.
func WithLogger(l *logging.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithMetrics enables metrics with the given provider options; the service
// name and version are applied first.
func WithMetrics(opts ...metrics.Option) Option {
	return func(c *config) {
		c.metricsOpts = append(c.metricsOpts, opts...)
		if c.metricsOpts == nil {
			c.metricsOpts = []metrics.Option{}
		}
	}
}

// WithTracing enables tracing with the given provider options; the service
// name and version are applied first.
func WithTracing(opts ...tracing.Option) Option {
	return func(c *config) {
		c.tracingOpts = append(c.tracingOpts, opts...)
		if c.tracingOpts == nil {
			c.tracingOpts = []tracing.Option{}
		}
	}
}

// WithPreparer sets the engine's preparer.
func WithPreparer(p navigator.Preparer) Option {
	return func(c *config) { c.engineOpts = append(c.engineOpts, navigator.WithPreparer(p)) }
}

// WithListener registers an engine listener for the app's lifetime.
func WithListener(l navigator.Listener) Option {
	return func(c *config) { c.engineOpts = append(c.engineOpts, navigator.WithListener(l)) }
}

// WithEngineOptions passes additional options to [navigator.New].
func WithEngineOptions(opts ...navigator.Option) Option {
	return func(c *config) { c.engineOpts = append(c.engineOpts, opts...) }
}

// WithBanner prints the startup banner to w when running in development.
func WithBanner(w io.Writer) Option {
	return func(c *config) { c.banner = w }
}

func (c *config) validate() error {
	ve := &ValidationError{}

	for _, err := range c.envErrors {
		ve.Add(newFieldError("env", nil, err.Error(), ""))
	}
	if c.serviceName == "" {
		ve.Add(newFieldError("serviceName", nil, "cannot be empty", ""))
	}
	if c.environment != EnvironmentDevelopment && c.environment != EnvironmentProduction {
		ve.Add(newFieldError("environment", c.environment, "unknown environment", "must be development or production"))
	}
	if c.declaration != nil && c.declarationFile != "" {
		ve.Add(newFieldError("declaration", c.declarationFile, "declaration and declaration file are mutually exclusive", ""))
	}
	if c.historyMode != "" {
		if _, err := history.ParseMode(c.historyMode); err != nil {
			ve.Add(newFieldError("history.mode", c.historyMode, err.Error(), "must be path or hash"))
		}
	}
	if c.logLevel != "" {
		if _, err := logging.ParseLevel(c.logLevel); err != nil {
			ve.Add(newFieldError("log.level", c.logLevel, err.Error(), ""))
		}
	}
	switch logging.HandlerType(c.logFormat) {
	case "", logging.JSONHandler, logging.TextHandler, logging.ConsoleHandler:
	default:
		ve.Add(newFieldError("log.format", c.logFormat, "unknown log format", "must be json, text or console"))
	}
	switch metrics.Kind(c.metricsExporter) {
	case "", metrics.NoopProvider, metrics.PrometheusProvider, metrics.StdoutProvider:
	default:
		ve.Add(newFieldError("metrics.exporter", c.metricsExporter, "unknown exporter", "must be noop, prometheus or stdout"))
	}
	switch tracing.Kind(c.tracingExporter) {
	case "", tracing.NoopProvider, tracing.StdoutProvider:
	default:
		ve.Add(newFieldError("tracing.exporter", c.tracingExporter, "unknown exporter", "must be noop or stdout"))
	}
	if c.sampleRate != nil && (*c.sampleRate < 0 || *c.sampleRate > 1) {
		ve.Add(newFieldError("tracing.sample_rate", *c.sampleRate, "out of range", "must be between 0 and 1"))
	}

	return ve.ToError()
}
