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

package metrics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// Kind identifies the exporter backing a [Provider].
type Kind string

const (
	// NoopProvider drops every measurement.
	NoopProvider Kind = "noop"
	// PrometheusProvider exposes measurements on a Prometheus registry.
	PrometheusProvider Kind = "prometheus"
	// StdoutProvider periodically writes measurements as JSON.
	StdoutProvider Kind = "stdout"
	// ReaderProvider collects through a caller-supplied reader.
	ReaderProvider Kind = "reader"
)

var (
	// ErrNotPrometheus is returned by [Provider.Handler] for non-Prometheus providers.
	ErrNotPrometheus = errors.New("metrics handler requires the prometheus provider")

	// ErrNoServiceName indicates an empty service name.
	ErrNoServiceName = errors.New("service name cannot be empty")
)

// Provider owns a meter provider and its shutdown.
type Provider struct {
	kind    Kind
	kindSet bool

	serviceName    string
	serviceVersion string
	exportInterval time.Duration
	output         io.Writer
	registry       *promclient.Registry
	reader         sdkmetric.Reader
	registerGlobal bool
	logger         *slog.Logger

	validationErrors []error

	meterProvider  metric.MeterProvider
	sdkProvider    *sdkmetric.MeterProvider
	handler        http.Handler
	isShuttingDown atomic.Bool
}

// New creates a meter provider.
func New(opts ...Option) (*Provider, error) {
	p := &Provider{
		kind:           NoopProvider,
		serviceName:    "navigator",
		serviceVersion: "unknown",
		exportInterval: 30 * time.Second,
		output:         os.Stdout,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}

	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("invalid metrics configuration: %w", err)
	}
	if err := p.initialize(); err != nil {
		return nil, err
	}
	return p, nil
}

// MustNew creates a meter provider or panics on error.
func MustNew(opts ...Option) *Provider {
	p, err := New(opts...)
	if err != nil {
		panic("metrics initialization failed: " + err.Error())
	}
	return p
}

func (p *Provider) validate() error {
	errs := p.validationErrors
	if p.serviceName == "" {
		errs = append(errs, ErrNoServiceName)
	}
	if p.exportInterval <= 0 {
		errs = append(errs, fmt.Errorf("export interval must be positive, got %s", p.exportInterval))
	}
	switch p.kind {
	case StdoutProvider:
		if p.output == nil {
			errs = append(errs, errors.New("stdout provider requires a writer"))
		}
	case ReaderProvider:
		if p.reader == nil {
			errs = append(errs, errors.New("reader provider requires a reader"))
		}
	}
	return errors.Join(errs...)
}

func (p *Provider) initialize() error {
	var reader sdkmetric.Reader
	switch p.kind {
	case NoopProvider:
		p.meterProvider = metricnoop.NewMeterProvider()
		return nil
	case PrometheusProvider:
		if p.registry == nil {
			p.registry = promclient.NewRegistry()
		}
		exporter, err := prometheus.New(prometheus.WithRegisterer(p.registry))
		if err != nil {
			return fmt.Errorf("failed to create Prometheus exporter: %w", err)
		}
		reader = exporter
		p.handler = promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
	case StdoutProvider:
		exporter, err := stdoutmetric.New(stdoutmetric.WithWriter(p.output))
		if err != nil {
			return fmt.Errorf("failed to create stdout exporter: %w", err)
		}
		reader = sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(p.exportInterval))
	case ReaderProvider:
		reader = p.reader
	default:
		return fmt.Errorf("unsupported metrics provider: %s", p.kind)
	}

	p.sdkProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(p.serviceName),
			semconv.ServiceVersion(p.serviceVersion),
		)),
	)
	p.meterProvider = p.sdkProvider
	if p.registerGlobal {
		otel.SetMeterProvider(p.sdkProvider)
	}
	p.logger.Info("metrics initialized", "provider", string(p.kind), "service", p.serviceName)
	return nil
}

// MeterProvider returns the provider to hand to instrumented packages.
func (p *Provider) MeterProvider() metric.MeterProvider {
	return p.meterProvider
}

// Kind returns the configured exporter kind.
func (p *Provider) Kind() Kind {
	return p.kind
}

// Registry returns the Prometheus registry, or nil for other kinds.
func (p *Provider) Registry() *promclient.Registry {
	return p.registry
}

// Handler returns the Prometheus scrape handler.
func (p *Provider) Handler() (http.Handler, error) {
	if p.handler == nil {
		return nil, ErrNotPrometheus
	}
	return p.handler, nil
}

// ForceFlush exports pending measurements.
func (p *Provider) ForceFlush(ctx context.Context) error {
	if p.sdkProvider == nil {
		return nil
	}
	return p.sdkProvider.ForceFlush(ctx)
}

// Shutdown flushes and stops the provider. It is safe to call more than once.
func (p *Provider) Shutdown(ctx context.Context) error {
	if !p.isShuttingDown.CompareAndSwap(false, true) {
		return nil
	}
	if p.sdkProvider == nil {
		return nil
	}
	if err := p.sdkProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("meter provider shutdown: %w", err)
	}
	return nil
}
