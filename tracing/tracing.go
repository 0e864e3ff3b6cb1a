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

package tracing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Kind identifies the exporter backing a [Provider].
type Kind string

const (
	// NoopProvider exports nothing.
	NoopProvider Kind = "noop"
	// StdoutProvider writes spans as JSON to a writer.
	StdoutProvider Kind = "stdout"
)

// ErrNoServiceName indicates an empty service name.
var ErrNoServiceName = errors.New("service name cannot be empty")

// Provider owns a tracer provider and its shutdown.
type Provider struct {
	kind    Kind
	kindSet bool

	serviceName    string
	serviceVersion string
	sampleRate     float64
	output         io.Writer
	processors     []sdktrace.SpanProcessor
	registerGlobal bool
	logger         *slog.Logger

	validationErrors []error

	tracerProvider trace.TracerProvider
	sdkProvider    *sdktrace.TracerProvider
	isShuttingDown atomic.Bool
}

// New creates a tracer provider.
func New(opts ...Option) (*Provider, error) {
	p := &Provider{
		kind:           NoopProvider,
		serviceName:    "navigator",
		serviceVersion: "unknown",
		sampleRate:     1.0,
		output:         os.Stdout,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}

	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("invalid tracing configuration: %w", err)
	}
	if err := p.initialize(); err != nil {
		return nil, err
	}
	return p, nil
}

// MustNew creates a tracer provider or panics on error.
func MustNew(opts ...Option) *Provider {
	p, err := New(opts...)
	if err != nil {
		panic("tracing initialization failed: " + err.Error())
	}
	return p
}

func (p *Provider) validate() error {
	errs := p.validationErrors
	if p.serviceName == "" {
		errs = append(errs, ErrNoServiceName)
	}
	if p.kind == StdoutProvider && p.output == nil {
		errs = append(errs, errors.New("stdout provider requires a writer"))
	}
	return errors.Join(errs...)
}

func (p *Provider) initialize() error {
	switch p.kind {
	case NoopProvider:
		if len(p.processors) == 0 {
			p.tracerProvider = tracenoop.NewTracerProvider()
			return nil
		}
		p.sdkProvider = p.newSDKProvider()
	case StdoutProvider:
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(p.output))
		if err != nil {
			return fmt.Errorf("failed to create stdout exporter: %w", err)
		}
		p.sdkProvider = p.newSDKProvider(sdktrace.WithSyncer(exporter))
	default:
		return fmt.Errorf("unsupported tracing provider: %s", p.kind)
	}

	p.tracerProvider = p.sdkProvider
	if p.registerGlobal {
		otel.SetTracerProvider(p.sdkProvider)
	}
	p.logger.Info("tracing initialized", "provider", string(p.kind), "service", p.serviceName, "sample_rate", p.sampleRate)
	return nil
}

func (p *Provider) newSDKProvider(opts ...sdktrace.TracerProviderOption) *sdktrace.TracerProvider {
	opts = append(opts,
		sdktrace.WithResource(createResource(p.serviceName, p.serviceVersion)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(p.sampleRate))),
	)
	for _, sp := range p.processors {
		opts = append(opts, sdktrace.WithSpanProcessor(sp))
	}
	return sdktrace.NewTracerProvider(opts...)
}

func createResource(serviceName, serviceVersion string) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
		semconv.ServiceVersion(serviceVersion),
	)
}

// TracerProvider returns the provider to hand to instrumented packages.
func (p *Provider) TracerProvider() trace.TracerProvider {
	return p.tracerProvider
}

// Kind returns the configured exporter kind.
func (p *Provider) Kind() Kind {
	return p.kind
}

// ServiceName returns the service name recorded on the resource.
func (p *Provider) ServiceName() string {
	return p.serviceName
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
		return fmt.Errorf("tracer provider shutdown: %w", err)
	}
	return nil
}
