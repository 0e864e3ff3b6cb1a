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
	"fmt"
	"io"
	"log/slog"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option configures a [Provider].
type Option func(*Provider)

func (p *Provider) setKind(k Kind) {
	if p.kindSet {
		p.validationErrors = append(p.validationErrors,
			fmt.Errorf("provider: multiple providers configured (already have %q, cannot add %q); only one provider allowed", p.kind, k))
		return
	}
	p.kind = k
	p.kindSet = true
}

// WithNoop configures the noop provider (default).
//
// Only one provider can be configured.
func WithNoop() Option {
	return func(p *Provider) { p.setKind(NoopProvider) }
}

// WithStdout writes finished spans to w as JSON.
//
// Only one provider can be configured.
func WithStdout(w io.Writer) Option {
	return func(p *Provider) {
		p.setKind(StdoutProvider)
		p.output = w
	}
}

// WithServiceName sets the service.name resource attribute.
func WithServiceName(name string) Option {
	return func(p *Provider) { p.serviceName = name }
}

// WithServiceVersion sets the service.version resource attribute.
func WithServiceVersion(version string) Option {
	return func(p *Provider) { p.serviceVersion = version }
}

// WithSampleRate sets the sampling rate (0.0 to 1.0).
// Values outside this range are clamped.
func WithSampleRate(rate float64) Option {
	return func(p *Provider) {
		p.sampleRate = min(max(rate, 0.0), 1.0)
	}
}

// WithSpanProcessor adds a span processor. A noop provider with processors
// becomes an SDK provider without an exporter.
func WithSpanProcessor(sp sdktrace.SpanProcessor) Option {
	return func(p *Provider) {
		if sp != nil {
			p.processors = append(p.processors, sp)
		}
	}
}

// WithGlobalTracerProvider also registers the provider with otel.SetTracerProvider.
// By default the global provider is left untouched.
func WithGlobalTracerProvider() Option {
	return func(p *Provider) { p.registerGlobal = true }
}

// WithLogger sets the logger for provider lifecycle messages.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) {
		if logger != nil {
			p.logger = logger
		}
	}
}
