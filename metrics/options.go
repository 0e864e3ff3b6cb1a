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
	"fmt"
	"io"
	"log/slog"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
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
func WithNoop() Option {
	return func(p *Provider) { p.setKind(NoopProvider) }
}

// WithPrometheus exports to registry. A nil registry creates a private one;
// the global default registry is never used.
func WithPrometheus(registry *promclient.Registry) Option {
	return func(p *Provider) {
		p.setKind(PrometheusProvider)
		p.registry = registry
	}
}

// WithStdout periodically writes measurements to w.
func WithStdout(w io.Writer) Option {
	return func(p *Provider) {
		p.setKind(StdoutProvider)
		p.output = w
	}
}

// WithReader collects through reader, typically an [sdkmetric.ManualReader].
func WithReader(reader sdkmetric.Reader) Option {
	return func(p *Provider) {
		p.setKind(ReaderProvider)
		p.reader = reader
	}
}

// WithExportInterval sets the stdout export interval. Default is 30s.
func WithExportInterval(interval time.Duration) Option {
	return func(p *Provider) { p.exportInterval = interval }
}

// WithServiceName sets the service.name resource attribute.
func WithServiceName(name string) Option {
	return func(p *Provider) { p.serviceName = name }
}

// WithServiceVersion sets the service.version resource attribute.
func WithServiceVersion(version string) Option {
	return func(p *Provider) { p.serviceVersion = version }
}

// WithGlobalMeterProvider also registers the provider with otel.SetMeterProvider.
func WithGlobalMeterProvider() Option {
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
