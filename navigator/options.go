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

package navigator

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Option defines functional options for engine configuration.
type Option func(*Engine)

// WithLogger sets the logger. State transitions are logged at debug level,
// not-found settlements at warn and failures at error.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithTracerProvider enables a span per navigation.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(e *Engine) {
		if tp != nil {
			e.tracerProvider = tp
		}
	}
}

// WithMeterProvider enables navigation metrics.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(e *Engine) {
		if mp != nil {
			e.meterProvider = mp
		}
	}
}

// WithPreparer sets the view preparation hook.
//
// Example:
//
//	navigator.WithPreparer(navigator.PreparerFunc(func(ctx context.Context, m route.Match) error {
//	    if !m.Found() {
//	        return nil
//	    }
//	    return views.Load(ctx, m.Route.Name())
//	}))
func WithPreparer(p Preparer) Option {
	return func(e *Engine) { e.preparer = p }
}

// WithListener registers a listener at construction time.
// It may be given several times; listeners are notified in registration order.
func WithListener(l Listener) Option {
	return func(e *Engine) {
		if l != nil {
			e.appendListener(l)
		}
	}
}
