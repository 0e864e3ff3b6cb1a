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
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "rivaas.dev/navigator"

// outcome is the navigation.outcome attribute value.
type outcome string

const (
	outcomeSettled    outcome = "settled"
	outcomeNotFound   outcome = "not_found"
	outcomeFailed     outcome = "failed"
	outcomeSuperseded outcome = "superseded"
	outcomeCanceled   outcome = "canceled"
)

// instruments bundles the tracer and metric instruments of an Engine.
type instruments struct {
	tracer     trace.Tracer
	count      metric.Int64Counter
	duration   metric.Float64Histogram
	queueDepth metric.Int64UpDownCounter
}

func newInstruments(tp trace.TracerProvider, mp metric.MeterProvider) (*instruments, error) {
	meter := mp.Meter(instrumentationName)

	count, err := meter.Int64Counter(
		"navigator.navigations",
		metric.WithDescription("Navigation requests by mode and outcome"),
		metric.WithUnit("{navigation}"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"navigator.navigation.duration",
		metric.WithDescription("Time from issue to settlement of a navigation"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	queueDepth, err := meter.Int64UpDownCounter(
		"navigator.queue.depth",
		metric.WithDescription("Navigation requests waiting to be resolved"),
		metric.WithUnit("{navigation}"),
	)
	if err != nil {
		return nil, err
	}

	return &instruments{
		tracer:     tp.Tracer(instrumentationName),
		count:      count,
		duration:   duration,
		queueDepth: queueDepth,
	}, nil
}

// start opens the navigation span.
func (in *instruments) start(ctx context.Context, n *Navigation) (context.Context, trace.Span) {
	return in.tracer.Start(ctx, "navigator.navigate",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.Int64("navigation.id", int64(n.id)),
			attribute.String("navigation.mode", n.mode.String()),
			attribute.String("navigation.target", n.target),
		),
	)
}

// finish closes the span and records the outcome.
func (in *instruments) finish(ctx context.Context, span trace.Span, n *Navigation, out outcome, r ActiveRoute, err error) {
	span.SetAttributes(attribute.String("navigation.outcome", string(out)))
	if r.Found() {
		span.SetAttributes(
			attribute.String("route.name", r.Name()),
			attribute.String("route.path", r.Route.Path()),
		)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()

	in.record(ctx, n, out)
}

// record counts a navigation outcome and its duration.
func (in *instruments) record(ctx context.Context, n *Navigation, out outcome) {
	attrs := metric.WithAttributes(
		attribute.String("navigation.mode", n.mode.String()),
		attribute.String("navigation.outcome", string(out)),
	)
	in.count.Add(ctx, 1, attrs)
	in.duration.Record(ctx, time.Since(n.queuedAt).Seconds(), attrs)
}

func (in *instruments) queued(ctx context.Context, delta int64) {
	in.queueDepth.Add(ctx, delta)
}
