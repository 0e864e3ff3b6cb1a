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

// Package tracing builds the OpenTelemetry tracer provider handed to the
// navigator engine.
//
// One provider is configured per process. Noop is the default; stdout writes
// each finished span as JSON, which is enough for a development shell:
//
//	tp, err := tracing.New(
//	    tracing.WithServiceName("quantdash"),
//	    tracing.WithStdout(os.Stderr),
//	)
//	defer tp.Shutdown(context.Background())
//	engine := navigator.MustNew(table, hist, navigator.WithTracerProvider(tp.TracerProvider()))
//
// Tests use [TestingProvider], which records spans in memory.
package tracing
