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

// Package metrics builds the OpenTelemetry meter provider handed to the
// navigator engine.
//
// Prometheus exposes the engine's navigation counters on a client_golang
// registry; stdout periodically prints them; noop (the default) drops them.
//
//	mp, err := metrics.New(metrics.WithPrometheus(nil))
//	defer mp.Shutdown(context.Background())
//	engine := navigator.MustNew(table, hist, navigator.WithMeterProvider(mp.MeterProvider()))
//	handler, _ := mp.Handler() // serve on /metrics
//
// Tests use [TestingProvider], which collects on demand.
package metrics
