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

// Package app assembles a ready-to-use navigator: route declaration, history
// adapter, engine, logging, metrics and tracing.
//
// The defaults give the dashboard declaration (Home at "/", ProfitDetail at
// "/profit/detail") over an in-memory path-mode history, a console logger in
// development and no-op telemetry:
//
//	a, err := app.New(
//	    app.WithServiceName("quantdash"),
//	    app.WithDeclarationFile("routes.yaml"),
//	    app.WithViews(config.Views{"home": homeView, "profit-detail": profitView}),
//	    app.WithMetrics(metrics.WithPrometheus(nil)),
//	    app.WithEnv(),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer a.Shutdown(context.Background())
//
//	a.Engine().Push(ctx, "/profit/detail").Wait(ctx)
//
// # Environment
//
// [WithEnv] reads NAVIGATOR_* variables; see [WithEnvPrefix] for the list.
//
// # Banner
//
// In development, [WithBanner] prints the service name and the route table
// when the app is built. Production output has ANSI sequences stripped.
package app
