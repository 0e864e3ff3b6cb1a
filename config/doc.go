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

// Package config loads route declarations for the navigator.
//
// A declaration names every screen of an application together with the
// history mode used to represent locations:
//
//	history:
//	  mode: hash
//	  base: /app
//	routes:
//	  - path: /
//	    name: Home
//	    view: home
//	  - path: /profit/detail
//	    name: ProfitDetail
//	    view: profit-detail
//
// Sources are merged in order, later sources override earlier ones, and keys
// are case-insensitive. The merged document is checked against an embedded
// JSON Schema before it is decoded into a [Declaration].
//
// # Loading
//
//	decl, err := config.Load(ctx,
//	    config.WithFile("routes.yaml"),
//	    config.WithEnv("NAVIGATOR_"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	table, err := decl.Table(config.Views{
//	    "home":          homeView,
//	    "profit-detail": profitView,
//	})
//
// With the NAVIGATOR_ prefix, NAVIGATOR_HISTORY_MODE and NAVIGATOR_HISTORY_BASE
// override the history section. Variables that do not map onto the
// declaration are ignored by the loader.
//
// # Errors
//
// Failures are reported as [*Error] values naming the source and the
// operation that failed. Unresolved view references are [*ViewNotFoundError].
package config
