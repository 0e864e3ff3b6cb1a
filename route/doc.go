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

// Package route provides the route table used by the navigator engine.
//
// This package contains:
//   - Pattern: a parsed path template made of literal and parameter segments
//   - Definition: the declaration of a route (pattern, name, view)
//   - Route: an immutable compiled definition owned by a Table
//   - Table: an ordered, read-only collection of routes with first-match-wins lookup
//   - Constraints: typed parameter validation (int, UUID, regex, enum, etc.)
//
// # Declaring Routes
//
//	table, err := route.New(
//	    route.Definition{Path: "/", Name: "Home", View: homeView},
//	    route.Definition{Path: "/profit/detail", Name: "ProfitDetail", View: profitView},
//	    route.Definition{Path: "/stocks/:code(regex:[0-9]{6})", Name: "Stock", View: stockView},
//	)
//
// Two definitions sharing a name or an identical pattern fail construction
// with a [*DuplicateRouteError].
//
// # Matching
//
// Matching walks the definitions in registration order and returns the first
// one whose segments align with the requested path. Literal segments compare
// case-sensitively after trailing-slash normalization; parameter segments
// bind the concrete segment to the parameter name. No specificity ranking is
// performed, so an earlier "/users/:id" shadows a later "/users/me".
//
//	m := table.Match("/stocks/600519")
//	if m.Found() {
//	    code := m.Params.Get("code") // "600519"
//	}
//
// A path that aligns with nothing yields a Match whose Route is nil. Not
// found is a regular outcome, not an error.
//
// # Reverse Routing
//
// Paths can be rebuilt from a route name and parameters:
//
//	path, err := table.Path("Stock", route.Params{"code": "600519"})
//
// All types in this package are safe for concurrent reads once constructed.
package route
