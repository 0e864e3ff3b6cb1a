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

// Package navigator implements the client-side router engine that drives a
// route table and a history adapter.
//
// An [Engine] owns a [route.Table], a [history.Adapter] and the currently
// active route. Navigation requests (push, replace, or pop from back/forward
// traversal) are matched against the table, applied to history and announced
// to listeners once settled.
//
// # Basic Usage
//
//	table := route.MustNew(
//	    route.Definition{Path: "/", Name: "Home", View: homeView},
//	    route.Definition{Path: "/profit/detail", Name: "ProfitDetail", View: profitView},
//	)
//	hist := history.MustNewMemory()
//
//	nav, err := navigator.New(table, hist,
//	    navigator.WithListener(navigator.ListenerFunc(func(ctx context.Context, s navigator.Settlement) {
//	        render(s.Route.View())
//	    })),
//	)
//
//	_, err = nav.Push(ctx, "/profit/detail").Wait(ctx)
//
// # State Machine
//
// The engine is Idle until a request arrives, Resolving while the request is
// matched and its view prepared, and Settled once the active route has been
// updated and listeners notified, after which it returns to Idle. History is
// pushed or replaced before listeners run, so a settled view never shows a
// stale address.
//
// # Ordering and Supersession
//
// Requests are applied strictly in the order issued. The goroutine that
// finds the engine idle drives the queue until it is empty; requests issued
// meanwhile, including from listeners, are only queued. A listener must not
// call [Navigation.Wait] on a request it issued: the request runs on the
// same goroutine once the listener returns, so waiting deadlocks.
//
// A push or replace supersedes every older request that has not settled yet
// (queued pops excepted, since history has already moved): the superseded
// request is discarded without notification and its [Navigation.Wait]
// reports the outcome of the request that replaced it. A pop in turn
// supersedes the pushes and replaces that have not settled, so the view
// never settles on a location history has already left.
//
// # Not Found
//
// A path that matches no route settles with an [ActiveRoute] whose Route is
// nil. Listeners implementing [NotFoundListener] are told as well. Not found
// is a normal state, not an error.
//
// # Observability
//
// The engine logs through [log/slog], records OpenTelemetry spans and metrics
// when providers are configured with [WithTracerProvider] and
// [WithMeterProvider]. Without them it uses no-op providers.
package navigator
