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

	"rivaas.dev/navigator/route"
)

// Settlement describes a settled navigation.
type Settlement struct {
	ID    uint64      // navigation ID
	Mode  Mode        // request mode
	Route ActiveRoute // new active route
	From  ActiveRoute // previous active route

	// Duplicate is true when the target equals the previous active route.
	// No history entry was written in that case.
	Duplicate bool
}

// Listener is the presentation layer's view of the engine.
// OnRouteSettled is called for every settled navigation, including not
// found ones; render Route.View() or a not-found view when !Route.Found().
//
// Listeners run synchronously on the goroutine driving the engine. They may
// call Navigate; the request is queued and applied after the current one.
type Listener interface {
	OnRouteSettled(ctx context.Context, s Settlement)
}

// ListenerFunc is a function adapter for Listener.
type ListenerFunc func(ctx context.Context, s Settlement)

func (f ListenerFunc) OnRouteSettled(ctx context.Context, s Settlement) {
	f(ctx, s)
}

// NotFoundListener is optionally implemented by a Listener to receive a
// separate notification when a navigation settles without a match.
// It is called after OnRouteSettled.
type NotFoundListener interface {
	OnRouteNotFound(ctx context.Context, s Settlement)
}

// ErrorListener is optionally implemented by a Listener to receive failed
// navigations.
type ErrorListener interface {
	OnNavigationError(ctx context.Context, err *NavigationError)
}

// Preparer prepares the view of a matched route before it is announced,
// e.g. by lazily loading it. Prepare is the only point at which a
// navigation suspends; ctx is cancelled if the navigation is superseded.
// It is called for not-found matches too (m.Found() == false).
type Preparer interface {
	Prepare(ctx context.Context, m route.Match) error
}

// PreparerFunc is a function adapter for Preparer.
type PreparerFunc func(ctx context.Context, m route.Match) error

func (f PreparerFunc) Prepare(ctx context.Context, m route.Match) error {
	return f(ctx, m)
}
