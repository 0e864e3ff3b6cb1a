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
)

// Navigation is the handle of a navigation request.
// It completes once the request has settled, failed, or been superseded.
// A superseded navigation completes with the outcome of the request that
// superseded it.
type Navigation struct {
	id       uint64
	mode     Mode
	target   string
	ctx      context.Context
	cancel   context.CancelCauseFunc
	queuedAt time.Time

	// Guarded by Engine.mu.
	superseded bool
	followers  []*Navigation

	done  chan struct{}
	route ActiveRoute
	err   error
}

func newNavigation(ctx context.Context, id uint64, target string, mode Mode) *Navigation {
	if ctx == nil {
		ctx = context.Background()
	}
	nctx, cancel := context.WithCancelCause(ctx)
	return &Navigation{
		id:       id,
		mode:     mode,
		target:   target,
		ctx:      nctx,
		cancel:   cancel,
		queuedAt: time.Now(),
		done:     make(chan struct{}),
	}
}

// ID returns the navigation ID. IDs increase in issue order.
func (n *Navigation) ID() uint64 {
	return n.id
}

// Mode returns the request mode.
func (n *Navigation) Mode() Mode {
	return n.mode
}

// Target returns the requested location as given by the caller.
func (n *Navigation) Target() string {
	return n.target
}

// Done returns a channel closed when the navigation completes.
func (n *Navigation) Done() <-chan struct{} {
	return n.done
}

// Wait blocks until the navigation completes or ctx ends.
// It returns the active route the navigation settled on, or a
// [*NavigationError] when it failed.
//
// Wait must not be called from a listener on a navigation the listener
// issued: that navigation is resolved by the goroutine running the listener,
// after it returns, so Wait would block forever unless ctx ends.
func (n *Navigation) Wait(ctx context.Context) (ActiveRoute, error) {
	select {
	case <-n.done:
		return n.route, n.err
	case <-ctx.Done():
		return ActiveRoute{}, ctx.Err()
	}
}

// complete records the outcome and releases waiters. Called once.
func (n *Navigation) complete(r ActiveRoute, err error) {
	n.route, n.err = r, err
	n.cancel(nil)
	close(n.done)
}

// completed returns a navigation that is already done.
func completed(id uint64, target string, mode Mode, r ActiveRoute, err error) *Navigation {
	n := newNavigation(context.Background(), id, target, mode)
	n.complete(r, err)
	return n
}
