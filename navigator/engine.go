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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"rivaas.dev/navigator/history"
	"rivaas.dev/navigator/route"
)

// noopLogger is used when no logger is configured.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Engine is the router engine. It matches navigation requests against its
// route table, keeps history in step and notifies listeners.
//
// An Engine is safe for concurrent use. There is no package-level engine;
// construct one with [New] and pass it to whatever needs to navigate.
type Engine struct {
	table   *route.Table
	history history.Adapter

	logger         *slog.Logger
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
	preparer       Preparer
	obs            *instruments

	nextID atomic.Uint64

	mu          sync.Mutex
	state       State
	active      ActiveRoute
	queue       []*Navigation // FIFO, head is next to resolve
	inflight    *Navigation   // resolving and still supersedable
	driving     bool          // a goroutine is draining the queue
	closed      bool
	listeners   []listenerEntry
	listenerSeq uint64
	unlisten    func()
}

type listenerEntry struct {
	id uint64
	l  Listener
}

// New creates an engine over table and hist. The active route is resolved
// from the current history location without notifying listeners, and the
// engine starts listening for pop events.
func New(table *route.Table, hist history.Adapter, opts ...Option) (*Engine, error) {
	if table == nil {
		return nil, ErrNilTable
	}
	if hist == nil {
		return nil, ErrNilHistory
	}

	e := &Engine{
		table:          table,
		history:        hist,
		logger:         noopLogger,
		tracerProvider: tracenoop.NewTracerProvider(),
		meterProvider:  metricnoop.NewMeterProvider(),
		state:          StateIdle,
	}
	for _, opt := range opts {
		opt(e)
	}

	obs, err := newInstruments(e.tracerProvider, e.meterProvider)
	if err != nil {
		return nil, fmt.Errorf("navigator: create instruments: %w", err)
	}
	e.obs = obs

	e.active, _ = resolve(table, hist.Location())
	e.unlisten = hist.Listen(e.onPop)

	e.logger.Debug("navigator initialized",
		"location", e.active.FullPath(),
		"route", e.active.Name(),
		"routes", table.Len(),
	)
	return e, nil
}

// MustNew is like [New] but panics on error.
func MustNew(table *route.Table, hist history.Adapter, opts ...Option) *Engine {
	e, err := New(table, hist, opts...)
	if err != nil {
		panic("navigator initialization failed: " + err.Error())
	}
	return e
}

// Table returns the route table.
func (e *Engine) Table() *route.Table {
	return e.table
}

// History returns the history adapter.
func (e *Engine) History() history.Adapter {
	return e.history
}

// Active returns the active route.
func (e *Engine) Active() ActiveRoute {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// State returns the current engine state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Subscribe registers a listener and returns a function that removes it.
func (e *Engine) Subscribe(l Listener) (unsubscribe func()) {
	e.mu.Lock()
	id := e.appendListener(l)
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			for i, entry := range e.listeners {
				if entry.id == id {
					e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

func (e *Engine) appendListener(l Listener) uint64 {
	e.listenerSeq++
	e.listeners = append(e.listeners, listenerEntry{id: e.listenerSeq, l: l})
	return e.listenerSeq
}

func (e *Engine) snapshotListenersLocked() []Listener {
	out := make([]Listener, len(e.listeners))
	for i, entry := range e.listeners {
		out[i] = entry.l
	}
	return out
}

// Push navigates to location and adds a history entry.
func (e *Engine) Push(ctx context.Context, location string) *Navigation {
	return e.Navigate(ctx, location, ModePush)
}

// Replace navigates to location and overwrites the current history entry.
func (e *Engine) Replace(ctx context.Context, location string) *Navigation {
	return e.Navigate(ctx, location, ModeReplace)
}

// PushNamed builds the path of the named route and pushes it.
func (e *Engine) PushNamed(ctx context.Context, name string, params route.Params) *Navigation {
	return e.navigateNamed(ctx, name, params, ModePush)
}

// ReplaceNamed builds the path of the named route and replaces the current entry with it.
func (e *Engine) ReplaceNamed(ctx context.Context, name string, params route.Params) *Navigation {
	return e.navigateNamed(ctx, name, params, ModeReplace)
}

func (e *Engine) navigateNamed(ctx context.Context, name string, params route.Params, mode Mode) *Navigation {
	path, err := e.table.Path(name, params)
	if err != nil {
		id := e.nextID.Add(1)
		return completed(id, name, mode, ActiveRoute{}, &NavigationError{ID: id, Path: name, Mode: mode, Err: err})
	}
	return e.Navigate(ctx, path, mode)
}

// Back asks the history adapter to go one entry back.
// The resulting pop event navigates the engine.
func (e *Engine) Back() error {
	return e.Go(-1)
}

// Forward asks the history adapter to go one entry forward.
func (e *Engine) Forward() error {
	return e.Go(1)
}

// Go asks the history adapter to move delta entries.
func (e *Engine) Go(delta int) error {
	t, ok := e.history.(history.Traverser)
	if !ok {
		return ErrTraversalUnsupported
	}
	return t.Go(delta)
}

func (e *Engine) onPop(ev history.PopEvent) {
	e.Navigate(context.Background(), ev.To, ModePop)
}

// Navigate issues a navigation request.
//
// If the engine is idle, the calling goroutine resolves the request (and
// any request queued meanwhile) before Navigate returns. Otherwise the
// request is queued behind the in-flight one and Navigate returns at once;
// use [Navigation.Wait] to block until it completes.
//
// A push or replace supersedes all older requests that have not settled,
// except queued pops. A pop supersedes the pushes and replaces that have
// not settled, since history has already moved to its target.
func (e *Engine) Navigate(ctx context.Context, location string, mode Mode) *Navigation {
	n := newNavigation(ctx, e.nextID.Add(1), location, mode)

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		n.complete(ActiveRoute{}, &NavigationError{ID: n.id, Path: location, Mode: mode, Err: ErrClosed})
		return n
	}
	e.supersedeLocked(n)
	e.queue = append(e.queue, n)
	e.obs.queued(context.Background(), 1)

	if e.driving {
		depth := len(e.queue)
		e.mu.Unlock()
		e.logger.Debug("navigation queued", "navigation_id", n.id, "mode", mode.String(), "target", location, "depth", depth)
		return n
	}
	e.driving = true
	e.mu.Unlock()

	e.drain()
	return n
}

// supersedeLocked marks every pending request that newer replaces.
// Pops are only ever superseded by an in-flight push or replace.
func (e *Engine) supersedeLocked(newer *Navigation) {
	if old := e.inflight; old != nil && !old.superseded && (newer.mode != ModePop || old.mode != ModePop) {
		e.transferLocked(old, newer)
	}
	for _, old := range e.queue {
		if old.superseded || old.mode == ModePop {
			continue
		}
		e.transferLocked(old, newer)
	}
}

// transferLocked makes old (and everything waiting on it) wait on newer.
func (e *Engine) transferLocked(old, newer *Navigation) {
	old.superseded = true
	newer.followers = append(newer.followers, old)
	newer.followers = append(newer.followers, old.followers...)
	old.followers = nil
	old.cancel(errSuperseded)
}

// drain resolves queued requests until the queue is empty.
func (e *Engine) drain() {
	for {
		e.mu.Lock()
		n := e.nextLocked()
		if n == nil {
			e.driving = false
			e.state = StateIdle
			e.mu.Unlock()
			return
		}
		e.inflight = n
		e.state = StateResolving
		e.mu.Unlock()

		e.run(n)
	}
}

// nextLocked dequeues the next request, dropping superseded ones.
func (e *Engine) nextLocked() *Navigation {
	for len(e.queue) > 0 {
		n := e.queue[0]
		e.queue[0] = nil
		e.queue = e.queue[1:]
		e.obs.queued(context.Background(), -1)

		if n.superseded {
			e.obs.record(context.Background(), n, outcomeSuperseded)
			e.logger.Debug("navigation superseded before resolving", "navigation_id", n.id, "target", n.target)
			continue
		}
		return n
	}
	return nil
}

// run resolves one request: match, prepare, commit, write history, notify.
func (e *Engine) run(n *Navigation) {
	ctx, span := e.obs.start(n.ctx, n)
	log := e.logger.With("navigation_id", n.id, "mode", n.mode.String(), "target", n.target)
	log.Debug("navigation resolving")

	next, m := resolve(e.table, n.target)

	if err := e.prepare(ctx, m); err != nil {
		e.mu.Lock()
		if e.inflight == n {
			e.inflight = nil
		}
		superseded := n.superseded
		e.mu.Unlock()

		if superseded || errors.Is(context.Cause(n.ctx), errSuperseded) {
			e.discard(ctx, span, n, log)
			return
		}
		e.fail(ctx, span, n, err, log)
		return
	}

	var location string
	if n.mode == ModePop {
		location = e.history.Location()
	}

	e.mu.Lock()
	if e.inflight == n {
		e.inflight = nil
	}
	if n.superseded {
		e.mu.Unlock()
		e.discard(ctx, span, n, log)
		return
	}
	if e.closed {
		e.mu.Unlock()
		e.fail(ctx, span, n, ErrClosed, log)
		return
	}
	from := e.active
	e.mu.Unlock()

	// A commit that landed after the pop event moved history again.
	if n.mode == ModePop && location != n.target {
		log.Debug("pop overtaken by history", "location", location)
		e.obs.finish(ctx, span, n, outcomeSuperseded, ActiveRoute{}, nil)
		e.finish(n, from, nil)
		return
	}

	// From here on the request is committed and can no longer be superseded.
	duplicate := n.mode != ModePop && next.SameLocation(from)
	if !duplicate {
		if err := e.writeHistory(n.mode, next.FullPath()); err != nil {
			e.fail(ctx, span, n, err, log)
			return
		}
	}

	e.mu.Lock()
	e.active = next
	e.state = StateSettled
	listeners := e.snapshotListenersLocked()
	e.mu.Unlock()

	out := outcomeSettled
	if next.Found() {
		log.Debug("navigation settled", "route", next.Name(), "path", next.FullPath(), "duplicate", duplicate)
	} else {
		out = outcomeNotFound
		log.Warn("route not found", "path", next.Path)
	}

	e.notify(ctx, listeners, Settlement{
		ID:        n.id,
		Mode:      n.mode,
		Route:     next,
		From:      from,
		Duplicate: duplicate,
	})
	e.obs.finish(ctx, span, n, out, next, nil)
	e.finish(n, next, nil)
}

// prepare runs the preparer, the only suspension point of a navigation.
func (e *Engine) prepare(ctx context.Context, m route.Match) error {
	if ctx.Err() != nil {
		return context.Cause(ctx)
	}
	if e.preparer == nil {
		return nil
	}
	return e.preparer.Prepare(ctx, m)
}

func (e *Engine) writeHistory(mode Mode, location string) error {
	switch mode {
	case ModePush:
		return e.history.Push(location)
	case ModeReplace:
		return e.history.Replace(location)
	}
	return nil
}

func (e *Engine) notify(ctx context.Context, listeners []Listener, s Settlement) {
	for _, l := range listeners {
		l.OnRouteSettled(ctx, s)
		if s.Route.Found() {
			continue
		}
		if nf, ok := l.(NotFoundListener); ok {
			nf.OnRouteNotFound(ctx, s)
		}
	}
}

// discard drops a superseded request. Its waiters were moved to the
// request that superseded it.
func (e *Engine) discard(ctx context.Context, span trace.Span, n *Navigation, log *slog.Logger) {
	log.Debug("navigation superseded")
	e.obs.finish(ctx, span, n, outcomeSuperseded, ActiveRoute{}, nil)
}

// fail completes a request that could not settle.
func (e *Engine) fail(ctx context.Context, span trace.Span, n *Navigation, err error, log *slog.Logger) {
	navErr := &NavigationError{ID: n.id, Path: n.target, Mode: n.mode, Err: err}

	out := outcomeFailed
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrClosed) {
		out = outcomeCanceled
		log.Info("navigation canceled", "error", err)
	} else {
		log.Error("navigation failed", "error", err)
	}

	e.mu.Lock()
	listeners := e.snapshotListenersLocked()
	e.mu.Unlock()

	for _, l := range listeners {
		if el, ok := l.(ErrorListener); ok {
			el.OnNavigationError(ctx, navErr)
		}
	}
	e.obs.finish(ctx, span, n, out, ActiveRoute{}, navErr)
	e.finish(n, ActiveRoute{}, navErr)
}

// finish completes n and every navigation it superseded.
func (e *Engine) finish(n *Navigation, r ActiveRoute, err error) {
	e.mu.Lock()
	followers := n.followers
	n.followers = nil
	e.mu.Unlock()

	n.complete(r, err)
	for _, f := range followers {
		f.complete(r, err)
	}
}

// Close stops listening to history and fails queued requests with
// [ErrClosed]. An in-flight request is cancelled. Close is idempotent.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	pending := e.queue
	e.queue = nil
	if e.inflight != nil {
		e.inflight.cancel(ErrClosed)
	}
	e.mu.Unlock()

	if e.unlisten != nil {
		e.unlisten()
	}

	for _, n := range pending {
		e.obs.queued(context.Background(), -1)
		if n.superseded {
			continue
		}
		e.finish(n, ActiveRoute{}, &NavigationError{ID: n.id, Path: n.target, Mode: n.mode, Err: ErrClosed})
	}

	e.logger.Debug("navigator closed", "dropped", len(pending))
	return nil
}
