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

package route

import (
	"errors"
	"fmt"
)

// Table is an ordered collection of routes. Registration order decides
// match precedence. A Table is immutable after [New] returns and safe for
// concurrent use.
type Table struct {
	routes []*Route
	byName map[string]*Route
}

// New compiles the definitions into a Table.
// Every invalid or colliding definition is reported; the errors are joined
// so callers can use [errors.As] with [*DuplicateRouteError] or
// [*InvalidPatternError].
func New(defs ...Definition) (*Table, error) {
	t := &Table{
		routes: make([]*Route, 0, len(defs)),
		byName: make(map[string]*Route, len(defs)),
	}
	byPattern := make(map[string]*Route, len(defs))

	var errs error
	for i, def := range defs {
		r, err := compile(def, i)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}

		canonical := r.pattern.String()
		if prev, ok := t.byName[r.name]; ok {
			errs = errors.Join(errs, &DuplicateRouteError{
				Kind:     DuplicateName,
				Name:     r.name,
				Pattern:  canonical,
				Previous: prev.name,
			})
			continue
		}
		if prev, ok := byPattern[canonical]; ok {
			errs = errors.Join(errs, &DuplicateRouteError{
				Kind:     DuplicatePattern,
				Name:     r.name,
				Pattern:  canonical,
				Previous: prev.name,
			})
			continue
		}

		r.index = len(t.routes)
		t.routes = append(t.routes, r)
		t.byName[r.name] = r
		byPattern[canonical] = r
	}

	if errs != nil {
		return nil, errs
	}
	return t, nil
}

// MustNew is like [New] but panics on error.
// Intended for static declarations compiled at program start.
func MustNew(defs ...Definition) *Table {
	t, err := New(defs...)
	if err != nil {
		panic("route table construction failed: " + err.Error())
	}
	return t
}

// Match resolves a path to the first route that aligns with it.
// The path is normalized first; a query string or fragment must already be
// stripped by the caller. Match has no side effects.
func (t *Table) Match(path string) Match {
	parts := splitPath(path)
	normalized := "/"
	if len(parts) > 0 {
		normalized = NormalizePath(path)
	}
	decoded := decodeSegments(parts)

	for _, r := range t.routes {
		if params, ok := r.pattern.align(decoded); ok {
			return Match{Route: r, Params: params, Path: normalized}
		}
	}
	return Match{Path: normalized}
}

// Lookup returns the route registered under name.
func (t *Table) Lookup(name string) (*Route, bool) {
	r, ok := t.byName[name]
	return r, ok
}

// Routes returns the routes in registration order.
func (t *Table) Routes() []*Route {
	out := make([]*Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Len returns the number of routes.
func (t *Table) Len() int {
	return len(t.routes)
}

// Path builds the concrete path of the named route.
//
// Example:
//
//	path, err := table.Path("Stock", route.Params{"code": "600519"}) // "/stocks/600519"
func (t *Table) Path(name string, params Params) (string, error) {
	r, ok := t.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrRouteNotFound, name)
	}
	return r.pattern.Build(params)
}
