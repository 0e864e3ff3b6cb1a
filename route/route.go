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
	"fmt"
	"maps"
)

// Definition declares a route before it is compiled into a [Table].
//
// Path uses literal and ":param" segments, optionally constrained inline
// (":id(int)"). Constraints adds constraints by parameter name and wins over
// an inline declaration of the same parameter. View is an opaque handle that
// only the presentation layer interprets.
type Definition struct {
	Path        string
	Name        string
	View        any
	Meta        map[string]string
	Constraints map[string]string
}

// Route is a compiled, immutable route owned by a [Table].
type Route struct {
	pattern Pattern
	path    string // declared path, as written
	name    string
	view    any
	meta    map[string]string
	index   int
}

// compile validates a definition and builds its Route.
func compile(def Definition, index int) (*Route, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("route %q: %w", def.Path, ErrEmptyName)
	}

	pattern, err := ParsePattern(def.Path)
	if err != nil {
		return nil, err
	}

	if len(def.Constraints) > 0 {
		byName := make(map[string]int, len(pattern.segments))
		for i, seg := range pattern.segments {
			if !seg.Static {
				byName[seg.Value] = i
			}
		}
		for param, decl := range def.Constraints {
			i, ok := byName[param]
			if !ok {
				return nil, &InvalidPatternError{Pattern: def.Path, Reason: fmt.Sprintf("constraint on unknown parameter %q", param)}
			}
			pc, err := ParseConstraint(decl)
			if err != nil {
				return nil, &InvalidPatternError{Pattern: def.Path, Reason: err.Error(), Err: err}
			}
			pattern.segments[i].Constraint = pc
		}
	}

	return &Route{
		pattern: pattern,
		path:    def.Path,
		name:    def.Name,
		view:    def.View,
		meta:    maps.Clone(def.Meta),
		index:   index,
	}, nil
}

// Name returns the route name.
func (r *Route) Name() string {
	return r.name
}

// Pattern returns the parsed route pattern.
func (r *Route) Pattern() Pattern {
	return r.pattern
}

// Path returns the path pattern as declared.
func (r *Route) Path() string {
	return r.path
}

// View returns the opaque view handle.
func (r *Route) View() any {
	return r.view
}

// Meta returns the value stored under key in the route metadata.
func (r *Route) Meta(key string) string {
	return r.meta[key]
}

// Index returns the registration position of the route in its table.
func (r *Route) Index() int {
	return r.index
}

// Params holds parameter values bound during matching.
type Params map[string]string

// Get returns the value of the named parameter, or "" when absent.
func (p Params) Get(name string) string {
	return p[name]
}

// Match is the result of [Table.Match]. A nil Route means not found.
type Match struct {
	Route  *Route
	Params Params
	Path   string // normalized requested path
}

// Found reports whether a route matched.
func (m Match) Found() bool {
	return m.Route != nil
}
