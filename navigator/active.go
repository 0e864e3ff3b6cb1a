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
	"net/url"
	"strings"

	"rivaas.dev/navigator/route"
)

// Mode is the kind of navigation request.
type Mode uint8

const (
	// ModePush adds a history entry.
	ModePush Mode = iota
	// ModeReplace overwrites the current history entry.
	ModeReplace
	// ModePop follows a back/forward traversal; history is left untouched.
	ModePop
)

func (m Mode) String() string {
	switch m {
	case ModePush:
		return "push"
	case ModeReplace:
		return "replace"
	case ModePop:
		return "pop"
	}
	return "unknown"
}

// State is the engine state.
type State uint8

const (
	StateIdle State = iota
	StateResolving
	StateSettled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResolving:
		return "resolving"
	case StateSettled:
		return "settled"
	}
	return "unknown"
}

// ActiveRoute is the outcome of a settled navigation.
// A nil Route represents the not-found state. Values are shared between
// listeners and must not be modified.
type ActiveRoute struct {
	Route    *route.Route
	Path     string // normalized resolved path
	Params   route.Params
	Query    url.Values
	RawQuery string // query as requested, without '?'
	Fragment string
}

// Found reports whether the path matched a route.
func (a ActiveRoute) Found() bool {
	return a.Route != nil
}

// Name returns the matched route name, or "" when not found.
func (a ActiveRoute) Name() string {
	if a.Route == nil {
		return ""
	}
	return a.Route.Name()
}

// View returns the matched view handle, or nil when not found.
func (a ActiveRoute) View() any {
	if a.Route == nil {
		return nil
	}
	return a.Route.View()
}

// FullPath returns the normalized path followed by the query and fragment
// as requested. It is the string written to history.
func (a ActiveRoute) FullPath() string {
	var buf strings.Builder
	buf.WriteString(a.Path)
	if a.RawQuery != "" {
		buf.WriteByte('?')
		buf.WriteString(a.RawQuery)
	}
	if a.Fragment != "" {
		buf.WriteByte('#')
		buf.WriteString(a.Fragment)
	}
	return buf.String()
}

// SameLocation reports whether a and b address the same location.
// Queries are compared by their parsed pairs, so parameter order is ignored.
func (a ActiveRoute) SameLocation(b ActiveRoute) bool {
	return a.Path == b.Path &&
		a.Fragment == b.Fragment &&
		a.Query.Encode() == b.Query.Encode()
}

// resolve matches a location ("/path?query#fragment") against the table.
func resolve(table *route.Table, location string) (ActiveRoute, route.Match) {
	rest, fragment, _ := strings.Cut(location, "#")
	path, rawQuery, _ := strings.Cut(rest, "?")

	var query url.Values
	if rawQuery != "" {
		// Malformed pairs are dropped; the well-formed ones are kept.
		query, _ = url.ParseQuery(rawQuery)
		if len(query) == 0 {
			query = nil
		}
	}

	m := table.Match(path)
	return ActiveRoute{
		Route:    m.Route,
		Path:     m.Path,
		Params:   m.Params,
		Query:    query,
		RawQuery: rawQuery,
		Fragment: fragment,
	}, m
}
