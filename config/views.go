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

package config

// ViewResolver maps a view reference from a declaration to the value the
// route table stores as the route's view.
type ViewResolver interface {
	ResolveView(ref string) (any, bool)
}

// ViewResolverFunc adapts a function to [ViewResolver].
type ViewResolverFunc func(ref string) (any, bool)

func (f ViewResolverFunc) ResolveView(ref string) (any, bool) { return f(ref) }

// Views is a [ViewResolver] backed by a map.
type Views map[string]any

func (v Views) ResolveView(ref string) (any, bool) {
	view, ok := v[ref]
	return view, ok
}
