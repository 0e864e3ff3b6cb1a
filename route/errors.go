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

var (
	// ErrRouteNotFound indicates that no route is registered under the given name.
	ErrRouteNotFound = errors.New("route not found")

	// ErrMissingParameter indicates that a required parameter for the route is missing.
	ErrMissingParameter = errors.New("missing required parameter")

	// ErrInvalidParameter indicates that a parameter value violates its constraint.
	ErrInvalidParameter = errors.New("invalid parameter value")

	// ErrInvalidConstraint indicates that a constraint declaration cannot be parsed.
	ErrInvalidConstraint = errors.New("invalid constraint")

	// ErrEmptyName indicates that a route definition has no name.
	ErrEmptyName = errors.New("route name cannot be empty")
)

// DuplicateKind tells which field of a definition collided.
type DuplicateKind string

const (
	DuplicateName    DuplicateKind = "name"
	DuplicatePattern DuplicateKind = "pattern"
)

// DuplicateRouteError is returned by [New] when two definitions share a
// name or an identical pattern. It is a declaration bug and is never
// recovered at runtime.
type DuplicateRouteError struct {
	Kind     DuplicateKind
	Name     string // name of the later definition
	Pattern  string // canonical pattern of the later definition
	Previous string // name of the earlier definition it collides with
}

func (e *DuplicateRouteError) Error() string {
	if e.Kind == DuplicateName {
		return fmt.Sprintf("duplicate route name %q (pattern %s)", e.Name, e.Pattern)
	}
	return fmt.Sprintf("duplicate route pattern %s: %q collides with %q", e.Pattern, e.Name, e.Previous)
}

// InvalidPatternError is returned when a route path cannot be parsed.
type InvalidPatternError struct {
	Pattern string
	Reason  string
	Err     error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid route pattern %q: %s", e.Pattern, e.Reason)
}

func (e *InvalidPatternError) Unwrap() error {
	return e.Err
}

// IsDuplicate reports whether err contains a [*DuplicateRouteError].
func IsDuplicate(err error) bool {
	var dup *DuplicateRouteError
	return errors.As(err, &dup)
}
