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

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSources is returned by [Load] when no source was configured.
	ErrNoSources = errors.New("no declaration sources configured")

	// ErrInvalidDeclaration marks a field that fails validation.
	ErrInvalidDeclaration = errors.New("invalid declaration")
)

// Error describes a failure while loading or compiling a declaration.
type Error struct {
	Source    string // where the error occurred, e.g. "source[0]", "json-schema", "routes.yaml"
	Field     string // optional field path, e.g. "routes[1].view"
	Operation string // e.g. "load", "merge", "validate", "decode", "compile"
	Err       error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in %s.%s during %s: %v",
			e.Source, e.Field, e.Operation, e.Err)
	}
	return fmt.Sprintf("config error in %s during %s: %v",
		e.Source, e.Operation, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates an [Error] without a field.
func NewError(source, operation string, err error) *Error {
	return &Error{
		Source:    source,
		Operation: operation,
		Err:       err,
	}
}

// NewFieldError creates an [Error] for a specific field.
func NewFieldError(source, field, operation string, err error) *Error {
	return &Error{
		Source:    source,
		Field:     field,
		Operation: operation,
		Err:       err,
	}
}

// ViewNotFoundError reports a route whose view reference has no registered view.
type ViewNotFoundError struct {
	Route string
	Ref   string
}

func (e *ViewNotFoundError) Error() string {
	return fmt.Sprintf("view %q for route %q is not registered", e.Ref, e.Route)
}
