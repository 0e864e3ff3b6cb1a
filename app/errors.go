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

package app

import (
	"fmt"
	"strings"
)

// ConfigError describes one invalid application setting.
type ConfigError struct {
	// Field is the setting that failed validation.
	Field string
	// Value is the provided value; nil when the setting is missing.
	Value any
	// Message explains the failure.
	Message string
	// Constraint names the violated rule, e.g. "must be between 0 and 1".
	Constraint string
}

func (e *ConfigError) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("configuration error in %s: %s (constraint: %s, value: %v)",
			e.Field, e.Message, e.Constraint, e.Value)
	}
	if e.Value != nil {
		return fmt.Sprintf("configuration error in %s: %s (value: %v)",
			e.Field, e.Message, e.Value)
	}

	return fmt.Sprintf("configuration error in %s: %s", e.Field, e.Message)
}

// ValidationError collects every [ConfigError] found while building an app.
type ValidationError struct {
	Errors []*ConfigError
}

func (ve *ValidationError) Error() string {
	if len(ve.Errors) == 0 {
		return "validation errors: (no errors)"
	}
	if len(ve.Errors) == 1 {
		return ve.Errors[0].Error()
	}

	var msg strings.Builder
	_, _ = fmt.Fprintf(&msg, "validation errors (%d):", len(ve.Errors))
	for i, err := range ve.Errors {
		_, _ = fmt.Fprintf(&msg, "\n  %d. %s", i+1, err.Error())
	}

	return msg.String()
}

// Add appends err.
func (ve *ValidationError) Add(err *ConfigError) {
	ve.Errors = append(ve.Errors, err)
}

// HasErrors reports whether any error was added.
func (ve *ValidationError) HasErrors() bool {
	return len(ve.Errors) > 0
}

// ToError returns nil when empty, else ve.
func (ve *ValidationError) ToError() error {
	if !ve.HasErrors() {
		return nil
	}

	return ve
}

func newFieldError(field string, value any, message, constraint string) *ConfigError {
	return &ConfigError{
		Field:      field,
		Value:      value,
		Message:    message,
		Constraint: constraint,
	}
}
