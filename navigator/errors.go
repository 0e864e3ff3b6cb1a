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
	"errors"
	"fmt"
)

var (
	// ErrClosed indicates that the engine has been closed.
	ErrClosed = errors.New("navigator closed")

	// ErrNilTable indicates that no route table was provided.
	ErrNilTable = errors.New("route table cannot be nil")

	// ErrNilHistory indicates that no history adapter was provided.
	ErrNilHistory = errors.New("history adapter cannot be nil")

	// ErrTraversalUnsupported indicates that the history adapter cannot go back or forward.
	ErrTraversalUnsupported = errors.New("history adapter does not support traversal")

	// errSuperseded is the cancellation cause of a navigation replaced by a
	// newer one. It never leaves the package.
	errSuperseded = errors.New("navigation superseded")
)

// NavigationError reports a navigation that could not settle: its view
// failed to prepare, history rejected the entry, or the caller's context
// ended first. The active route is left unchanged.
type NavigationError struct {
	ID   uint64
	Path string
	Mode Mode
	Err  error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigator: %s %q: %v", e.Mode, e.Path, e.Err)
}

func (e *NavigationError) Unwrap() error {
	return e.Err
}
