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

package history

import "errors"

var (
	// ErrOutOfRange indicates a traversal past the first or last entry.
	ErrOutOfRange = errors.New("history traversal out of range")

	// ErrInvalidLocation indicates a location that is not an absolute path.
	ErrInvalidLocation = errors.New("location must start with a slash")

	// ErrInvalidMode indicates an unknown history mode.
	ErrInvalidMode = errors.New("invalid history mode")
)

// PopEvent is emitted when the active entry changes through traversal
// (back, forward or go), never through Push or Replace.
type PopEvent struct {
	From  string // location before traversal
	To    string // location after traversal
	Delta int    // signed number of entries moved
}

// Listener receives pop events.
type Listener func(PopEvent)

// Adapter is the contract between the navigator engine and the platform
// history. Implementations must apply Push and Replace before returning so
// the address bar matches the view the engine is about to announce.
type Adapter interface {
	// Location returns the route location of the current entry,
	// e.g. "/profit/detail?code=600519".
	Location() string

	// Push adds an entry after the current one and makes it current.
	Push(location string) error

	// Replace overwrites the current entry.
	Replace(location string) error

	// Listen registers fn for pop events and returns a function that
	// removes it.
	Listen(fn Listener) (unlisten func())
}

// Traverser is implemented by adapters that support programmatic
// back/forward navigation.
type Traverser interface {
	Go(delta int) error
	Back() error
	Forward() error
}
