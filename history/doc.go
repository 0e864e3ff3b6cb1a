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

// Package history abstracts the platform's address-bar history for the
// navigator engine.
//
// An [Adapter] owns the history entries. The engine only asks it to push or
// replace an entry and listens for pop events raised by back/forward
// traversal. Keeping this behind a narrow interface lets the navigation
// state machine run without a browser.
//
// # Memory History
//
// [Memory] is an in-memory implementation backed by a stack of entries and a
// cursor. Pushing truncates the forward entries, replacing overwrites the
// current one and traversal moves the cursor and notifies listeners:
//
//	h, err := history.NewMemory(
//	    history.WithMode(history.ModePath),
//	    history.WithBase("/dashboard"),
//	    history.WithInitialAddress("/dashboard/profit/detail"),
//	)
//	h.Location() // "/profit/detail"
//
//	unlisten := h.Listen(func(e history.PopEvent) {
//	    fmt.Println("moved to", e.To)
//	})
//	defer unlisten()
//
//	_ = h.Push("/")
//	_ = h.Back() // prints "moved to /profit/detail"
//
// # Address Mapping
//
// An [Addresser] converts route locations to the address-bar representation
// and back. [ModePath] keeps locations in the URL path under a base prefix;
// [ModeHash] stores them in the URL fragment so a static file server never
// sees them.
package history
