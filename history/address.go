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

import (
	"fmt"
	"strings"
)

// Mode selects how locations are represented in the address bar.
type Mode string

const (
	// ModePath stores the location in the URL path: "/base/profit/detail".
	ModePath Mode = "path"

	// ModeHash stores the location in the URL fragment: "/base/#/profit/detail".
	ModeHash Mode = "hash"
)

// ParseMode parses "path", "web", "hash" or "" (path).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "path", "web":
		return ModePath, nil
	case "hash":
		return ModeHash, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// Addresser maps route locations to address-bar addresses and back,
// without a server round trip.
type Addresser struct {
	mode Mode
	base string // normalized: leading slash, no trailing slash, "" for root
}

// NewAddresser creates an Addresser for the mode and base prefix.
func NewAddresser(mode Mode, base string) (Addresser, error) {
	if mode != ModePath && mode != ModeHash {
		return Addresser{}, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	return Addresser{mode: mode, base: normalizeBase(base)}, nil
}

func normalizeBase(base string) string {
	base = strings.TrimSpace(base)
	base = strings.TrimRight(base, "/")
	if base == "" {
		return ""
	}
	if !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	return base
}

// Mode returns the address mode.
func (a Addresser) Mode() Mode {
	if a.mode == "" {
		return ModePath
	}
	return a.mode
}

// Base returns the normalized base prefix ("/" for none).
func (a Addresser) Base() string {
	if a.base == "" {
		return "/"
	}
	return a.base
}

// ToAddress converts a route location to its address-bar form.
func (a Addresser) ToAddress(location string) string {
	location = ensureSlash(location)
	if a.Mode() == ModeHash {
		return a.base + "/#" + location
	}
	return a.base + location
}

// FromAddress converts an address-bar address to a route location.
// Addresses outside the base resolve to "/".
func (a Addresser) FromAddress(address string) string {
	if a.Mode() == ModeHash {
		prefix, fragment, ok := strings.Cut(address, "#")
		if !a.covers(prefix) || !ok || fragment == "" {
			return "/"
		}
		return ensureSlash(fragment)
	}

	if a.base == "" {
		return ensureSlash(address)
	}
	rest, ok := strings.CutPrefix(address, a.base)
	if !ok {
		return "/"
	}
	switch {
	case rest == "":
		return "/"
	case rest[0] == '/':
		return rest
	case rest[0] == '?' || rest[0] == '#':
		return "/" + rest
	}
	// "/dashboardx" is not under "/dashboard"
	return "/"
}

// covers reports whether the document part of a hash address lives under
// the base. "/app", "/app/" and "/app/index.html?x" are under "/app".
func (a Addresser) covers(prefix string) bool {
	if a.base == "" {
		return true
	}
	prefix, _, _ = strings.Cut(prefix, "?")
	rest, ok := strings.CutPrefix(prefix, a.base)
	return ok && (rest == "" || rest[0] == '/')
}

func ensureSlash(s string) string {
	if !strings.HasPrefix(s, "/") {
		return "/" + s
	}
	return s
}
