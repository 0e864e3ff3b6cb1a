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
	"sync"

	"github.com/google/uuid"
)

// Entry is a single slot in the history stack.
type Entry struct {
	Key      string // random identifier of the slot
	Location string // route location, e.g. "/profit/detail"
	Address  string // address-bar form of Location
}

// Option configures a [Memory] history.
type Option func(*Memory)

// WithMode sets the address mode. Default: [ModePath].
func WithMode(mode Mode) Option {
	return func(m *Memory) { m.mode = mode }
}

// WithBase sets the base prefix every address lives under. Default: "/".
func WithBase(base string) Option {
	return func(m *Memory) { m.base = base }
}

// WithInitialAddress sets the address bar content the history starts from.
// Default: the base itself, which maps to the "/" location.
func WithInitialAddress(address string) Option {
	return func(m *Memory) { m.initial = address }
}

// Memory is an in-memory [Adapter] and [Traverser].
// Entries form a stack with a cursor; the cursor entry is current.
// Memory is safe for concurrent use. Listeners run on the goroutine that
// triggered the traversal, after the internal lock is released.
type Memory struct {
	mode    Mode
	base    string
	initial string
	addr    Addresser

	mu        sync.Mutex
	entries   []Entry
	cursor    int
	listeners []listenerEntry
	nextID    uint64
}

type listenerEntry struct {
	id uint64
	fn Listener
}

var (
	_ Adapter   = (*Memory)(nil)
	_ Traverser = (*Memory)(nil)
)

// NewMemory creates an in-memory history holding a single initial entry.
func NewMemory(opts ...Option) (*Memory, error) {
	m := &Memory{mode: ModePath}
	for _, opt := range opts {
		opt(m)
	}

	addr, err := NewAddresser(m.mode, m.base)
	if err != nil {
		return nil, err
	}
	m.addr = addr

	initial := m.initial
	if initial == "" {
		initial = addr.ToAddress("/")
	}
	m.entries = []Entry{m.newEntry(addr.FromAddress(initial))}
	return m, nil
}

// MustNewMemory is like [NewMemory] but panics on error.
func MustNewMemory(opts ...Option) *Memory {
	m, err := NewMemory(opts...)
	if err != nil {
		panic("history initialization failed: " + err.Error())
	}
	return m
}

func (m *Memory) newEntry(location string) Entry {
	return Entry{
		Key:      uuid.NewString(),
		Location: location,
		Address:  m.addr.ToAddress(location),
	}
}

// Addresser returns the address mapping in use.
func (m *Memory) Addresser() Addresser {
	return m.addr
}

// Location returns the location of the current entry.
func (m *Memory) Location() string {
	return m.Current().Location
}

// Address returns the address-bar form of the current entry.
func (m *Memory) Address() string {
	return m.Current().Address
}

// Current returns the current entry.
func (m *Memory) Current() Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[m.cursor]
}

// Entries returns a copy of all entries, oldest first.
func (m *Memory) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Position returns the index of the current entry.
func (m *Memory) Position() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor
}

// Len returns the number of entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Push discards the entries after the current one and appends location.
func (m *Memory) Push(location string) error {
	if err := validateLocation(location); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// IMPORTANT: Clip before append so forward entries are never aliased
	m.entries = append(m.entries[:m.cursor+1:m.cursor+1], m.newEntry(location))
	m.cursor++
	return nil
}

// Replace overwrites the current entry with location.
func (m *Memory) Replace(location string) error {
	if err := validateLocation(location); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[m.cursor] = m.newEntry(location)
	return nil
}

// Go moves the cursor by delta entries and notifies listeners.
// Go(0) is a no-op.
func (m *Memory) Go(delta int) error {
	m.mu.Lock()
	target := m.cursor + delta
	if target < 0 || target >= len(m.entries) {
		m.mu.Unlock()
		return fmt.Errorf("%w: delta %d from position %d of %d", ErrOutOfRange, delta, m.cursor, len(m.entries))
	}
	if delta == 0 {
		m.mu.Unlock()
		return nil
	}

	event := PopEvent{
		From:  m.entries[m.cursor].Location,
		To:    m.entries[target].Location,
		Delta: delta,
	}
	m.cursor = target
	listeners := make([]Listener, 0, len(m.listeners))
	for _, l := range m.listeners {
		listeners = append(listeners, l.fn)
	}
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(event)
	}
	return nil
}

// Back moves one entry back.
func (m *Memory) Back() error {
	return m.Go(-1)
}

// Forward moves one entry forward.
func (m *Memory) Forward() error {
	return m.Go(1)
}

// Listen registers fn for pop events.
func (m *Memory) Listen(fn Listener) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	id := m.nextID
	m.listeners = append(m.listeners, listenerEntry{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			for i, l := range m.listeners {
				if l.id == id {
					m.listeners = append(m.listeners[:i], m.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

func validateLocation(location string) error {
	if !strings.HasPrefix(location, "/") {
		return fmt.Errorf("%w: %q", ErrInvalidLocation, location)
	}
	return nil
}
