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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_InitialEntry(t *testing.T) {
	t.Parallel()

	h := MustNewMemory()

	assert.Equal(t, "/", h.Location())
	assert.Equal(t, "/", h.Address())
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, 0, h.Position())
	assert.NotEmpty(t, h.Current().Key)
}

func TestMemory_InitialAddressUnderBase(t *testing.T) {
	t.Parallel()

	h := MustNewMemory(WithBase("/dashboard/"), WithInitialAddress("/dashboard/profit/detail?code=1"))

	assert.Equal(t, "/profit/detail?code=1", h.Location())
	assert.Equal(t, "/dashboard/profit/detail?code=1", h.Address())
}

func TestMemory_PushTruncatesForwardEntries(t *testing.T) {
	t.Parallel()

	h := MustNewMemory()
	require.NoError(t, h.Push("/a"))
	require.NoError(t, h.Push("/b"))
	require.NoError(t, h.Back())
	require.NoError(t, h.Back())

	require.NoError(t, h.Push("/c"))

	entries := h.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "/", entries[0].Location)
	assert.Equal(t, "/c", entries[1].Location)
	assert.Equal(t, 1, h.Position())
	assert.ErrorIs(t, h.Forward(), ErrOutOfRange)
}

func TestMemory_ReplaceKeepsLength(t *testing.T) {
	t.Parallel()

	h := MustNewMemory()
	require.NoError(t, h.Push("/a"))
	before := h.Current().Key

	require.NoError(t, h.Replace("/profit/detail"))

	assert.Equal(t, 2, h.Len())
	assert.Equal(t, "/profit/detail", h.Location())
	assert.NotEqual(t, before, h.Current().Key)
}

func TestMemory_RejectsRelativeLocation(t *testing.T) {
	t.Parallel()

	h := MustNewMemory()

	require.ErrorIs(t, h.Push("profit"), ErrInvalidLocation)
	require.ErrorIs(t, h.Replace(""), ErrInvalidLocation)
	assert.Equal(t, 1, h.Len())
}

func TestMemory_TraversalNotifiesListeners(t *testing.T) {
	t.Parallel()

	h := MustNewMemory()
	require.NoError(t, h.Push("/profit/detail"))

	var events []PopEvent
	unlisten := h.Listen(func(e PopEvent) { events = append(events, e) })

	require.NoError(t, h.Back())
	require.NoError(t, h.Forward())
	require.NoError(t, h.Go(0))

	require.Len(t, events, 2)
	assert.Equal(t, PopEvent{From: "/profit/detail", To: "/", Delta: -1}, events[0])
	assert.Equal(t, PopEvent{From: "/", To: "/profit/detail", Delta: 1}, events[1])

	unlisten()
	unlisten()
	require.NoError(t, h.Back())
	assert.Len(t, events, 2)
}

func TestMemory_OutOfRangeEmitsNothing(t *testing.T) {
	t.Parallel()

	h := MustNewMemory()
	called := false
	h.Listen(func(PopEvent) { called = true })

	require.ErrorIs(t, h.Back(), ErrOutOfRange)
	require.ErrorIs(t, h.Go(3), ErrOutOfRange)
	assert.False(t, called)
	assert.Equal(t, 0, h.Position())
}

func TestMemory_PushDoesNotNotify(t *testing.T) {
	t.Parallel()

	h := MustNewMemory()
	called := false
	h.Listen(func(PopEvent) { called = true })

	require.NoError(t, h.Push("/a"))
	require.NoError(t, h.Replace("/b"))
	assert.False(t, called)
}

func TestMemory_ListenerMayReadHistory(t *testing.T) {
	t.Parallel()

	h := MustNewMemory()
	require.NoError(t, h.Push("/a"))

	var seen string
	h.Listen(func(PopEvent) { seen = h.Location() })

	require.NoError(t, h.Back())
	assert.Equal(t, "/", seen)
}

func TestMemory_HashModeAddresses(t *testing.T) {
	t.Parallel()

	h := MustNewMemory(WithMode(ModeHash), WithInitialAddress("/index.html#/profit/detail"))
	assert.Equal(t, "/profit/detail", h.Location())
	assert.Equal(t, "/#/profit/detail", h.Address())

	require.NoError(t, h.Push("/"))
	assert.Equal(t, "/#/", h.Address())
}

func TestNewMemory_InvalidMode(t *testing.T) {
	t.Parallel()

	_, err := NewMemory(WithMode("bogus"))
	require.ErrorIs(t, err, ErrInvalidMode)
	assert.Panics(t, func() { MustNewMemory(WithMode("bogus")) })
}
