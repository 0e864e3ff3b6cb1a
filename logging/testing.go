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

package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/spf13/cast"
	"github.com/stretchr/testify/require"
)

// LogEntry represents a parsed log entry for testing.
type LogEntry struct {
	Level   string
	Message string
	Attrs   map[string]any
}

// SyncBuffer is a [bytes.Buffer] safe for concurrent writes. Engines may log
// from any goroutine that drives a navigation.
type SyncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *SyncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// Bytes returns a copy of the buffered output.
func (b *SyncBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return bytes.Clone(b.buf.Bytes())
}

// String returns the buffered output.
func (b *SyncBuffer) String() string {
	return string(b.Bytes())
}

// Reset discards the buffered output.
func (b *SyncBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

// NewTestLogger creates a debug-level JSON [Logger] writing to memory.
func NewTestLogger() (*Logger, *SyncBuffer) {
	buf := &SyncBuffer{}
	return MustNew(WithJSONHandler(), WithOutput(buf), WithLevel(LevelDebug)), buf
}

// ParseJSONLogEntries parses newline-delimited JSON log output.
func ParseJSONLogEntries(data []byte) ([]LogEntry, error) {
	var entries []LogEntry
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		var raw map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &raw); err != nil {
			return nil, fmt.Errorf("parse log line: %w", err)
		}

		le := LogEntry{
			Message: cast.ToString(raw["msg"]),
			Level:   cast.ToString(raw["level"]),
			Attrs:   make(map[string]any, len(raw)),
		}
		for k, v := range raw {
			if k != "time" && k != "level" && k != "msg" {
				le.Attrs[k] = v
			}
		}
		entries = append(entries, le)
	}
	return entries, scanner.Err()
}

// TestHelper provides utilities for testing with the logging package.
type TestHelper struct {
	Logger *Logger
	Buffer *SyncBuffer
}

// NewTestHelper creates a [TestHelper] with in-memory JSON logging at debug
// level. Additional options are applied after the defaults.
func NewTestHelper(t *testing.T, opts ...Option) *TestHelper {
	t.Helper()

	buf := &SyncBuffer{}
	all := append([]Option{WithJSONHandler(), WithOutput(buf), WithLevel(LevelDebug)}, opts...)
	logger, err := New(all...)
	require.NoError(t, err)

	return &TestHelper{Logger: logger, Buffer: buf}
}

// Logs returns all parsed log entries.
func (th *TestHelper) Logs() ([]LogEntry, error) {
	return ParseJSONLogEntries(th.Buffer.Bytes())
}

// LastLog returns the most recent log entry.
func (th *TestHelper) LastLog() (*LogEntry, error) {
	entries, err := th.Logs()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, errors.New("no log entries found")
	}
	return &entries[len(entries)-1], nil
}

// ContainsLog reports whether any entry has the given message.
func (th *TestHelper) ContainsLog(msg string) bool {
	entries, err := th.Logs()
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if entry.Message == msg {
			return true
		}
	}
	return false
}

// ContainsAttr reports whether any entry carries key with value.
func (th *TestHelper) ContainsAttr(key string, value any) bool {
	entries, err := th.Logs()
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if v, ok := entry.Attrs[key]; ok && attrEqual(v, value) {
			return true
		}
	}
	return false
}

// CountLevel returns the number of entries at level ("DEBUG", "INFO", ...).
func (th *TestHelper) CountLevel(level string) int {
	entries, err := th.Logs()
	if err != nil {
		return 0
	}
	count := 0
	for _, entry := range entries {
		if entry.Level == level {
			count++
		}
	}
	return count
}

// Reset clears the buffer.
func (th *TestHelper) Reset() {
	th.Buffer.Reset()
}

// AssertLog fails t unless an entry with level, msg and all attrs exists.
func (th *TestHelper) AssertLog(t *testing.T, level, msg string, attrs map[string]any) {
	t.Helper()

	entries, err := th.Logs()
	require.NoError(t, err, "failed to parse logs")

	for _, entry := range entries {
		if entry.Level != level || entry.Message != msg {
			continue
		}
		if matchAttrs(entry.Attrs, attrs) {
			return
		}
	}
	require.Fail(t, "log entry not found", "level=%s msg=%s attrs=%v", level, msg, attrs)
}

func matchAttrs(actual, expected map[string]any) bool {
	for k, want := range expected {
		got, ok := actual[k]
		if !ok || !attrEqual(got, want) {
			return false
		}
	}
	return true
}

// attrEqual compares a decoded JSON value with an expected Go value.
// JSON numbers decode to float64.
func attrEqual(got, want any) bool {
	if g, ok := got.(float64); ok {
		w, err := cast.ToFloat64E(want)
		return err == nil && g == w
	}
	return fmt.Sprint(got) == fmt.Sprint(want)
}
