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

// Package logging configures the structured logger shared by the navigator
// packages. It wraps [log/slog] and never touches the global default logger;
// hand [Logger.Logger] to whatever needs it.
//
// # Basic Usage
//
//	logger := logging.MustNew(
//	    logging.WithConsoleHandler(),
//	    logging.WithServiceName("quantdash"),
//	    logging.WithDebugLevel(),
//	)
//	engine, err := navigator.New(table, hist, navigator.WithLogger(logger.Logger()))
//
// # Handlers
//
// Three handlers are available: JSON (default), text (key=value) and a
// colored console handler for development. The level can be changed at
// runtime with [Logger.SetLevel]; handlers are not rebuilt.
//
// # Redaction
//
// Attributes named password, token, secret, api_key or authorization are
// replaced with a placeholder before any user-supplied ReplaceAttr runs.
//
// # Testing
//
// [NewTestHelper] captures JSON output in memory:
//
//	th := logging.NewTestHelper(t)
//	engine := navigator.MustNew(table, hist, navigator.WithLogger(th.Logger.Logger()))
//	...
//	th.AssertLog(t, "WARN", "route not found", map[string]any{"path": "/missing"})
package logging
