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
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	navconfig "rivaas.dev/navigator/config"
	"rivaas.dev/navigator/logging"
)

func newBannerApp(t *testing.T, opts ...Option) *App {
	t.Helper()
	logger, _ := logging.NewTestLogger()
	a, err := New(append([]Option{WithLogger(logger), WithServiceName("quantdash")}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown(context.Background()) })
	return a
}

func TestBanner_Development(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	newBannerApp(t, WithBanner(&buf), WithServiceVersion("1.4.0"))

	out := buf.String()
	for _, want := range []string{"Service", "1.4.0", "development", "Navigation", "path /", "Routes:", "[noop]", "Name", "View"} {
		assert.Contains(t, out, want)
	}
	assert.Contains(t, out, "ProfitDetail")
	assert.Contains(t, out, "/profit/detail")
	assert.Contains(t, out, "ProfitDetailView")
}

func TestBanner_SkippedInProduction(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	newBannerApp(t, WithBanner(&buf), WithEnvironment(EnvironmentProduction))
	assert.Empty(t, buf.String())
}

func TestPrintRoutes_ProductionHasNoColor(t *testing.T) {
	t.Parallel()

	decl := navconfig.DefaultDeclaration()
	decl.Routes = append(decl.Routes, navconfig.RouteDecl{Path: "/stocks/:code", Name: "Stock", View: "StockView"})

	a := newBannerApp(t, WithEnvironment(EnvironmentProduction), WithDeclaration(decl))

	var buf bytes.Buffer
	a.PrintRoutes(&buf)
	out := buf.String()

	assert.NotContains(t, out, "\x1b[")
	assert.Contains(t, out, "/stocks/:code")
	assert.Contains(t, out, "StockView")
	assert.Equal(t, 1, strings.Count(out, "ProfitDetailView"))
}

func TestHistoryLabel(t *testing.T) {
	t.Parallel()

	a := newBannerApp(t, WithDeclaration(&navconfig.Declaration{
		History: navconfig.HistoryDecl{Mode: "hash", Base: "/app"},
		Routes:  navconfig.DefaultDeclaration().Routes,
	}))
	assert.Equal(t, "hash /app", historyLabel(a.History(), "ignored"))
	assert.Equal(t, "path", historyLabel(nil, "path"))
}

type namedView struct{}

func (namedView) String() string { return "Named" }

func TestViewLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "-", viewLabel(nil))
	assert.Equal(t, "HomeView", viewLabel("HomeView"))
	assert.Equal(t, "Named", viewLabel(namedView{}))
	assert.Equal(t, "*app.App", viewLabel(&App{}))
}
