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

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/navigator/config/codec"
	"rivaas.dev/navigator/config/source"
)

type staticSource struct {
	doc map[string]any
	err error
}

func (s staticSource) Load(context.Context) (map[string]any, error) {
	return s.doc, s.err
}

func TestLoad_YAML(t *testing.T) {
	t.Parallel()

	decl, err := Load(context.Background(), WithFile("testdata/routes.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "testdata/routes.yaml", decl.Origin())
	assert.Equal(t, HistoryDecl{Mode: "hash", Base: "/app"}, decl.History)
	require.Len(t, decl.Routes, 3)
	assert.Equal(t, RouteDecl{
		Path: "/profit/detail",
		Name: "ProfitDetail",
		View: "profit-detail",
		Meta: map[string]string{"title": "Profit detail", "order": "2"},
	}, decl.Routes[1])
	assert.Equal(t, map[string]string{"code": "int"}, decl.Routes[2].Constraints)
}

func TestLoad_JSONKeysAreCaseInsensitive(t *testing.T) {
	t.Parallel()

	decl, err := Load(context.Background(), WithFile("testdata/routes.json"))
	require.NoError(t, err)

	assert.Equal(t, "path", decl.History.Mode)
	assert.Equal(t, "/", decl.History.Base, "base defaults to root")
	require.Len(t, decl.Routes, 2)
	assert.Equal(t, "ProfitDetail", decl.Routes[1].Name)
}

func TestLoad_TOML(t *testing.T) {
	t.Parallel()

	decl, err := Load(context.Background(), WithFile("testdata/routes.toml"))
	require.NoError(t, err)

	assert.Equal(t, "/dash", decl.History.Base)
	require.Len(t, decl.Routes, 2)
	assert.Equal(t, "Profit detail", decl.Routes[1].Meta["title"])
}

func TestLoad_Content(t *testing.T) {
	t.Parallel()

	doc := []byte("routes:\n  - path: /\n    name: Home\n    view: 7\n")
	decl, err := Load(context.Background(), WithContent(doc, codec.TypeYAML))
	require.NoError(t, err)

	assert.Empty(t, decl.Origin())
	assert.Equal(t, "7", decl.Routes[0].View, "numeric view references decode as strings")
	assert.Equal(t, defaultHistory(), decl.History)
}

func TestLoad_DefaultRoutes(t *testing.T) {
	t.Parallel()

	decl, err := Load(context.Background(), WithSource(staticSource{doc: map[string]any{
		"history": map[string]any{"mode": "hash"},
	}}))
	require.NoError(t, err)

	assert.Equal(t, "hash", decl.History.Mode)
	assert.Equal(t, DefaultDeclaration().Routes, decl.Routes)
}

func TestLoad_LaterSourcesOverride(t *testing.T) {
	t.Parallel()

	environ := func() []string {
		return []string{
			"NAVIGATOR_HISTORY_MODE=path",
			"NAVIGATOR_LOG_LEVEL=debug",
		}
	}

	decl, err := Load(context.Background(),
		WithFile("testdata/routes.yaml"),
		WithSource(source.NewEnviron("NAVIGATOR_", environ)),
	)
	require.NoError(t, err)

	assert.Equal(t, "path", decl.History.Mode)
	assert.Equal(t, "/app", decl.History.Base, "keys absent from the later source survive")
	assert.Len(t, decl.Routes, 3)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("NAVLOADTEST_HISTORY_MODE", "hash")
	t.Setenv("NAVLOADTEST_HISTORY_BASE", "/portal")

	decl, err := Load(context.Background(), WithEnv("NAVLOADTEST_"))
	require.NoError(t, err)
	assert.Equal(t, HistoryDecl{Mode: "hash", Base: "/portal"}, decl.History)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		opts      []Option
		operation string
		target    error
	}{
		{
			name:   "no sources",
			target: ErrNoSources,
		},
		{
			name:   "unknown extension",
			opts:   []Option{WithFile("routes.ini")},
			target: codec.ErrUnknownType,
		},
		{
			name:      "missing file",
			opts:      []Option{WithFile(filepath.Join(t.TempDir(), "absent.yaml"))},
			operation: "load",
			target:    os.ErrNotExist,
		},
		{
			name:      "schema violation",
			opts:      []Option{WithFile("testdata/invalid.yaml")},
			operation: "validate",
		},
		{
			name:      "route without name",
			opts:      []Option{WithContent([]byte(`{"routes":[{"path":"/"}]}`), codec.TypeJSON)},
			operation: "validate",
		},
		{
			name:      "invalid history mode",
			opts:      []Option{WithContent([]byte(`{"history":{"mode":"memory"}}`), codec.TypeJSON)},
			operation: "validate",
		},
		{
			name:      "source failure",
			opts:      []Option{WithSource(staticSource{err: errors.New("boom")})},
			operation: "load",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			decl, err := Load(context.Background(), tt.opts...)
			require.Error(t, err)
			assert.Nil(t, decl)
			if tt.target != nil {
				require.ErrorIs(t, err, tt.target)
			}
			if tt.operation != "" {
				var cfgErr *Error
				require.ErrorAs(t, err, &cfgErr)
				assert.Equal(t, tt.operation, cfgErr.Operation)
			}
		})
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, WithFile("testdata/routes.yaml"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoad_CustomSchema(t *testing.T) {
	t.Parallel()

	strict := []byte(`{"type":"object","required":["history"]}`)
	_, err := Load(context.Background(),
		WithSchema(strict),
		WithContent([]byte(`{"routes":[{"path":"/","name":"Home"}]}`), codec.TypeJSON),
	)
	var cfgErr *Error
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "json-schema", cfgErr.Source)

	_, err = Load(context.Background(), WithSchema(nil), WithFile("testdata/routes.yaml"))
	require.Error(t, err)
}

func TestMustLoad(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() { MustLoad(context.Background(), WithFile("testdata/routes.yaml")) })
	assert.Panics(t, func() { MustLoad(context.Background()) })
}

func TestError_Format(t *testing.T) {
	t.Parallel()

	err := NewFieldError("routes.yaml", "routes[0].view", "resolve", errors.New("missing"))
	assert.Equal(t, "config error in routes.yaml.routes[0].view during resolve: missing", err.Error())
	assert.Equal(t, "config error in source[1] during load: missing",
		NewError("source[1]", "load", errors.New("missing")).Error())
}
