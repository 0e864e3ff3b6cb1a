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
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/navigator/config/source"
	"rivaas.dev/navigator/history"
	"rivaas.dev/navigator/logging"
)

func envOption(vars ...string) Option {
	return withEnvSource(source.NewEnviron(EnvPrefix, func() []string { return vars }))
}

func TestEnv_Overrides(t *testing.T) {
	t.Parallel()

	c := defaultConfig()
	envOption(
		"NAVIGATOR_ENVIRONMENT=production",
		"NAVIGATOR_SERVICE_NAME=quantdash",
		"NAVIGATOR_SERVICE_VERSION=2.0.1",
		"NAVIGATOR_LOG_LEVEL=warn",
		"NAVIGATOR_LOG_FORMAT=text",
		"NAVIGATOR_HISTORY_MODE=hash",
		"NAVIGATOR_HISTORY_BASE=/app",
		"NAVIGATOR_METRICS_EXPORTER=prometheus",
		"NAVIGATOR_TRACING_EXPORTER=noop",
		"NAVIGATOR_TRACING_SAMPLE_RATE=0.25",
		"UNRELATED=1",
	)(c)

	require.NoError(t, c.validate())
	assert.Equal(t, EnvironmentProduction, c.environment)
	assert.Equal(t, "quantdash", c.serviceName)
	assert.Equal(t, "2.0.1", c.serviceVersion)
	assert.Equal(t, "warn", c.logLevel)
	assert.Equal(t, "text", c.logFormat)
	assert.Equal(t, "hash", c.historyMode)
	assert.Equal(t, "/app", c.historyBase)
	assert.Equal(t, "prometheus", c.metricsExporter)
	assert.Equal(t, "noop", c.tracingExporter)
	require.NotNil(t, c.sampleRate)
	assert.InDelta(t, 0.25, *c.sampleRate, 1e-9)
}

func TestEnv_LaterOptionsWin(t *testing.T) {
	t.Parallel()

	c := defaultConfig()
	for _, opt := range []Option{
		envOption("NAVIGATOR_SERVICE_NAME=from-env"),
		WithServiceName("from-code"),
	} {
		opt(c)
	}
	assert.Equal(t, "from-code", c.serviceName)
}

func TestEnv_InvalidValues(t *testing.T) {
	t.Parallel()

	c := defaultConfig()
	envOption(
		"NAVIGATOR_TRACING_SAMPLE_RATE=often",
		"NAVIGATOR_HISTORY_MODE=tape",
		"NAVIGATOR_LOG_FORMAT=xml",
		"NAVIGATOR_METRICS_EXPORTER=otlp",
	)(c)

	err := c.validate()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	fields := make([]string, 0, len(ve.Errors))
	for _, e := range ve.Errors {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"env", "history.mode", "log.format", "metrics.exporter"}, fields)
	assert.Contains(t, err.Error(), EnvTracingSampleRate)
}

func TestEnv_SampleRateRange(t *testing.T) {
	t.Parallel()

	c := defaultConfig()
	envOption("NAVIGATOR_TRACING_SAMPLE_RATE=3")(c)
	assert.Error(t, c.validate())
}

func TestWithEnv_ProcessEnvironment(t *testing.T) {
	t.Setenv("NAVIGATOR_HISTORY_MODE", "hash")
	t.Setenv("NAVIGATOR_HISTORY_BASE", "/portal")

	logger, _ := logging.NewTestLogger()
	a, err := New(WithLogger(logger), WithEnv())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown(context.Background()) })

	assert.Equal(t, "hash", a.Declaration().History.Mode)
	mem, ok := a.History().(*history.Memory)
	require.True(t, ok)
	assert.Equal(t, history.ModeHash, mem.Addresser().Mode())
	assert.Equal(t, "/portal/#/", mem.Address())
}

func TestLookupEnv(t *testing.T) {
	t.Parallel()

	doc := map[string]any{
		"log":     map[string]any{"level": "debug"},
		"history": "flat",
	}
	v, ok := lookupEnv(doc, EnvLogLevel)
	assert.True(t, ok)
	assert.Equal(t, "debug", v)

	_, ok = lookupEnv(doc, "LOG")
	assert.False(t, ok, "intermediate maps are not values")
	_, ok = lookupEnv(doc, EnvHistoryMode)
	assert.False(t, ok)
}
