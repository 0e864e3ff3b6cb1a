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
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"rivaas.dev/navigator/config/source"
)

// EnvPrefix is the default prefix read by [WithEnv].
const EnvPrefix = "NAVIGATOR_"

// Variable names below are relative to the prefix.
const (
	EnvMode           = "ENVIRONMENT"     // "development" or "production"
	EnvServiceName    = "SERVICE_NAME"    // service name for logs and telemetry
	EnvServiceVersion = "SERVICE_VERSION" // service version

	EnvLogLevel  = "LOG_LEVEL"  // "debug", "info", "warn", "error"
	EnvLogFormat = "LOG_FORMAT" // "json", "text" or "console"

	EnvHistoryMode = "HISTORY_MODE" // "path" or "hash"
	EnvHistoryBase = "HISTORY_BASE" // address prefix, e.g. "/app"

	EnvMetricsExporter   = "METRICS_EXPORTER"    // "noop", "prometheus" or "stdout"
	EnvTracingExporter   = "TRACING_EXPORTER"    // "noop" or "stdout"
	EnvTracingSampleRate = "TRACING_SAMPLE_RATE" // 0.0 to 1.0
)

// WithEnv applies NAVIGATOR_* environment overrides. See [WithEnvPrefix].
func WithEnv() Option {
	return WithEnvPrefix(EnvPrefix)
}

// WithEnvPrefix applies environment overrides read with a custom prefix.
// Values set in the environment win over options applied before this one.
//
// Supported variables (shown with the default prefix):
//
//	NAVIGATOR_ENVIRONMENT         - "development" or "production"
//	NAVIGATOR_SERVICE_NAME        - service name
//	NAVIGATOR_SERVICE_VERSION     - service version
//	NAVIGATOR_LOG_LEVEL           - "debug", "info", "warn", "error"
//	NAVIGATOR_LOG_FORMAT          - "json", "text", "console"
//	NAVIGATOR_HISTORY_MODE        - "path" or "hash"
//	NAVIGATOR_HISTORY_BASE        - address prefix
//	NAVIGATOR_METRICS_EXPORTER    - "noop", "prometheus", "stdout"
//	NAVIGATOR_TRACING_EXPORTER    - "noop", "stdout"
//	NAVIGATOR_TRACING_SAMPLE_RATE - sampling ratio
func WithEnvPrefix(prefix string) Option {
	return withEnvSource(source.NewOSEnvVar(prefix))
}

func withEnvSource(src *source.OSEnvVar) Option {
	return func(c *config) {
		doc, err := src.Load(context.Background())
		if err != nil {
			c.envErrors = append(c.envErrors, err)
			return
		}
		applyEnvOverrides(c, doc)
	}
}

func applyEnvOverrides(c *config, doc map[string]any) {
	applyEnvString(doc, EnvMode, &c.environment)
	applyEnvString(doc, EnvServiceName, &c.serviceName)
	applyEnvString(doc, EnvServiceVersion, &c.serviceVersion)

	applyEnvString(doc, EnvLogLevel, &c.logLevel)
	applyEnvString(doc, EnvLogFormat, &c.logFormat)

	applyEnvString(doc, EnvHistoryMode, &c.historyMode)
	applyEnvString(doc, EnvHistoryBase, &c.historyBase)

	applyEnvString(doc, EnvMetricsExporter, &c.metricsExporter)
	applyEnvString(doc, EnvTracingExporter, &c.tracingExporter)

	if v, ok := lookupEnv(doc, EnvTracingSampleRate); ok {
		rate, err := cast.ToFloat64E(v)
		if err != nil {
			c.envErrors = append(c.envErrors, fmt.Errorf("invalid environment variable %s: %w", EnvTracingSampleRate, err))
			return
		}
		c.sampleRate = &rate
	}
}

func applyEnvString(doc map[string]any, key string, target *string) {
	v, ok := lookupEnv(doc, key)
	if !ok {
		return
	}
	if s := strings.TrimSpace(cast.ToString(v)); s != "" {
		*target = s
	}
}

// lookupEnv walks the nested document produced by the env codec, where
// LOG_LEVEL is stored as {"log": {"level": ...}}.
func lookupEnv(doc map[string]any, key string) (any, bool) {
	parts := strings.Split(strings.ToLower(key), "_")
	current := doc
	for i, part := range parts {
		v, ok := current[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			if _, nested := v.(map[string]any); nested {
				return nil, false
			}
			return v, true
		}
		next, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		current = next
	}
	return nil, false
}
