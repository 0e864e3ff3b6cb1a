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

package source

import (
	"context"
	"fmt"
	"os"
	"strings"

	"rivaas.dev/navigator/config/codec"
)

// OSEnvVar reads environment variables that carry a prefix, strips it and
// decodes the rest with [codec.EnvVarCodec].
type OSEnvVar struct {
	prefix  string
	environ func() []string
	decoder codec.Decoder
}

// NewOSEnvVar returns a source for variables starting with prefix, such as "NAVIGATOR_".
func NewOSEnvVar(prefix string) *OSEnvVar {
	return NewEnviron(prefix, os.Environ)
}

// NewEnviron is like [NewOSEnvVar] but reads KEY=value pairs from environ.
func NewEnviron(prefix string, environ func() []string) *OSEnvVar {
	return &OSEnvVar{
		prefix:  prefix,
		environ: environ,
		decoder: codec.EnvVarCodec{},
	}
}

func (e *OSEnvVar) Load(_ context.Context) (map[string]any, error) {
	env := e.environ()
	valid := make([]string, 0, len(env))

	for _, kv := range env {
		if !strings.HasPrefix(kv, e.prefix) {
			continue
		}
		valid = append(valid, strings.TrimPrefix(kv, e.prefix))
	}

	var doc map[string]any
	if err := e.decoder.Decode([]byte(strings.Join(valid, "\n")), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode environment variables: %w", err)
	}

	return doc, nil
}
