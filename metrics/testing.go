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

package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// TestingProvider returns a provider backed by a manual reader. Call
// reader.Collect to read measurements. It is shut down when the test ends.
func TestingProvider(t testing.TB, opts ...Option) (*Provider, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	all := append([]Option{WithServiceName("test"), WithReader(reader)}, opts...)

	p, err := New(all...)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = p.Shutdown(context.Background())
	})
	return p, reader
}
