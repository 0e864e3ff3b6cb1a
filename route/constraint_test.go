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

package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamConstraint_Accepts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		decl   string
		accept []string
		reject []string
	}{
		{decl: "int", accept: []string{"0", "42"}, reject: []string{"-1", "4.2", "x"}},
		{decl: "float", accept: []string{"1", "-1.5", ".5", "2e10"}, reject: []string{"abc", "1.2.3"}},
		{decl: "uuid", accept: []string{"550e8400-e29b-41d4-a716-446655440000"}, reject: []string{"550e8400", "not-a-uuid"}},
		{decl: "regex:[0-9]{6}", accept: []string{"600519"}, reject: []string{"60051", "6005199"}},
		{decl: "regex:a|b", accept: []string{"a", "b"}, reject: []string{"ab"}},
		{decl: "enum:daily|weekly", accept: []string{"daily", "weekly"}, reject: []string{"monthly", ""}},
		{decl: "date", accept: []string{"2024-02-29"}, reject: []string{"2023-02-29", "2024-1-1"}},
		{decl: "datetime", accept: []string{"2024-03-01T09:30:00Z", "2024-03-01T09:30:00+08:00"}, reject: []string{"2024-03-01"}},
	}

	for _, tt := range tests {
		t.Run(tt.decl, func(t *testing.T) {
			t.Parallel()

			pc, err := ParseConstraint(tt.decl)
			require.NoError(t, err)
			for _, v := range tt.accept {
				assert.True(t, pc.Accepts(v), "expected %q to be accepted", v)
			}
			for _, v := range tt.reject {
				assert.False(t, pc.Accepts(v), "expected %q to be rejected", v)
			}
			assert.Equal(t, tt.decl, pc.String())
		})
	}
}

func TestParseConstraint_Errors(t *testing.T) {
	t.Parallel()

	for _, decl := range []string{"", "bogus", "enum:", "regex:", "regex:("} {
		_, err := ParseConstraint(decl)
		assert.ErrorIs(t, err, ErrInvalidConstraint, decl)
	}
}

func TestParamConstraint_ZeroValueAcceptsAnything(t *testing.T) {
	t.Parallel()

	var pc ParamConstraint
	assert.True(t, pc.Accepts("anything"))
	assert.Empty(t, pc.String())
	assert.Equal(t, "none", pc.Kind.String())
}
