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

func dashboardDefinitions() []Definition {
	return []Definition{
		{Path: "/", Name: "Home", View: "Home"},
		{Path: "/profit/detail", Name: "ProfitDetail", View: "ProfitDetail"},
	}
}

func TestTable_MatchDashboardRoutes(t *testing.T) {
	t.Parallel()

	table := MustNew(dashboardDefinitions()...)

	tests := []struct {
		name     string
		path     string
		wantName string
	}{
		{name: "root", path: "/", wantName: "Home"},
		{name: "empty path is root", path: "", wantName: "Home"},
		{name: "profit detail", path: "/profit/detail", wantName: "ProfitDetail"},
		{name: "trailing slash", path: "/profit/detail/", wantName: "ProfitDetail"},
		{name: "duplicate slashes", path: "//profit//detail", wantName: "ProfitDetail"},
		{name: "unknown path", path: "/does-not-exist", wantName: ""},
		{name: "case sensitive", path: "/Profit/Detail", wantName: ""},
		{name: "prefix only", path: "/profit", wantName: ""},
		{name: "longer path", path: "/profit/detail/extra", wantName: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := table.Match(tt.path)
			if tt.wantName == "" {
				assert.False(t, m.Found())
				assert.Nil(t, m.Route)
				return
			}
			require.True(t, m.Found())
			assert.Equal(t, tt.wantName, m.Route.Name())
			assert.Equal(t, tt.wantName, m.Route.View())
		})
	}
}

func TestTable_MatchNormalizesPath(t *testing.T) {
	t.Parallel()

	table := MustNew(dashboardDefinitions()...)

	assert.Equal(t, "/profit/detail", table.Match("/profit/detail/").Path)
	assert.Equal(t, "/", table.Match("").Path)
	assert.Equal(t, "/does-not-exist", table.Match("/does-not-exist//").Path)
}

func TestTable_RoundTrip(t *testing.T) {
	t.Parallel()

	table := MustNew(
		Definition{Path: "/", Name: "Home"},
		Definition{Path: "/profit/detail", Name: "ProfitDetail"},
		Definition{Path: "/stocks/:code", Name: "Stock"},
		Definition{Path: "/strategies/:id(int)/runs/:run", Name: "StrategyRun"},
		Definition{Path: "/reports/:day(date)", Name: "DailyReport"},
		Definition{Path: "/a%20b", Name: "Spaced"},
		Definition{Path: "/funds/100%25/:code", Name: "FullAllocation"},
	)

	samples := map[string]Params{
		"Stock":          {"code": "600519"},
		"StrategyRun":    {"id": "42", "run": "latest"},
		"DailyReport":    {"day": "2024-03-01"},
		"FullAllocation": {"code": "510300"},
	}

	for _, r := range table.Routes() {
		path, err := table.Path(r.Name(), samples[r.Name()])
		require.NoError(t, err, r.Name())

		m := table.Match(path)
		require.True(t, m.Found(), path)
		assert.Same(t, r, m.Route, path)
		if want := samples[r.Name()]; want != nil {
			assert.Equal(t, want, m.Params)
		}
	}
}

func TestTable_EscapedLiteralMatchesItsOwnPath(t *testing.T) {
	t.Parallel()

	table := MustNew(Definition{Path: "/a%20b", Name: "Spaced"})

	m := table.Match("/a%20b")
	require.True(t, m.Found())
	assert.Equal(t, "Spaced", m.Route.Name())
	assert.True(t, table.Match("/a b").Found(), "decoded form addresses the same route")
	assert.False(t, table.Match("/a%2520b").Found())
}

func TestTable_FirstMatchWins(t *testing.T) {
	t.Parallel()

	table := MustNew(
		Definition{Path: "/users/:id", Name: "User"},
		Definition{Path: "/users/me", Name: "Me"},
	)

	m := table.Match("/users/me")
	require.True(t, m.Found())
	assert.Equal(t, "User", m.Route.Name())
	assert.Equal(t, "me", m.Params.Get("id"))

	reversed := MustNew(
		Definition{Path: "/users/me", Name: "Me"},
		Definition{Path: "/users/:id", Name: "User"},
	)
	assert.Equal(t, "Me", reversed.Match("/users/me").Route.Name())
	assert.Equal(t, "User", reversed.Match("/users/7").Route.Name())
}

func TestTable_ConstraintFallsThrough(t *testing.T) {
	t.Parallel()

	table := MustNew(
		Definition{Path: "/stocks/:id(int)", Name: "StockByID"},
		Definition{Path: "/stocks/:symbol", Name: "StockBySymbol"},
	)

	m := table.Match("/stocks/42")
	require.True(t, m.Found())
	assert.Equal(t, "StockByID", m.Route.Name())

	m = table.Match("/stocks/AAPL")
	require.True(t, m.Found())
	assert.Equal(t, "StockBySymbol", m.Route.Name())
	assert.Equal(t, "AAPL", m.Params.Get("symbol"))
}

func TestTable_ParamsAreDecoded(t *testing.T) {
	t.Parallel()

	table := MustNew(Definition{Path: "/search/:q", Name: "Search"})

	m := table.Match("/search/hello%20world")
	require.True(t, m.Found())
	assert.Equal(t, "hello world", m.Params.Get("q"))
}

func TestNew_DuplicateName(t *testing.T) {
	t.Parallel()

	_, err := New(
		Definition{Path: "/", Name: "Home"},
		Definition{Path: "/home", Name: "Home"},
	)
	require.Error(t, err)

	var dup *DuplicateRouteError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, DuplicateName, dup.Kind)
	assert.Equal(t, "Home", dup.Name)
	assert.True(t, IsDuplicate(err))
}

func TestNew_DuplicatePattern(t *testing.T) {
	t.Parallel()

	_, err := New(
		Definition{Path: "/profit/detail", Name: "ProfitDetail"},
		Definition{Path: "/profit/detail/", Name: "ProfitDetailAgain"},
	)

	var dup *DuplicateRouteError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, DuplicatePattern, dup.Kind)
	assert.Equal(t, "ProfitDetail", dup.Previous)
	assert.Equal(t, "/profit/detail", dup.Pattern)
}

func TestNew_ReportsAllErrors(t *testing.T) {
	t.Parallel()

	_, err := New(
		Definition{Path: "/", Name: "Home"},
		Definition{Path: "/", Name: "Root"},
		Definition{Path: "no-slash", Name: "Broken"},
		Definition{Path: "/x", Name: ""},
	)
	require.Error(t, err)

	var invalid *InvalidPatternError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "no-slash", invalid.Pattern)
	assert.ErrorIs(t, err, ErrEmptyName)
	assert.True(t, IsDuplicate(err))
}

func TestNew_ConstraintOnUnknownParam(t *testing.T) {
	t.Parallel()

	_, err := New(Definition{
		Path:        "/stocks/:code",
		Name:        "Stock",
		Constraints: map[string]string{"id": "int"},
	})

	var invalid *InvalidPatternError
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, invalid.Reason, `"id"`)
}

func TestNew_ConstraintsMapOverridesInline(t *testing.T) {
	t.Parallel()

	table := MustNew(Definition{
		Path:        "/orders/:ref(int)",
		Name:        "Order",
		Constraints: map[string]string{"ref": "uuid"},
	})

	assert.False(t, table.Match("/orders/12").Found())
	assert.True(t, table.Match("/orders/550e8400-e29b-41d4-a716-446655440000").Found())
}

func TestMustNew_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		MustNew(Definition{Path: "/", Name: "Home"}, Definition{Path: "/", Name: "Home"})
	})
}

func TestTable_Lookup(t *testing.T) {
	t.Parallel()

	table := MustNew(dashboardDefinitions()...)

	r, ok := table.Lookup("ProfitDetail")
	require.True(t, ok)
	assert.Equal(t, "/profit/detail", r.Path())
	assert.Equal(t, 1, r.Index())

	_, ok = table.Lookup("Missing")
	assert.False(t, ok)
	assert.Equal(t, 2, table.Len())
}

func TestTable_RoutesReturnsCopy(t *testing.T) {
	t.Parallel()

	table := MustNew(dashboardDefinitions()...)

	routes := table.Routes()
	routes[0] = nil

	assert.NotNil(t, table.Routes()[0])
}

func TestTable_Path(t *testing.T) {
	t.Parallel()

	table := MustNew(
		Definition{Path: "/", Name: "Home"},
		Definition{Path: "/stocks/:code(regex:[0-9]{6})", Name: "Stock"},
	)

	path, err := table.Path("Home", nil)
	require.NoError(t, err)
	assert.Equal(t, "/", path)

	path, err = table.Path("Stock", Params{"code": "600519"})
	require.NoError(t, err)
	assert.Equal(t, "/stocks/600519", path)

	_, err = table.Path("Stock", nil)
	require.ErrorIs(t, err, ErrMissingParameter)

	_, err = table.Path("Stock", Params{"code": "AAPL"})
	require.ErrorIs(t, err, ErrInvalidParameter)

	_, err = table.Path("Nope", nil)
	require.ErrorIs(t, err, ErrRouteNotFound)
}

func TestRoute_Meta(t *testing.T) {
	t.Parallel()

	meta := map[string]string{"title": "Profit detail"}
	table := MustNew(Definition{Path: "/profit/detail", Name: "ProfitDetail", Meta: meta})
	meta["title"] = "changed"

	r, _ := table.Lookup("ProfitDetail")
	assert.Equal(t, "Profit detail", r.Meta("title"))
	assert.Empty(t, r.Meta("missing"))
}
