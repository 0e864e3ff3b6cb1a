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

package route_test

import (
	"errors"
	"fmt"

	"rivaas.dev/navigator/route"
)

// Example demonstrates building the dashboard route table and matching paths.
func Example() {
	table := route.MustNew(
		route.Definition{Path: "/", Name: "Home", View: "Home"},
		route.Definition{Path: "/profit/detail", Name: "ProfitDetail", View: "ProfitDetail"},
	)

	for _, path := range []string{"/", "/profit/detail", "/does-not-exist"} {
		m := table.Match(path)
		if !m.Found() {
			fmt.Printf("%s -> not found\n", path)
			continue
		}
		fmt.Printf("%s -> %s\n", path, m.Route.Name())
	}

	// Output:
	// / -> Home
	// /profit/detail -> ProfitDetail
	// /does-not-exist -> not found
}

// ExampleNew_duplicate shows the construction error for a repeated name.
func ExampleNew_duplicate() {
	_, err := route.New(
		route.Definition{Path: "/", Name: "Home"},
		route.Definition{Path: "/index", Name: "Home"},
	)

	var dup *route.DuplicateRouteError
	fmt.Println(errors.As(err, &dup), dup.Kind)

	// Output:
	// true name
}

// ExampleTable_Path demonstrates reverse routing with a constrained parameter.
func ExampleTable_Path() {
	table := route.MustNew(
		route.Definition{Path: "/stocks/:code(regex:[0-9]{6})", Name: "Stock"},
	)

	path, _ := table.Path("Stock", route.Params{"code": "600519"})
	fmt.Println(path)
	fmt.Println(table.Match(path).Params.Get("code"))

	// Output:
	// /stocks/600519
	// 600519
}
