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

package config_test

import (
	"context"
	"fmt"

	"rivaas.dev/navigator/config"
	"rivaas.dev/navigator/config/codec"
)

func ExampleLoad() {
	doc := []byte(`
history:
  mode: hash
  base: /app
routes:
  - path: /
    name: Home
    view: home
  - path: /profit/detail
    name: ProfitDetail
    view: profit-detail
`)

	decl, err := config.Load(context.Background(), config.WithContent(doc, codec.TypeYAML))
	if err != nil {
		fmt.Println(err)
		return
	}

	table, err := decl.Table(config.Views{"home": "HomeView", "profit-detail": "ProfitDetailView"})
	if err != nil {
		fmt.Println(err)
		return
	}

	m := table.Match("/profit/detail")
	fmt.Println(decl.History.Mode, m.Route.Name(), m.Route.View())
	// Output: hash ProfitDetail ProfitDetailView
}

func ExampleDeclaration_Table() {
	decl := config.DefaultDeclaration()
	_, err := decl.Table(config.Views{"HomeView": "home"})
	fmt.Println(err)
	// Output: config error in declaration.routes[1].view during resolve: view "ProfitDetailView" for route "ProfitDetail" is not registered
}
