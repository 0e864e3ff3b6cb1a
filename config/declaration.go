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
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"rivaas.dev/navigator/history"
	"rivaas.dev/navigator/route"
)

// Declaration is the decoded form of a route declaration document.
type Declaration struct {
	History HistoryDecl `config:"history" json:"history" yaml:"history" toml:"history"`
	Routes  []RouteDecl `config:"routes" json:"routes" yaml:"routes" toml:"routes" validate:"dive"`

	origin string // file the declaration came from, if any
}

// HistoryDecl selects how locations appear in the address bar.
type HistoryDecl struct {
	Mode string `config:"mode" json:"mode" yaml:"mode" toml:"mode"`
	Base string `config:"base" json:"base" yaml:"base" toml:"base"`
}

// RouteDecl declares one route. View is a reference resolved through a
// [ViewResolver] when the table is built.
type RouteDecl struct {
	Path        string            `config:"path" json:"path" yaml:"path" toml:"path" validate:"required,startswith=/"`
	Name        string            `config:"name" json:"name" yaml:"name" toml:"name" validate:"required"`
	View        string            `config:"view" json:"view,omitempty" yaml:"view,omitempty" toml:"view,omitempty"`
	Meta        map[string]string `config:"meta" json:"meta,omitempty" yaml:"meta,omitempty" toml:"meta,omitempty"`
	Constraints map[string]string `config:"constraints" json:"constraints,omitempty" yaml:"constraints,omitempty" toml:"constraints,omitempty"`
}

// DefaultDeclaration returns the dashboard declaration: Home at "/" and
// ProfitDetail at "/profit/detail", in path mode at the root.
func DefaultDeclaration() *Declaration {
	return &Declaration{
		History: defaultHistory(),
		Routes: []RouteDecl{
			{Path: "/", Name: "Home", View: "HomeView"},
			{Path: "/profit/detail", Name: "ProfitDetail", View: "ProfitDetailView"},
		},
	}
}

func defaultHistory() HistoryDecl {
	return HistoryDecl{Mode: string(history.ModePath), Base: "/"}
}

// Origin returns the file the declaration was loaded from, or "".
func (d *Declaration) Origin() string {
	return d.origin
}

func (d *Declaration) sourceName() string {
	if d.origin != "" {
		return d.origin
	}
	return "declaration"
}

// Validate checks the history mode and that every route has a name and a
// path starting with "/". Pattern syntax and duplicates are checked by
// [Declaration.Table].
func (d *Declaration) Validate() error {
	var errs error
	if _, err := history.ParseMode(d.History.Mode); err != nil {
		errs = errors.Join(errs, NewFieldError(d.sourceName(), "history.mode", "validate", err))
	}

	err := structValidator.Struct(d)
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			errs = errors.Join(errs, NewFieldError(d.sourceName(), fieldPath(fe), "validate", fieldCause(fe)))
		}
	} else if err != nil {
		errs = errors.Join(errs, NewError(d.sourceName(), "validate", err))
	}
	return errs
}

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("config"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// fieldPath drops the struct name: "Declaration.routes[1].path" becomes "routes[1].path".
func fieldPath(fe validator.FieldError) string {
	_, path, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return fe.Field()
	}
	return path
}

func fieldCause(fe validator.FieldError) error {
	switch {
	case fe.Field() == "name" && fe.Tag() == "required":
		return route.ErrEmptyName
	case fe.Tag() == "required":
		return fmt.Errorf("%w: %s is required", ErrInvalidDeclaration, fe.Field())
	default:
		return fmt.Errorf("%w: %s must satisfy %s=%s", ErrInvalidDeclaration, fe.Field(), fe.Tag(), fe.Param())
	}
}

// Definitions converts the declared routes into route definitions. With a
// nil resolver each view is its reference string.
func (d *Declaration) Definitions(views ViewResolver) ([]route.Definition, error) {
	defs := make([]route.Definition, 0, len(d.Routes))
	var errs error
	for i, r := range d.Routes {
		var view any = r.View
		if views != nil && r.View != "" {
			v, ok := views.ResolveView(r.View)
			if !ok {
				errs = errors.Join(errs, NewFieldError(d.sourceName(), fmt.Sprintf("routes[%d].view", i), "resolve",
					&ViewNotFoundError{Route: r.Name, Ref: r.View}))
				continue
			}
			view = v
		}
		defs = append(defs, route.Definition{
			Path:        r.Path,
			Name:        r.Name,
			View:        view,
			Meta:        r.Meta,
			Constraints: r.Constraints,
		})
	}
	return defs, errs
}

// Table builds the route table for the declaration.
//
// Errors:
//   - [*ViewNotFoundError] (wrapped in [*Error]) for unresolved view references
//   - route construction errors such as [*route.DuplicateRouteError], wrapped in [*Error]
func (d *Declaration) Table(views ViewResolver) (*route.Table, error) {
	defs, err := d.Definitions(views)
	if err != nil {
		return nil, err
	}
	table, err := route.New(defs...)
	if err != nil {
		return nil, NewError(d.sourceName(), "compile", err)
	}
	return table, nil
}

// NewHistory creates an in-memory history adapter using the declared mode and base.
func (d *Declaration) NewHistory(opts ...history.Option) (*history.Memory, error) {
	mode, err := history.ParseMode(d.History.Mode)
	if err != nil {
		return nil, NewFieldError(d.sourceName(), "history.mode", "validate", err)
	}
	base := []history.Option{history.WithMode(mode), history.WithBase(d.History.Base)}
	return history.NewMemory(append(base, opts...)...)
}
