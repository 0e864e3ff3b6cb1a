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
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"dario.cat/mergo"
	"github.com/go-viper/mapstructure/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spf13/cast"

	"rivaas.dev/navigator/config/codec"
	"rivaas.dev/navigator/config/source"
)

//go:embed schema.json
var declarationSchema []byte

const schemaURL = "declaration.schema.json"

// Source is a loader input. See package [source] for the built-in sources.
type Source = source.Source

// Option configures a [Load] call.
type Option func(l *loader) error

type loader struct {
	sources []Source
	origin  string
	schema  []byte
}

// WithSource adds a custom source.
func WithSource(src Source) Option {
	return func(l *loader) error {
		if src == nil {
			return errors.New("source cannot be nil")
		}
		l.sources = append(l.sources, src)
		return nil
	}
}

// WithFile adds a declaration file whose format is inferred from its extension.
func WithFile(path string) Option {
	return func(l *loader) error {
		typ, err := codec.TypeFromPath(path)
		if err != nil {
			return err
		}
		return WithFileAs(path, typ)(l)
	}
}

// WithFileAs adds a declaration file decoded with an explicit codec type.
func WithFileAs(path string, codecType codec.Type) Option {
	return func(l *loader) error {
		decoder, err := codec.GetDecoder(codecType)
		if err != nil {
			return err
		}
		l.sources = append(l.sources, source.NewFile(path, decoder))
		l.origin = path
		return nil
	}
}

// WithContent adds an in-memory declaration document.
func WithContent(data []byte, codecType codec.Type) Option {
	return func(l *loader) error {
		decoder, err := codec.GetDecoder(codecType)
		if err != nil {
			return err
		}
		l.sources = append(l.sources, source.NewFileContent(data, decoder))
		return nil
	}
}

// WithEnv adds environment variables starting with prefix, such as "NAVIGATOR_".
func WithEnv(prefix string) Option {
	return func(l *loader) error {
		l.sources = append(l.sources, source.NewOSEnvVar(prefix))
		return nil
	}
}

// WithSchema replaces the embedded declaration schema.
func WithSchema(schema []byte) Option {
	return func(l *loader) error {
		if len(schema) == 0 {
			return errors.New("schema cannot be empty")
		}
		l.schema = schema
		return nil
	}
}

// Load merges the configured sources and decodes them into a [Declaration].
//
// Missing history fields default to path mode at "/". A document without
// routes gets the routes of [DefaultDeclaration].
//
// Errors:
//   - [ErrNoSources] if no source was given
//   - [*Error] if a source fails to load, or the document fails schema validation,
//     decoding or [Declaration.Validate]
func Load(ctx context.Context, opts ...Option) (*Declaration, error) {
	l := &loader{schema: declarationSchema}
	var errs error
	for _, opt := range opts {
		errs = errors.Join(errs, opt(l))
	}
	if errs != nil {
		return nil, errs
	}
	if len(l.sources) == 0 {
		return nil, ErrNoSources
	}

	schema, err := compileSchema(l.schema)
	if err != nil {
		return nil, NewError("json-schema", "compile", err)
	}

	merged, err := l.merge(ctx)
	if err != nil {
		return nil, err
	}

	// Drop keys the schema does not describe, such as log.level from the environment.
	doc := make(map[string]any, 2)
	for _, key := range []string{"history", "routes"} {
		if v, ok := merged[key]; ok {
			doc[key] = v
		}
	}

	if err = validateSchema(schema, doc); err != nil {
		return nil, NewError("json-schema", "validate", err)
	}

	decl := &Declaration{}
	if err = decode(doc, decl); err != nil {
		return nil, NewError("binding", "decode", err)
	}
	decl.origin = l.origin

	if err = mergo.Merge(&decl.History, defaultHistory()); err != nil {
		return nil, NewError("defaults", "merge", err)
	}
	if len(decl.Routes) == 0 {
		decl.Routes = DefaultDeclaration().Routes
	}

	if err = decl.Validate(); err != nil {
		return nil, err
	}
	return decl, nil
}

// MustLoad is like [Load] but panics on error.
func MustLoad(ctx context.Context, opts ...Option) *Declaration {
	decl, err := Load(ctx, opts...)
	if err != nil {
		panic(err)
	}
	return decl
}

func (l *loader) merge(ctx context.Context) (map[string]any, error) {
	merged := make(map[string]any)
	for i, src := range l.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc, err := src.Load(ctx)
		if err != nil {
			return nil, NewError(fmt.Sprintf("source[%d]", i), "load", err)
		}
		if doc == nil {
			continue
		}

		if err = mergo.Map(&merged, normalizeKeys(doc), mergo.WithOverride); err != nil {
			return nil, NewError(fmt.Sprintf("source[%d]", i), "merge", err)
		}
	}
	return merged, nil
}

// normalizeKeys lowercases document keys recursively so sources merge
// case-insensitively. Keys inside meta and constraints are user data and
// keep their case; their values are cast to strings.
func normalizeKeys(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		key := strings.ToLower(k)
		switch key {
		case "meta", "constraints":
			if sm, err := cast.ToStringMapStringE(v); err == nil {
				out[key] = sm
				continue
			}
		}
		out[key] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return normalizeKeys(val)
	case []map[string]any:
		items := make([]any, len(val))
		for i, item := range val {
			items[i] = normalizeKeys(item)
		}
		return items
	case []any:
		items := make([]any, len(val))
		for i, item := range val {
			items[i] = normalizeValue(item)
		}
		return items
	default:
		return v
	}
}

func compileSchema(raw []byte) (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	if err = compiler.AddResource(schemaURL, doc); err != nil {
		return nil, err
	}
	return compiler.Compile(schemaURL)
}

// validateSchema validates a JSON round trip of doc so YAML and TOML
// numeric types match what the validator expects.
func validateSchema(schema *jsonschema.Schema, doc map[string]any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return err
	}
	return schema.Validate(inst)
}

func decode(doc map[string]any, decl *Declaration) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "config",
		WeaklyTypedInput: true,
		Result:           decl,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err = decoder.Decode(doc); err != nil {
		return fmt.Errorf("failed to decode declaration: %w", err)
	}
	return nil
}

// Encode writes the declaration in the given format.
func (d *Declaration) Encode(codecType codec.Type) ([]byte, error) {
	encoder, err := codec.GetEncoder(codecType)
	if err != nil {
		return nil, err
	}
	return encoder.Encode(d.toMap())
}

func (d *Declaration) toMap() map[string]any {
	routes := make([]any, 0, len(d.Routes))
	for _, r := range d.Routes {
		item := map[string]any{"path": r.Path, "name": r.Name}
		if r.View != "" {
			item["view"] = r.View
		}
		if len(r.Meta) > 0 {
			item["meta"] = r.Meta
		}
		if len(r.Constraints) > 0 {
			item["constraints"] = r.Constraints
		}
		routes = append(routes, item)
	}
	return map[string]any{
		"history": map[string]any{"mode": d.History.Mode, "base": d.History.Base},
		"routes":  routes,
	}
}
