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

package codec

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// ErrUnknownType indicates that no codec is registered for a type or extension.
var ErrUnknownType = errors.New("unknown codec type")

// Registry holds the registered encoders and decoders.
type Registry struct {
	mu       sync.RWMutex
	encoders map[Type]Encoder
	decoders map[Type]Decoder
}

var registry = &Registry{
	encoders: make(map[Type]Encoder),
	decoders: make(map[Type]Decoder),
}

var extensions = map[string]Type{
	".json": TypeJSON,
	".yaml": TypeYAML,
	".yml":  TypeYAML,
	".toml": TypeTOML,
}

// RegisterEncoder registers an encoder for the given type.
func RegisterEncoder(name Type, encoder Encoder) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.encoders[name] = encoder
}

// RegisterDecoder registers a decoder for the given type.
func RegisterDecoder(name Type, decoder Decoder) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.decoders[name] = decoder
}

// GetEncoder retrieves the registered encoder for the given type.
func GetEncoder(name Type) (Encoder, error) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	encoder, exists := registry.encoders[name]
	if !exists {
		return nil, fmt.Errorf("%w: encoder not found for type: %s", ErrUnknownType, name)
	}
	return encoder, nil
}

// GetDecoder retrieves the registered decoder for the given type.
func GetDecoder(name Type) (Decoder, error) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	decoder, exists := registry.decoders[name]
	if !exists {
		return nil, fmt.Errorf("%w: decoder not found for type: %s", ErrUnknownType, name)
	}
	return decoder, nil
}

// TypeFromPath returns the codec type for a file name by its extension
// (.json, .yaml, .yml, .toml; case-insensitive).
func TypeFromPath(path string) (Type, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if t, ok := extensions[ext]; ok {
		return t, nil
	}
	return "", fmt.Errorf("%w: cannot infer format of %q", ErrUnknownType, path)
}
