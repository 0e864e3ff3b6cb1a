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

// Package codec converts route declaration documents between their encoded
// form and generic maps.
//
// JSON, YAML and TOML codecs are registered at init, together with an
// environment variable codec used for overrides. [TypeFromPath] picks a
// codec from a file extension.
//
// Register additional formats with [RegisterEncoder] and [RegisterDecoder]:
//
//	codec.RegisterDecoder(codec.Type("hcl"), HCLCodec{})
package codec
