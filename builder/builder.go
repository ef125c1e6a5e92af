/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package builder

import (
	"dirpx.dev/structx/apis"
	"dirpx.dev/structx/registry"
	"dirpx.dev/structx/resolver"
	"dirpx.dev/structx/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildRegistry builds a registry holding the default leaf types. Entries of
// a previous registry are copied over; conflicting ones keep the default.
func (b *builder) BuildRegistry(prev apis.Registry) apis.Registry {
	nreg := registry.Default()
	if prev != nil {
		for _, e := range prev.Entries() {
			_ = nreg.Register(e)
		}
	}
	return nreg
}

// BuildResolver builds the naming chain: TypeNamer, then registry display
// names, then reflection.
func (b *builder) BuildResolver(reg apis.Registry) apis.Resolver {
	return resolver.New(
		strategy.NewNamerStrategy(),
		strategy.NewRegistryStrategy(reg),
		strategy.NewReflectStrategy(),
	)
}
