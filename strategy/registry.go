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

package strategy

import (
	"reflect"

	"dirpx.dev/structx/apis"
)

// NewRegistryStrategy creates an apis.Strategy that uses display names
// recorded in an apis.Registry.
func NewRegistryStrategy(reg apis.Registry) apis.Strategy {
	return &registryStrategy{reg: reg}
}

// registryStrategy consults a provided apis.Registry (reflection-free lookup).
type registryStrategy struct {
	reg apis.Registry
}

// Ensure registryStrategy implements apis.Strategy.
var _ apis.Strategy = (*registryStrategy)(nil)

// TryResolve looks up v's type in the registry.
func (s *registryStrategy) TryResolve(v reflect.Value, cfg apis.NameConfig) (string, bool) {
	if !v.IsValid() {
		return "", false
	}
	return s.TryResolveType(v.Type(), cfg)
}

// TryResolveType looks up t in the registry. Entries without a display
// name fall through.
func (s *registryStrategy) TryResolveType(t reflect.Type, _ apis.NameConfig) (string, bool) {
	if t == nil || s.reg == nil {
		return "", false
	}
	if e, ok := s.reg.Lookup(t); ok && e.Name != "" {
		return e.Name, true
	}
	return "", false
}
