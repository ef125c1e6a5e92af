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

package apis

import (
	"reflect"
)

// NameConfig carries read-only naming knobs.
type NameConfig struct {
	// Short drops the package qualifier.
	Short bool
	// MaxUnwrap limits pointer unwrapping when looking for the named type.
	MaxUnwrap int
}

// Resolver coordinates strategies to resolve display names for values and types.
// Typical chain: NamerStrategy -> RegistryStrategy -> ReflectStrategy.
type Resolver interface {
	// Resolve returns a display name for v, or "" if none can be determined.
	Resolve(v reflect.Value, cfg NameConfig) string

	// ResolveType returns a display name for t, or "" if none can be determined.
	ResolveType(t reflect.Type, cfg NameConfig) string
}
