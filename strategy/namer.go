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

// NewNamerStrategy creates an apis.Strategy that uses apis.TypeNamer.
func NewNamerStrategy() apis.Strategy {
	return &namerStrategy{}
}

// namerStrategy is a zero-cost fast path: if v implements apis.TypeNamer,
// return its TypeName() and stop the chain.
type namerStrategy struct{}

// Ensure namerStrategy implements apis.Strategy.
var _ apis.Strategy = (*namerStrategy)(nil)

// TryResolve checks if v implements apis.TypeNamer and returns its TypeName().
func (*namerStrategy) TryResolve(v reflect.Value, _ apis.NameConfig) (string, bool) {
	if !v.IsValid() || !v.CanInterface() {
		return "", false
	}
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
		if v.IsNil() {
			return "", false
		}
	}
	if n, ok := v.Interface().(apis.TypeNamer); ok {
		if name := n.TypeName(); name != "" {
			return name, true
		}
	}
	return "", false
}

// TryResolveType always returns false: TypeNamer requires an instance.
func (*namerStrategy) TryResolveType(_ reflect.Type, _ apis.NameConfig) (string, bool) {
	return "", false
}
