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
	"path"
	"reflect"
	"strings"
	"sync"

	"dirpx.dev/structx/apis"
	uref "dirpx.dev/structx/utils/reflect"
)

// NewReflectStrategy creates an apis.Strategy that names types via reflection
// using utils/reflect.Normalize and memoization.
func NewReflectStrategy() apis.Strategy {
	return reflectStrategy{}
}

// reflectStrategy is the universal fallback. Named types become "pkg.Type"
// (or "Type" when short), with generic instantiation parameters stripped.
// Unnamed types use their Go spelling, e.g. "[]int" or "map[string]int".
type reflectStrategy struct{}

// Ensure reflectStrategy implements apis.Strategy.
var _ apis.Strategy = (*reflectStrategy)(nil)

// cacheKey ensures memoization respects all config knobs that affect resolution.
type cacheKey struct {
	t         reflect.Type
	short     bool
	maxUnwrap int16
}

// typeNameCache caches resolved type names by (type, config knobs).
var typeNameCache sync.Map // key: cacheKey, val: string

// TryResolve names v's type.
func (reflectStrategy) TryResolve(v reflect.Value, cfg apis.NameConfig) (string, bool) {
	if !v.IsValid() {
		return "", false
	}
	return byType(v.Type(), cfg), true
}

// TryResolveType names t.
func (reflectStrategy) TryResolveType(t reflect.Type, cfg apis.NameConfig) (string, bool) {
	if t == nil {
		return "", false
	}
	return byType(t, cfg), true
}

// byType resolves the display name for t with memoization.
func byType(t reflect.Type, cfg apis.NameConfig) string {
	key := cacheKey{
		t:         t,
		short:     cfg.Short,
		maxUnwrap: int16(cfg.MaxUnwrap),
	}
	if v, ok := typeNameCache.Load(key); ok {
		return v.(string)
	}

	var name string
	base, err := uref.Normalize(t, cfg.MaxUnwrap)
	if err != nil {
		name = t.String()
	} else {
		name = stripTypeParams(base.Name())
		if p := base.PkgPath(); p != "" && !cfg.Short {
			name = path.Base(p) + "." + name
		}
	}

	typeNameCache.Store(key, name)
	return name
}

// stripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
