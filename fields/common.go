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

package fields

import (
	"reflect"

	uref "dirpx.dev/structx/utils/reflect"
)

// Relation describes how two types relate for structural comparison.
type Relation int

const (
	// Unrelated types cannot be compared structurally.
	Unrelated Relation = iota
	// Same types are identical.
	Same
	// LeftEmbeds means the left type embeds the right one; project the left
	// value along Path.
	LeftEmbeds
	// RightEmbeds means the right type embeds the left one; project the right
	// value along Path.
	RightEmbeds
)

// Common finds the most specific type both a and b can be compared as.
// Pointer levels are ignored.
func Common(a, b reflect.Type) (Relation, []int) {
	a, b = uref.Elem(a), uref.Elem(b)
	if a == nil || b == nil {
		return Unrelated, nil
	}
	if a == b {
		return Same, nil
	}
	if path := embedPath(a, b, map[reflect.Type]bool{}); path != nil {
		return LeftEmbeds, path
	}
	if path := embedPath(b, a, map[reflect.Type]bool{}); path != nil {
		return RightEmbeds, path
	}
	return Unrelated, nil
}

// embedPath returns the field index path from outer to an embedded target,
// searching depth-first in declaration order.
func embedPath(outer, target reflect.Type, seen map[reflect.Type]bool) []int {
	if outer.Kind() != reflect.Struct || seen[outer] {
		return nil
	}
	seen[outer] = true
	for i := 0; i < outer.NumField(); i++ {
		sf := outer.Field(i)
		if !sf.Anonymous || !isStruct(sf.Type) {
			continue
		}
		et := uref.Elem(sf.Type)
		if et == target {
			return []int{i}
		}
		if rest := embedPath(et, target, seen); rest != nil {
			return append([]int{i}, rest...)
		}
	}
	return nil
}

// Project reads the embedded part of v along path, dereferencing pointers.
// The invalid Value is returned when a nil pointer lies on the path.
func Project(v reflect.Value, path []int) reflect.Value {
	if len(path) == 0 {
		return v
	}
	return uref.Project(uref.Indirect(v), path)
}
