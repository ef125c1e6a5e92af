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

	uref "dirpx.dev/structx/utils/reflect"
)

// Field describes one readable piece of a struct's state.
type Field struct {
	// Name is the rendered name (tag rename applied).
	Name string
	// GoName is the declared Go field name.
	GoName string
	// Ordinal is the position of the field in the enumerated list.
	Ordinal int
	// Owner is the struct type that declares the field.
	Owner reflect.Type
	// Type is the field's declared type.
	Type reflect.Type
	// Index is the path from the enumerated root type, through embedded
	// ancestors, to the field.
	Index []int
	// Depth is 0 for the root type's own fields, 1 for its direct ancestors, etc.
	Depth int
	// Transient marks derived/cache state.
	Transient bool
	// Summary asks the formatting engine for summary rendering.
	Summary bool
}

// Read returns the field's value within owner, readable even when unexported.
// The invalid Value is returned when a nil embedded pointer lies on the path.
func (f Field) Read(owner reflect.Value) reflect.Value {
	return uref.Project(owner, f.Index)
}
