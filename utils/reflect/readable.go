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

package reflect

import (
	"reflect"
	"unsafe"

	"github.com/pkg/errors"
)

// ErrUnreadableField signals a value that can neither be interfaced nor
// addressed. Traversal keeps every struct addressable, so hitting it is an
// invariant violation and is raised as a panic.
var ErrUnreadableField = errors.New("reflect: unreadable field")

// Readable returns v stripped of its read-only flag, so that unexported
// fields can be inspected like exported ones.
func Readable(v reflect.Value) reflect.Value {
	if !v.IsValid() || v.CanInterface() {
		return v
	}
	if v.CanAddr() {
		return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
	}
	panic(errors.Wrapf(ErrUnreadableField, "type %s", v.Type()))
}

// Settle makes v readable and, for structs and arrays, addressable, so that
// their parts stay readable too. Non-addressable composites are copied.
func Settle(v reflect.Value) reflect.Value {
	v = Readable(v)
	if !v.IsValid() || v.CanAddr() {
		return v
	}
	switch v.Kind() {
	case reflect.Struct, reflect.Array:
		c := reflect.New(v.Type()).Elem()
		c.Set(v)
		return c
	}
	return v
}

// Indirect unwraps interfaces and pointers until it reaches a concrete
// non-pointer value. The invalid Value is returned for nil.
func Indirect(v reflect.Value) reflect.Value {
	for v.IsValid() {
		switch v.Kind() {
		case reflect.Interface, reflect.Ptr:
			if v.IsNil() {
				return reflect.Value{}
			}
			v = Settle(v.Elem())
		default:
			return v
		}
	}
	return v
}

// Project walks index from struct v through embedded pointers. It returns
// the invalid Value when a nil pointer lies on the path.
func Project(v reflect.Value, index []int) reflect.Value {
	v = Settle(v)
	for _, i := range index {
		for v.Kind() == reflect.Ptr {
			if v.IsNil() {
				return reflect.Value{}
			}
			v = v.Elem()
		}
		if v.Kind() != reflect.Struct {
			return reflect.Value{}
		}
		v = Readable(v.Field(i))
	}
	return v
}
