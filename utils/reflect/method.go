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

import "reflect"

// Method returns the method name of v bound to v when it has the shape
// func(T) R, where T is v's own type and R is out. Pointer-receiver methods
// are found on addressable values.
func Method(v reflect.Value, name string, out reflect.Type) (reflect.Value, bool) {
	if !v.IsValid() {
		return reflect.Value{}, false
	}
	m := v.MethodByName(name)
	if !m.IsValid() && v.Kind() != reflect.Ptr && v.Kind() != reflect.Interface && v.CanAddr() {
		m = v.Addr().MethodByName(name)
	}
	if !m.IsValid() {
		return reflect.Value{}, false
	}
	mt := m.Type()
	if mt.NumIn() != 1 || mt.NumOut() != 1 || mt.In(0) != v.Type() || mt.Out(0) != out {
		return reflect.Value{}, false
	}
	return m, true
}

// Call1 invokes a method returned by Method with arg.
func Call1(m, arg reflect.Value) reflect.Value {
	return m.Call([]reflect.Value{arg})[0]
}
