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

// TypeNamer lets a value choose the type name the formatting engine prints
// in front of its content and in summary/cycle placeholders.
//
// The returned name should be stable for the type and must not depend on
// mutable instance state.
type TypeNamer interface {
	TypeName() string
}

// TypeNamerFunc adapts a plain function to the TypeNamer interface.
type TypeNamerFunc func() string

// TypeName implements TypeNamer for TypeNamerFunc.
func (f TypeNamerFunc) TypeName() string {
	return f()
}

// Identifier lets a value supply its own identity marker text.
// By default the identity marker is the value's address in hex.
type Identifier interface {
	// EntityID returns a stable identifier for this instance.
	// An empty string means "no identity".
	EntityID() string
}
