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

import "reflect"

// Registry is a caller-extensible table of types that need special handling.
// Implementations must be safe for concurrent reads.
type Registry interface {
	// Register adds or confirms an entry. Pointer types are normalised to
	// their element. Conflicting re-registrations fail.
	Register(e Entry) error
	// Lookup returns the entry for t, if present.
	Lookup(t reflect.Type) (Entry, bool)
	// IsLeaf reports whether t is a bypass type that must not be traversed.
	IsLeaf(t reflect.Type) bool
	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Entry
	// Count returns the number of registered entries.
	Count() int
	// Reset clears all registered entries.
	Reset()
}

// Entry is a single type association in a Registry snapshot.
type Entry struct {
	// Type is the registered reflect.Type.
	Type reflect.Type
	// Name overrides the rendered type name when non-empty.
	Name string
	// Leaf makes the engines use the type's own equality, ordering and
	// text instead of traversing its fields.
	Leaf bool
}
