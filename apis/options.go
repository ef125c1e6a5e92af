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

// FieldOrder selects how fields are ordered within one type level.
type FieldOrder int

const (
	// Declaration keeps source declaration order. Equality and ordering use it
	// so that field order is the documented tie-break sequence.
	Declaration FieldOrder = iota
	// ByName sorts fields by name within each type level. Formatting uses it
	// for reproducible output.
	ByName
)

// String implements fmt.Stringer.
func (o FieldOrder) String() string {
	switch o {
	case Declaration:
		return "declaration"
	case ByName:
		return "name"
	default:
		return "unknown"
	}
}

// Options carries the traversal knobs shared by every engine.
// It is passed by value and must be treated as immutable for one call.
type Options struct {
	// IncludeAncestors walks embedded structs after the type's own fields.
	// When false, an embedded struct is an ordinary nested field.
	IncludeAncestors bool

	// StopAt is the last ancestor whose fields are traversed. Its own
	// embedded ancestors are skipped. Nil walks to the root.
	StopAt reflect.Type

	// Excluded lists field names (rendered or Go names) to skip.
	Excluded []string

	// Exclude is an optional caller predicate; returning true skips the field.
	// Descriptor lists are not memoised when it is set.
	Exclude func(Field) bool

	// IncludeTransient keeps fields tagged as transient (derived/cache state).
	IncludeTransient bool

	// Recursive makes the equality engine re-enter itself for nested values
	// instead of using their own equality.
	Recursive bool

	// MaxDepth bounds reference descents per call. Zero means unlimited.
	MaxDepth int

	// Order overrides the engine's default field order when non-nil.
	Order *FieldOrder

	// Registry holds leaf (bypass) types and display names.
	Registry Registry

	// Resolver computes type names for the formatting engine.
	Resolver Resolver
}

// FieldOrderOr returns the configured order, or def when none is set.
func (o Options) FieldOrderOr(def FieldOrder) FieldOrder {
	if o.Order != nil {
		return *o.Order
	}
	return def
}
