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

// Package structx compares, orders and renders arbitrary Go values by
// walking their fields.
//
// Three engines share one traversal: the field list of a type (its own
// fields, then the fields of its embedded structs), read through reflection
// including unexported fields, and a per-call cycle guard that keeps
// self-referential graphs finite.
//
//	ok := structx.Equal(a, b)           // structural equality
//	c, err := structx.Compare(a, b)     // -1, 0 or +1
//	s, err := structx.Render(v)         // "pkg.Type@c000012345[a=1,b=<null>]"
//
// # Floating point
//
// Equality compares floats by bit pattern, so NaN equals NaN and +0.0 is
// different from -0.0. Ordering uses a total order where -0.0 sorts before
// +0.0 and NaN sorts above every other value. Both rules canonicalise NaN.
// They differ on purpose and are not meant to be unified.
//
// # Fields
//
// Embedded structs play the role of ancestors. With the default options the
// type's own fields come first, then each embedded struct depth first; a
// StopAt type ends the walk. Fields can be renamed, marked transient or
// summary-only with a struct tag:
//
//	type Session struct {
//		User  string
//		Token []byte         `structx:"token,summary"`
//		cache map[string]int `structx:",transient"`
//		Debug bool           `structx:"-"`
//	}
//
// Funcs, channels, unsafe pointers and sync primitives are never read.
//
// # Leaf types
//
// Types in the registry marked as leaves are never traversed: their own
// Equal, Compare and String methods are used instead. The default registry
// holds string, time.Time and netip.Addr.
//
// # Styles
//
// Render delegates layout to a style.Style. Presets are default, multi-line,
// no-field-names, short-prefix, simple, no-type-name and json; custom styles
// are derived from a preset or loaded from YAML or TOML (package style).
//
// # Global state
//
// Options, the default style, the registry, the resolver and the builder
// that produces them live in one immutable snapshot published atomically.
// Reads are lock-free; setters build a new snapshot under a mutex. A
// registry or resolver set explicitly is pinned and survives SetBuilder
// until unpinned.
//
// Every engine is also usable on its own through packages equal, order and
// format, which take explicit apis.Options.
package structx
