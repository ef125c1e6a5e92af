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

// Package cycle provides the per-call registries that keep traversal of
// self-referential graphs finite.
//
// A guard is created fresh for every top-level call and threaded through the
// recursion; it is never shared between goroutines. Entries are removed by the
// frame that inserted them, so a guard only ever holds the identities on the
// current descent path.
package cycle

import "reflect"

// Key identifies a reference value. Slices are keyed by their data pointer and
// length so that a sub-slice of the same backing array is a different node.
type Key struct {
	Type reflect.Type
	Addr uintptr
	Len  int
}

// KeyOf returns the identity of v. Only pointers, maps, slices, channels and
// funcs have one; nil references and plain values report false.
func KeyOf(v reflect.Value) (Key, bool) {
	for v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			return Key{}, false
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return Key{}, false
	}
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		if v.IsNil() {
			return Key{}, false
		}
		return Key{Type: v.Type(), Addr: v.Pointer()}, true
	case reflect.Slice:
		if v.IsNil() {
			return Key{}, false
		}
		return Key{Type: v.Type(), Addr: v.Pointer(), Len: v.Len()}, true
	}
	return Key{}, false
}

// budget counts descents against an optional maximum.
type budget struct {
	max   int
	depth int
}

// Descend records one more level of nesting. It reports false, without
// recording anything, when the maximum depth is reached.
func (b *budget) Descend() bool {
	if b.max > 0 && b.depth >= b.max {
		return false
	}
	b.depth++
	return true
}

// Ascend undoes one Descend.
func (b *budget) Ascend() {
	if b.depth > 0 {
		b.depth--
	}
}

// Depth reports the current nesting level.
func (b *budget) Depth() int { return b.depth }

// Exhausted reports whether the next Descend would fail.
func (b *budget) Exhausted() bool { return b.max > 0 && b.depth >= b.max }

// Guard is the single-identity registry used while rendering.
type Guard struct {
	budget
	active map[Key]struct{}
}

// New returns an empty guard. maxDepth <= 0 means unlimited nesting.
func New(maxDepth int) *Guard {
	return &Guard{budget: budget{max: maxDepth}}
}

// Contains reports whether k is on the current descent path.
func (g *Guard) Contains(k Key) bool {
	_, ok := g.active[k]
	return ok
}

// TryEnter registers k and descends one level. It reports false when k is
// already in progress or the depth budget is spent; the caller must then
// fall back to a leaf representation.
func (g *Guard) TryEnter(k Key) bool {
	if g.Contains(k) || !g.Descend() {
		return false
	}
	if g.active == nil {
		g.active = make(map[Key]struct{})
	}
	g.active[k] = struct{}{}
	return true
}

// Leave removes k. It must be called by the frame whose TryEnter succeeded.
func (g *Guard) Leave(k Key) {
	if _, ok := g.active[k]; !ok {
		return
	}
	delete(g.active, k)
	g.Ascend()
}

// Len returns the number of identities in progress.
func (g *Guard) Len() int { return len(g.active) }

type pair struct {
	a, b Key
}

// Pairs is the pairwise registry used by equality and ordering. The pair
// (a, b) is also found as (b, a).
type Pairs struct {
	budget
	active map[pair]struct{}
}

// NewPairs returns an empty pair guard. maxDepth <= 0 means unlimited nesting.
func NewPairs(maxDepth int) *Pairs {
	return &Pairs{budget: budget{max: maxDepth}}
}

// Contains reports whether (a, b) or (b, a) is in progress.
func (p *Pairs) Contains(a, b Key) bool {
	if _, ok := p.active[pair{a, b}]; ok {
		return true
	}
	_, ok := p.active[pair{b, a}]
	return ok
}

// TryEnter registers (a, b) and descends one level. It reports false when
// the pair is already being compared or the depth budget is spent.
func (p *Pairs) TryEnter(a, b Key) bool {
	if p.Contains(a, b) || !p.Descend() {
		return false
	}
	if p.active == nil {
		p.active = make(map[pair]struct{})
	}
	p.active[pair{a, b}] = struct{}{}
	return true
}

// Leave removes (a, b).
func (p *Pairs) Leave(a, b Key) {
	if _, ok := p.active[pair{a, b}]; !ok {
		return
	}
	delete(p.active, pair{a, b})
	p.Ascend()
}

// Len returns the number of pairs in progress.
func (p *Pairs) Len() int { return len(p.active) }
