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

package registry

import (
	"net/netip"
	"reflect"
	"sync"
	"time"

	"github.com/pkg/errors"

	"dirpx.dev/structx/apis"
	uref "dirpx.dev/structx/utils/reflect"
)

var (
	// ErrNilType is returned when an entry carries a nil reflect.Type.
	ErrNilType = errors.New("structx(registry): nil reflect.Type provided")
	// ErrConflictingRegistration indicates an attempt to re-register
	// a type with different settings.
	ErrConflictingRegistration = errors.New("structx(registry): conflicting type registration")
)

// New constructs an empty Registry.
func New() apis.Registry {
	return &registry{}
}

// Default constructs a Registry pre-populated with the default leaf types:
// string, time.Time and netip.Addr. These carry hidden representation state
// (monotonic readings, location pointers, interned zones) that a structural
// walk would misread, so their own equality and ordering are used.
func Default() apis.Registry {
	r := &registry{}
	for _, t := range defaultLeaves {
		_ = r.Register(apis.Entry{Type: t, Leaf: true})
	}
	return r
}

var defaultLeaves = []reflect.Type{
	reflect.TypeOf(""),
	reflect.TypeOf(time.Time{}),
	reflect.TypeOf(netip.Addr{}),
}

// registry is a simple Registry implementation backed by sync.Map.
type registry struct {
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps reflect.Type to apis.Entry.
	m sync.Map
	// count tracks the number of registered entries.
	count int
}

// Register associates the pointer-stripped type of e with e.
// It is idempotent for identical entries.
func (r *registry) Register(e apis.Entry) error {
	if e.Type == nil {
		return ErrNilType
	}
	e.Type = uref.Elem(e.Type)

	// Fast read path: idempotency / conflict check without locking.
	if old, ok := r.m.Load(e.Type); ok {
		return sameEntry(old.(apis.Entry), e)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := r.m.Load(e.Type); ok {
		return sameEntry(old.(apis.Entry), e)
	}

	r.m.Store(e.Type, e)
	r.count++
	return nil
}

func sameEntry(old, e apis.Entry) error {
	if old == e {
		return nil
	}
	return errors.Wrapf(ErrConflictingRegistration, "type %s", e.Type)
}

// Lookup returns the entry for t (pointers stripped), if present.
func (r *registry) Lookup(t reflect.Type) (apis.Entry, bool) {
	if t == nil {
		return apis.Entry{}, false
	}
	if v, ok := r.m.Load(uref.Elem(t)); ok {
		return v.(apis.Entry), true
	}
	return apis.Entry{}, false
}

// IsLeaf reports whether t is registered as a leaf type.
func (r *registry) IsLeaf(t reflect.Type) bool {
	e, ok := r.Lookup(t)
	return ok && e.Leaf
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(_, value any) bool {
		entries = append(entries, value.(apis.Entry))
		return true
	})
	return entries
}

// Count returns the number of registered entries.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered entries.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m = sync.Map{}
	r.count = 0
}
