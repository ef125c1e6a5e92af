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

// Package fields enumerates the readable state of struct types.
//
// A type's "ancestors" are its embedded struct fields (by value or by
// pointer). With IncludeAncestors the type's own fields come first, then each
// embedded struct is walked depth-first in declaration order. Descriptor lists
// are deterministic for a fixed (type, options) pair and are memoised.
package fields

import (
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"dirpx.dev/structx/apis"
	"dirpx.dev/structx/internal/logger"
	uref "dirpx.dev/structx/utils/reflect"
)

// TagKey is the struct tag read by Enumerate.
//
//	Field int `structx:"name,transient,summary"`
//	Field int `structx:"-"`
const TagKey = "structx"

// cacheKey ensures memoization respects every option that affects the list.
type cacheKey struct {
	t         reflect.Type
	ancestors bool
	stopAt    reflect.Type
	excluded  string
	transient bool
	order     apis.FieldOrder
}

// descriptorCache caches enumerated field lists by cacheKey.
var descriptorCache sync.Map // key: cacheKey, val: []apis.Field

// Enumerate returns the ordered field descriptors of t (pointers stripped).
// Non-struct types have no fields. The returned slice is shared and must not
// be modified.
func Enumerate(t reflect.Type, opts apis.Options, order apis.FieldOrder) []apis.Field {
	t = uref.Elem(t)
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	if opts.Exclude != nil {
		return enumerate(t, opts, order)
	}

	key := cacheKey{
		t:         t,
		ancestors: opts.IncludeAncestors,
		stopAt:    uref.Elem(opts.StopAt),
		excluded:  strings.Join(opts.Excluded, "\x00"),
		transient: opts.IncludeTransient,
		order:     order,
	}
	if v, ok := descriptorCache.Load(key); ok {
		return v.([]apis.Field)
	}
	out := enumerate(t, opts, order)
	descriptorCache.Store(key, out)
	logger.Get().WithFields(logrus.Fields{
		"type":   t.String(),
		"fields": len(out),
		"order":  order.String(),
	}).Debug("field descriptors cached")
	return out
}

func enumerate(t reflect.Type, opts apis.Options, order apis.FieldOrder) []apis.Field {
	w := walker{
		opts:     opts,
		order:    order,
		stopAt:   uref.Elem(opts.StopAt),
		excluded: make(map[string]struct{}, len(opts.Excluded)),
		visiting: map[reflect.Type]bool{},
	}
	for _, n := range opts.Excluded {
		w.excluded[n] = struct{}{}
	}
	w.walk(t, nil, 0)
	for i := range w.out {
		w.out[i].Ordinal = i
	}
	return w.out
}

type walker struct {
	opts     apis.Options
	order    apis.FieldOrder
	stopAt   reflect.Type
	excluded map[string]struct{}
	visiting map[reflect.Type]bool
	out      []apis.Field
}

type ancestor struct {
	t     reflect.Type
	index []int
}

func (w *walker) walk(t reflect.Type, prefix []int, depth int) {
	if w.visiting[t] {
		return
	}
	w.visiting[t] = true
	defer delete(w.visiting, t)

	var own []apis.Field
	var ancestors []ancestor

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Name == "_" || runtimeLevel(sf.Type) {
			continue
		}
		tag := parseTag(sf.Tag.Get(TagKey))
		if tag.skip || (tag.transient && !w.opts.IncludeTransient) {
			continue
		}

		index := append(append(make([]int, 0, len(prefix)+1), prefix...), i)

		if w.opts.IncludeAncestors && sf.Anonymous && isStruct(sf.Type) {
			ancestors = append(ancestors, ancestor{t: uref.Elem(sf.Type), index: index})
			continue
		}

		f := apis.Field{
			Name:      sf.Name,
			GoName:    sf.Name,
			Owner:     t,
			Type:      sf.Type,
			Index:     index,
			Depth:     depth,
			Transient: tag.transient,
			Summary:   tag.summary,
		}
		if tag.name != "" {
			f.Name = tag.name
		}
		if w.isExcluded(f) {
			continue
		}
		own = append(own, f)
	}

	if w.order == apis.ByName {
		sort.SliceStable(own, func(i, j int) bool { return own[i].Name < own[j].Name })
	}
	w.out = append(w.out, own...)

	if t == w.stopAt {
		return
	}
	for _, a := range ancestors {
		w.walk(a.t, a.index, depth+1)
	}
}

func (w *walker) isExcluded(f apis.Field) bool {
	if _, ok := w.excluded[f.Name]; ok {
		return true
	}
	if _, ok := w.excluded[f.GoName]; ok {
		return true
	}
	return w.opts.Exclude != nil && w.opts.Exclude(f)
}

// runtimeLevel reports members that describe runtime machinery rather than
// user state: funcs, channels, raw pointers and sync primitives.
func runtimeLevel(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	}
	switch uref.Elem(t).PkgPath() {
	case "sync", "sync/atomic":
		return true
	}
	return false
}

func isStruct(t reflect.Type) bool {
	t = uref.Elem(t)
	return t != nil && t.Kind() == reflect.Struct
}

type fieldTag struct {
	name      string
	skip      bool
	transient bool
	summary   bool
}

func parseTag(s string) fieldTag {
	if s == "-" {
		return fieldTag{skip: true}
	}
	parts := strings.Split(s, ",")
	tag := fieldTag{name: parts[0]}
	for _, p := range parts[1:] {
		switch p {
		case "transient":
			tag.transient = true
		case "summary":
			tag.summary = true
		}
	}
	return tag
}
