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

// Package order implements three-way structural ordering over Go values.
//
// Floating-point values follow a total order in which -0.0 sorts before +0.0
// and NaN sorts above every other value, +Inf included. Equality in package
// equal is bit-pattern based instead; the two rules are kept apart on purpose.
package order

import (
	"cmp"
	"reflect"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"dirpx.dev/structx/apis"
	"dirpx.dev/structx/config"
	"dirpx.dev/structx/cycle"
	"dirpx.dev/structx/fields"
	"dirpx.dev/structx/internal/logger"
	"dirpx.dev/structx/utils/float"
	uref "dirpx.dev/structx/utils/reflect"
)

var (
	// ErrIncomparableTypes is returned when two values have unrelated types.
	ErrIncomparableTypes = errors.New("structx(order): incomparable types")
	// ErrUnorderable is returned for values with no defined order, such as
	// funcs, channels or leaf types without a Compare method.
	ErrUnorderable = errors.New("structx(order): value has no order")
)

var intType = reflect.TypeOf(0)

// Float64 orders x and y with the total order described in the package doc.
func Float64(x, y float64) int { return float.Compare64(x, y) }

// Float32 is Float64 for float32.
func Float32(x, y float32) int { return float.Compare32(x, y) }

// Builder accumulates a comparison result. Once a result is nonzero, or an
// error occurred, further appends are not evaluated.
// A Builder is not safe for concurrent use.
type Builder struct {
	opts   apis.Options
	guard  *cycle.Pairs
	result int
	err    error
}

// NewBuilder returns a Builder configured by opts.
func NewBuilder(opts ...config.Option) *Builder {
	return newBuilder(config.Complete(config.NewOptions(opts...)))
}

func newBuilder(o apis.Options) *Builder {
	return &Builder{opts: o, guard: cycle.NewPairs(o.MaxDepth)}
}

// Reflect compares a and b field by field in declaration order and returns
// -1, 0 or +1. Values of unrelated types yield ErrIncomparableTypes.
func Reflect(a, b any, opts apis.Options) (int, error) {
	ob := newBuilder(config.Complete(opts))
	ob.result, ob.err = ob.structural(reflect.ValueOf(a), reflect.ValueOf(b))
	return ob.Build()
}

func (b *Builder) decided() bool { return b.result != 0 || b.err != nil }

// Append compares x and y.
func (b *Builder) Append(x, y any) *Builder {
	if b.decided() {
		return b
	}
	b.result, b.err = b.value(uref.Settle(reflect.ValueOf(x)), uref.Settle(reflect.ValueOf(y)))
	return b
}

// AppendFloat64 compares x and y with the float total order.
func (b *Builder) AppendFloat64(x, y float64) *Builder {
	if !b.decided() {
		b.result = float.Compare64(x, y)
	}
	return b
}

// AppendFloat32 compares x and y with the float total order.
func (b *Builder) AppendFloat32(x, y float32) *Builder {
	if !b.decided() {
		b.result = float.Compare32(x, y)
	}
	return b
}

// AppendSuper folds in the result of an embedded type's own comparison.
func (b *Builder) AppendSuper(superResult int) *Builder {
	if !b.decided() {
		b.result = sign(superResult)
	}
	return b
}

// Result returns the comparison so far: -1, 0 or +1.
func (b *Builder) Result() int { return b.result }

// Err returns the first error hit by an append.
func (b *Builder) Err() error { return b.err }

// Build returns the result and the first error. The result is 0 on error.
func (b *Builder) Build() (int, error) {
	if b.err != nil {
		return 0, b.err
	}
	return b.result, nil
}

func (b *Builder) structural(x, y reflect.Value) (int, error) {
	kx, okx := cycle.KeyOf(x)
	ky, oky := cycle.KeyOf(y)
	if okx && oky && kx == ky {
		return 0, nil
	}

	xv, yv := uref.Settle(uref.Indirect(x)), uref.Settle(uref.Indirect(y))
	if c, done := nulls(xv.IsValid(), yv.IsValid()); done {
		return c, nil
	}
	if xv.Kind() != reflect.Struct || yv.Kind() != reflect.Struct || b.leaf(xv.Type()) || b.leaf(yv.Type()) {
		return b.value(xv, yv)
	}

	switch rel, path := fields.Common(xv.Type(), yv.Type()); rel {
	case fields.Unrelated:
		return 0, incomparable(xv.Type(), yv.Type())
	case fields.LeftEmbeds:
		xv = uref.Indirect(fields.Project(xv, path))
	case fields.RightEmbeds:
		yv = uref.Indirect(fields.Project(yv, path))
	}
	if c, done := nulls(xv.IsValid(), yv.IsValid()); done {
		return c, nil
	}
	if m, ok := uref.Method(xv, "Compare", intType); ok {
		return sign(int(uref.Call1(m, yv).Int())), nil
	}

	if okx || oky {
		if !b.guard.TryEnter(kx, ky) {
			b.skip(xv.Type())
			return 0, nil
		}
		defer b.guard.Leave(kx, ky)
	} else {
		if !b.guard.Descend() {
			b.skip(xv.Type())
			return 0, nil
		}
		defer b.guard.Ascend()
	}

	for _, f := range fields.Enumerate(xv.Type(), b.opts, b.opts.FieldOrderOr(apis.Declaration)) {
		c, err := b.value(f.Read(xv), f.Read(yv))
		if err != nil {
			return 0, errors.WithMessagef(err, "field %s.%s", f.Owner, f.GoName)
		}
		if c != 0 {
			return c, nil
		}
	}
	return 0, nil
}

func (b *Builder) value(x, y reflect.Value) (int, error) {
	if c, done := nulls(x.IsValid(), y.IsValid()); done {
		return c, nil
	}
	if x.Type() != y.Type() {
		return 0, incomparable(x.Type(), y.Type())
	}

	switch x.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
		if c, done := nulls(!x.IsNil(), !y.IsNil()); done {
			return c, nil
		}
	}
	if m, ok := uref.Method(x, "Compare", intType); ok {
		return sign(int(uref.Call1(m, y).Int())), nil
	}

	switch x.Kind() {
	case reflect.Bool:
		return cmpBool(x.Bool(), y.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(x.Int(), y.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(x.Uint(), y.Uint()), nil
	case reflect.Float32:
		return float.Compare32(float32(x.Float()), float32(y.Float())), nil
	case reflect.Float64:
		return float.Compare64(x.Float(), y.Float()), nil
	case reflect.Complex64, reflect.Complex128:
		cx, cy := x.Complex(), y.Complex()
		if c := float.Compare64(real(cx), real(cy)); c != 0 {
			return c, nil
		}
		return float.Compare64(imag(cx), imag(cy)), nil
	case reflect.String:
		return strings.Compare(x.String(), y.String()), nil
	case reflect.Array:
		return b.elements(x, y)
	case reflect.Slice:
		return b.slice(x, y)
	case reflect.Interface:
		ex, ey := uref.Settle(x.Elem()), uref.Settle(y.Elem())
		if ex.Type() != ey.Type() {
			return 0, incomparable(ex.Type(), ey.Type())
		}
		return b.value(ex, ey)
	case reflect.Map:
		return b.mapping(x, y)
	case reflect.Ptr, reflect.Struct:
		if b.leaf(uref.Elem(x.Type())) {
			return b.leafValue(uref.Indirect(x), uref.Indirect(y))
		}
		return b.structural(x, y)
	}
	return 0, errors.Wrapf(ErrUnorderable, "type %s", x.Type())
}

// leafValue orders leaf types that have no Compare method by their
// underlying scalar kind.
func (b *Builder) leafValue(x, y reflect.Value) (int, error) {
	if m, ok := uref.Method(x, "Compare", intType); ok {
		return sign(int(uref.Call1(m, y).Int())), nil
	}
	switch x.Kind() {
	case reflect.Struct, reflect.Array:
		return 0, errors.Wrapf(ErrUnorderable, "leaf type %s has no Compare method", x.Type())
	}
	return b.value(x, y)
}

func (b *Builder) elements(x, y reflect.Value) (int, error) {
	n := min(x.Len(), y.Len())
	for i := 0; i < n; i++ {
		c, err := b.value(uref.Readable(x.Index(i)), uref.Readable(y.Index(i)))
		if err != nil {
			return 0, errors.WithMessagef(err, "index %d", i)
		}
		if c != 0 {
			return c, nil
		}
	}
	return cmp.Compare(x.Len(), y.Len()), nil
}

func (b *Builder) slice(x, y reflect.Value) (int, error) {
	kx, _ := cycle.KeyOf(x)
	ky, _ := cycle.KeyOf(y)
	if kx == ky {
		return 0, nil
	}
	if x.Len() != y.Len() {
		return cmp.Compare(x.Len(), y.Len()), nil
	}
	if !b.guard.TryEnter(kx, ky) {
		b.skip(x.Type())
		return 0, nil
	}
	defer b.guard.Leave(kx, ky)
	return b.elements(x, y)
}

// mapping orders maps by length, then by their sorted keys, then by the
// values stored under those keys.
func (b *Builder) mapping(x, y reflect.Value) (int, error) {
	kx, _ := cycle.KeyOf(x)
	ky, _ := cycle.KeyOf(y)
	if kx == ky {
		return 0, nil
	}
	if c := cmp.Compare(x.Len(), y.Len()); c != 0 {
		return c, nil
	}
	if !b.guard.TryEnter(kx, ky) {
		b.skip(x.Type())
		return 0, nil
	}
	defer b.guard.Leave(kx, ky)

	xs, err := b.sortedKeys(x)
	if err != nil {
		return 0, err
	}
	ys, err := b.sortedKeys(y)
	if err != nil {
		return 0, err
	}
	for i := range xs {
		c, err := b.value(xs[i], ys[i])
		if err != nil || c != 0 {
			return c, err
		}
	}
	for _, k := range xs {
		c, err := b.value(uref.Settle(x.MapIndex(k)), uref.Settle(y.MapIndex(k)))
		if err != nil {
			return 0, errors.WithMessagef(err, "key %v", k)
		}
		if c != 0 {
			return c, nil
		}
	}
	return 0, nil
}

// SortKeys returns the keys of map m in ascending order.
func SortKeys(m reflect.Value, opts apis.Options) ([]reflect.Value, error) {
	return newBuilder(config.Complete(opts)).sortedKeys(m)
}

func (b *Builder) sortedKeys(m reflect.Value) ([]reflect.Value, error) {
	keys := m.MapKeys()
	for i := range keys {
		keys[i] = uref.Settle(keys[i])
	}
	var err error
	sort.SliceStable(keys, func(i, j int) bool {
		if err != nil {
			return false
		}
		var c int
		c, err = b.value(keys[i], keys[j])
		return c < 0
	})
	return keys, err
}

func (b *Builder) leaf(t reflect.Type) bool {
	return b.opts.Registry != nil && b.opts.Registry.IsLeaf(t)
}

func (b *Builder) skip(t reflect.Type) {
	logger.Get().WithFields(logrus.Fields{
		"type":  t.String(),
		"depth": b.guard.Depth(),
	}).Debug("order: pair already in progress or depth budget spent, skipping")
}

// nulls orders an absent value before a present one. done is false when
// both are present.
func nulls(xPresent, yPresent bool) (c int, done bool) {
	switch {
	case xPresent && yPresent:
		return 0, false
	case !xPresent && !yPresent:
		return 0, true
	case !xPresent:
		return -1, true
	default:
		return 1, true
	}
}

func cmpBool(x, y bool) int {
	switch {
	case x == y:
		return 0
	case !x:
		return -1
	default:
		return 1
	}
}

func sign(c int) int {
	switch {
	case c < 0:
		return -1
	case c > 0:
		return 1
	}
	return 0
}

func incomparable(x, y reflect.Type) error {
	return errors.Wrapf(ErrIncomparableTypes, "%s and %s", x, y)
}
