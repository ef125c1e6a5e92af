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

// Package equal implements structural equality over Go values.
//
// Floating-point leaves are equal iff their bit patterns are equal, so NaN
// equals NaN and +0.0 differs from -0.0. This deliberately differs from the
// == operator and from the ordering rules of package order.
package equal

import (
	"reflect"

	"github.com/sirupsen/logrus"

	"dirpx.dev/structx/apis"
	"dirpx.dev/structx/config"
	"dirpx.dev/structx/cycle"
	"dirpx.dev/structx/fields"
	"dirpx.dev/structx/internal/logger"
	"dirpx.dev/structx/utils/float"
	uref "dirpx.dev/structx/utils/reflect"
)

var boolType = reflect.TypeOf(true)

// Builder accumulates an equality verdict. Once any append is unequal the
// remaining appends are not evaluated. A Builder is not safe for concurrent use.
type Builder struct {
	opts  apis.Options
	guard *cycle.Pairs
	equal bool
}

// NewBuilder returns a Builder configured by opts.
func NewBuilder(opts ...config.Option) *Builder {
	return newBuilder(config.Complete(config.NewOptions(opts...)))
}

func newBuilder(o apis.Options) *Builder {
	return &Builder{opts: o, guard: cycle.NewPairs(o.MaxDepth), equal: true}
}

// Reflect reports whether a and b are structurally equal, comparing the
// fields of their most specific common type.
func Reflect(a, b any, opts apis.Options) bool {
	eb := newBuilder(config.Complete(opts))
	eb.equal = eb.structural(reflect.ValueOf(a), reflect.ValueOf(b))
	return eb.equal
}

// Append compares x and y: arrays and slices element-wise, scalars by value,
// other values by their own equality or, in recursive mode, structurally.
func (b *Builder) Append(x, y any) *Builder {
	if !b.equal {
		return b
	}
	b.equal = b.value(uref.Settle(reflect.ValueOf(x)), uref.Settle(reflect.ValueOf(y)))
	return b
}

// AppendFloat64 compares x and y by bit pattern.
func (b *Builder) AppendFloat64(x, y float64) *Builder {
	if b.equal {
		b.equal = float.Bits64(x) == float.Bits64(y)
	}
	return b
}

// AppendFloat32 compares x and y by bit pattern.
func (b *Builder) AppendFloat32(x, y float32) *Builder {
	if b.equal {
		b.equal = float.Bits32(x) == float.Bits32(y)
	}
	return b
}

// AppendSuper folds in the verdict of an embedded type's own equality.
func (b *Builder) AppendSuper(superEqual bool) *Builder {
	if b.equal {
		b.equal = superEqual
	}
	return b
}

// IsEqual returns the verdict so far.
func (b *Builder) IsEqual() bool { return b.equal }

// Reset restores the Builder to its initial, equal state.
func (b *Builder) Reset() {
	b.equal = true
	b.guard = cycle.NewPairs(b.opts.MaxDepth)
}

// structural compares two values field by field. Pointers and interfaces are
// followed; unrelated struct types are unequal.
func (b *Builder) structural(x, y reflect.Value) bool {
	kx, okx := cycle.KeyOf(x)
	ky, oky := cycle.KeyOf(y)
	if okx && oky && kx == ky {
		return true
	}

	xv, yv := uref.Settle(uref.Indirect(x)), uref.Settle(uref.Indirect(y))
	if !xv.IsValid() || !yv.IsValid() {
		return !xv.IsValid() && !yv.IsValid()
	}
	if xv.Kind() != reflect.Struct || yv.Kind() != reflect.Struct || b.leaf(xv.Type()) || b.leaf(yv.Type()) {
		return b.value(xv, yv)
	}

	switch rel, path := fields.Common(xv.Type(), yv.Type()); rel {
	case fields.Unrelated:
		return false
	case fields.LeftEmbeds:
		xv = uref.Indirect(fields.Project(xv, path))
	case fields.RightEmbeds:
		yv = uref.Indirect(fields.Project(yv, path))
	}
	if !xv.IsValid() || !yv.IsValid() {
		return !xv.IsValid() && !yv.IsValid()
	}

	if okx || oky {
		if !b.guard.TryEnter(kx, ky) {
			b.skip(xv.Type())
			return true
		}
		defer b.guard.Leave(kx, ky)
	} else {
		if !b.guard.Descend() {
			b.skip(xv.Type())
			return true
		}
		defer b.guard.Ascend()
	}

	for _, f := range fields.Enumerate(xv.Type(), b.opts, b.opts.FieldOrderOr(apis.Declaration)) {
		if !b.value(f.Read(xv), f.Read(yv)) {
			return false
		}
	}
	return true
}

// value compares two field values.
func (b *Builder) value(x, y reflect.Value) bool {
	if !x.IsValid() || !y.IsValid() {
		return !x.IsValid() && !y.IsValid()
	}
	if x.Type() != y.Type() {
		return false
	}
	if b.leaf(x.Type()) {
		return ownEqual(x, y)
	}

	switch x.Kind() {
	case reflect.Bool:
		return x.Bool() == y.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return x.Int() == y.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return x.Uint() == y.Uint()
	case reflect.Float32:
		return float.Bits32(float32(x.Float())) == float.Bits32(float32(y.Float()))
	case reflect.Float64:
		return float.Bits64(x.Float()) == float.Bits64(y.Float())
	case reflect.Complex64:
		cx, cy := complex64(x.Complex()), complex64(y.Complex())
		return float.Bits32(real(cx)) == float.Bits32(real(cy)) && float.Bits32(imag(cx)) == float.Bits32(imag(cy))
	case reflect.Complex128:
		cx, cy := x.Complex(), y.Complex()
		return float.Bits64(real(cx)) == float.Bits64(real(cy)) && float.Bits64(imag(cx)) == float.Bits64(imag(cy))
	case reflect.String:
		return x.String() == y.String()
	case reflect.Array:
		return b.elements(x, y)
	case reflect.Slice:
		return b.slice(x, y)
	case reflect.Interface:
		if x.IsNil() || y.IsNil() {
			return x.IsNil() && y.IsNil()
		}
		ex, ey := uref.Settle(x.Elem()), uref.Settle(y.Elem())
		if ex.Type() != ey.Type() {
			return false
		}
		return b.value(ex, ey)
	case reflect.Chan, reflect.UnsafePointer:
		return x.Pointer() == y.Pointer()
	case reflect.Func:
		return x.IsNil() && y.IsNil()
	}

	// struct, pointer, map
	if x.Kind() == reflect.Ptr && b.leaf(x.Type().Elem()) {
		return b.structural(x, y)
	}
	if !b.opts.Recursive {
		// A struct value has no identity of its own: without an Equal method
		// its fields are compared like the root's, floats included.
		if x.Kind() == reflect.Struct {
			if _, ok := uref.Method(x, "Equal", boolType); !ok {
				return b.structural(x, y)
			}
		}
		return ownEqual(x, y)
	}
	switch x.Kind() {
	case reflect.Map:
		return b.mapping(x, y)
	default:
		return b.structural(x, y)
	}
}

// elements compares arrays and slices of equal type element-wise.
func (b *Builder) elements(x, y reflect.Value) bool {
	if x.Len() != y.Len() {
		return false
	}
	for i := 0; i < x.Len(); i++ {
		if !b.value(uref.Readable(x.Index(i)), uref.Readable(y.Index(i))) {
			return false
		}
	}
	return true
}

func (b *Builder) slice(x, y reflect.Value) bool {
	if x.IsNil() || y.IsNil() {
		return x.IsNil() && y.IsNil()
	}
	if x.Len() != y.Len() {
		return false
	}
	kx, _ := cycle.KeyOf(x)
	ky, _ := cycle.KeyOf(y)
	if kx == ky {
		return true
	}
	if !b.guard.TryEnter(kx, ky) {
		b.skip(x.Type())
		return true
	}
	defer b.guard.Leave(kx, ky)
	return b.elements(x, y)
}

func (b *Builder) mapping(x, y reflect.Value) bool {
	if x.IsNil() || y.IsNil() {
		return x.IsNil() && y.IsNil()
	}
	if x.Len() != y.Len() {
		return false
	}
	kx, _ := cycle.KeyOf(x)
	ky, _ := cycle.KeyOf(y)
	if kx == ky {
		return true
	}
	if !b.guard.TryEnter(kx, ky) {
		b.skip(x.Type())
		return true
	}
	defer b.guard.Leave(kx, ky)

	iter := x.MapRange()
	for iter.Next() {
		yv := y.MapIndex(iter.Key())
		if !yv.IsValid() {
			return false
		}
		if !b.value(uref.Settle(iter.Value()), uref.Settle(yv)) {
			return false
		}
	}
	return true
}

func (b *Builder) leaf(t reflect.Type) bool {
	return t.Kind() != reflect.Ptr && b.opts.Registry != nil && b.opts.Registry.IsLeaf(t)
}

// skip logs a pair that contributes no signal, either because it is already
// being compared further up or because the depth budget is spent.
func (b *Builder) skip(t reflect.Type) {
	logger.Get().WithFields(logrus.Fields{
		"type":  t.String(),
		"depth": b.guard.Depth(),
	}).Debug("equal: pair already in progress or depth budget spent, skipping")
}

// ownEqual uses the value's Equal(T) bool method, else reflect.DeepEqual.
// Struct values without Equal never get here outside leaf types.
func ownEqual(x, y reflect.Value) bool {
	if x.Kind() == reflect.Ptr || x.Kind() == reflect.Map {
		if x.IsNil() || y.IsNil() {
			return x.IsNil() && y.IsNil()
		}
	}
	if m, ok := uref.Method(x, "Equal", boolType); ok {
		return uref.Call1(m, y).Bool()
	}
	return reflect.DeepEqual(x.Interface(), y.Interface())
}
