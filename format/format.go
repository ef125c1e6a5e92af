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

// Package format renders Go values as text through a style.Style.
//
// Structs render as "<type><@identity><start>name=value<sep>...<end>", each
// piece toggled by the style. Fields are sorted by name within each type
// level unless an order is forced through the options. A reference already
// being rendered further up the current path renders as "pkg.Type@hex"
// instead of being entered again.
package format

import (
	"bytes"
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"

	"dirpx.dev/structx/apis"
	"dirpx.dev/structx/config"
	"dirpx.dev/structx/cycle"
	"dirpx.dev/structx/fields"
	"dirpx.dev/structx/internal/logger"
	"dirpx.dev/structx/order"
	"dirpx.dev/structx/style"
	uref "dirpx.dev/structx/utils/reflect"
)

var (
	stringerType   = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
	identifierType = reflect.TypeOf((*apis.Identifier)(nil)).Elem()
)

// Builder renders one value field by field. The first failing append makes
// every later call a no-op and is returned by Build.
// A Builder is not safe for concurrent use.
type Builder struct {
	opts  apis.Options
	style style.Style
	cfg   style.Config
	guard *cycle.Guard
	buf   bytes.Buffer

	obj   reflect.Value
	key   cycle.Key
	keyed bool
	done  bool
	err   error
}

// NewBuilder starts rendering obj with st (style.Default when nil). The
// caller appends fields and calls Build.
func NewBuilder(obj any, st style.Style, opts ...config.Option) *Builder {
	b := newBuilder(st, config.Complete(config.NewOptions(opts...)))
	b.begin(reflect.ValueOf(obj))
	return b
}

func newBuilder(st style.Style, o apis.Options) *Builder {
	if st == nil {
		st = style.Default
	}
	return &Builder{opts: o, style: st, cfg: st.Config(), guard: cycle.New(o.MaxDepth)}
}

// Reflect renders v with st, reading every enumerated field. Values that are
// not structs render bare: Reflect(42, ...) is "42".
func Reflect(v any, st style.Style, opts apis.Options) (string, error) {
	b := newBuilder(st, config.Complete(opts))
	rv := reflect.ValueOf(v)
	sv := uref.Settle(uref.Indirect(rv))
	if !sv.IsValid() || sv.Kind() != reflect.Struct || b.leaf(sv.Type()) {
		b.value(uref.Settle(rv), b.cfg.DefaultFullDetail)
		b.done = true
		return b.Build()
	}
	b.begin(rv)
	b.fields(sv)
	return b.Build()
}

func (b *Builder) begin(v reflect.Value) {
	b.obj = v
	sv := uref.Indirect(v)
	if !sv.IsValid() {
		return
	}
	if b.key, b.keyed = cycle.KeyOf(v); b.keyed {
		b.guard.TryEnter(b.key)
	}
	b.style.AppendStart(&b.buf, b.typeName(sv), b.identity(v))
}

// Append renders a named value in the style's default mode.
func (b *Builder) Append(name string, v any) *Builder {
	return b.append(name, reflect.ValueOf(v), style.Detail(b.style, nil))
}

// AppendDetail renders a named value in detail or in summary.
func (b *Builder) AppendDetail(name string, v any, detail bool) *Builder {
	return b.append(name, reflect.ValueOf(v), detail)
}

// AppendSummary renders a named value in summary.
func (b *Builder) AppendSummary(name string, v any) *Builder {
	return b.append(name, reflect.ValueOf(v), false)
}

// AppendSuper splices the rendering of an embedded type's own String method.
func (b *Builder) AppendSuper(text string) *Builder {
	return b.AppendToString(text)
}

// AppendToString splices the content of text, rendered with the same style,
// without its type prefix and outer delimiters.
func (b *Builder) AppendToString(text string) *Builder {
	if b.err == nil && !b.done && text != "" {
		b.style.AppendToString(&b.buf, text)
	}
	return b
}

// Build ends the rendering and returns the text.
func (b *Builder) Build() (string, error) {
	if b.err != nil {
		return "", b.err
	}
	if !b.done {
		b.done = true
		if uref.Indirect(b.obj).IsValid() {
			b.style.AppendEnd(&b.buf)
		} else {
			b.style.AppendNull(&b.buf)
		}
		if b.keyed {
			b.guard.Leave(b.key)
		}
	}
	return b.buf.String(), nil
}

func (b *Builder) append(name string, v reflect.Value, detail bool) *Builder {
	if b.err != nil || b.done {
		return b
	}
	b.field(name, uref.Settle(v), detail)
	return b
}

func (b *Builder) fields(sv reflect.Value) {
	def := style.Detail(b.style, nil)
	for _, f := range fields.Enumerate(sv.Type(), b.opts, b.opts.FieldOrderOr(apis.ByName)) {
		b.field(f.Name, f.Read(sv), def && !f.Summary)
		if b.err != nil {
			return
		}
	}
}

func (b *Builder) field(name string, v reflect.Value, detail bool) {
	if err := b.style.CheckField(name, detail); err != nil {
		b.err = err
		return
	}
	b.style.AppendFieldStart(&b.buf, name)
	b.value(v, detail)
	b.style.AppendFieldEnd(&b.buf)
}

// value renders any value without field decoration.
func (b *Builder) value(v reflect.Value, detail bool) {
	if !v.IsValid() {
		b.style.AppendNull(&b.buf)
		return
	}
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		if v.IsNil() {
			b.style.AppendNull(&b.buf)
			return
		}
	}
	if v.Kind() == reflect.Interface {
		b.value(uref.Settle(v.Elem()), detail)
		return
	}
	if b.leaf(v.Type()) {
		b.text(v)
		return
	}

	switch v.Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128, reflect.String:
		b.scalar(v)
	case reflect.Array, reflect.Slice:
		b.array(v, detail)
	case reflect.Map:
		b.mapping(v, detail)
	case reflect.Ptr:
		if b.leaf(uref.Elem(v.Type())) {
			b.text(uref.Indirect(v))
			return
		}
		if uref.Elem(v.Type()).Kind() != reflect.Struct {
			b.value(uref.Settle(v.Elem()), detail)
			return
		}
		b.object(v, detail)
	case reflect.Struct:
		b.object(v, detail)
	default:
		b.style.AppendText(&b.buf, fmt.Sprint(v.Interface()))
	}
}

func (b *Builder) scalar(v reflect.Value) {
	if s, ok := stringer(v); ok && v.Type().PkgPath() != "" {
		b.style.AppendText(&b.buf, s)
		return
	}
	switch v.Kind() {
	case reflect.Bool:
		b.style.AppendValue(&b.buf, strconv.FormatBool(v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		b.style.AppendValue(&b.buf, strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		b.style.AppendValue(&b.buf, strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32:
		b.style.AppendValue(&b.buf, strconv.FormatFloat(v.Float(), 'g', -1, 32))
	case reflect.Float64:
		b.style.AppendValue(&b.buf, strconv.FormatFloat(v.Float(), 'g', -1, 64))
	case reflect.Complex64:
		b.style.AppendText(&b.buf, strconv.FormatComplex(v.Complex(), 'g', -1, 64))
	case reflect.Complex128:
		b.style.AppendText(&b.buf, strconv.FormatComplex(v.Complex(), 'g', -1, 128))
	case reflect.String:
		b.style.AppendString(&b.buf, v.String())
	}
}

// text renders a leaf through its String method, or its default format.
func (b *Builder) text(v reflect.Value) {
	if s, ok := stringer(v); ok {
		b.style.AppendText(&b.buf, s)
		return
	}
	if v.Kind() == reflect.String {
		b.style.AppendString(&b.buf, v.String())
		return
	}
	b.style.AppendText(&b.buf, fmt.Sprint(v.Interface()))
}

func (b *Builder) summarize(n int, detail bool) bool {
	return !detail || (b.cfg.SummaryThreshold > 0 && n > b.cfg.SummaryThreshold)
}

func (b *Builder) array(v reflect.Value, detail bool) {
	if b.summarize(v.Len(), detail) {
		b.style.AppendSummarySize(&b.buf, v.Len())
		return
	}
	if v.Kind() == reflect.Slice {
		k, _ := cycle.KeyOf(v)
		if !b.enter(k, v) {
			return
		}
		defer b.guard.Leave(k)
	}
	b.buf.WriteString(b.cfg.ArrayStart)
	for i := 0; i < v.Len(); i++ {
		if i > 0 {
			b.buf.WriteString(b.cfg.ArraySeparator)
		}
		b.value(uref.Readable(v.Index(i)), b.cfg.ArrayContentDetail)
	}
	b.buf.WriteString(b.cfg.ArrayEnd)
}

func (b *Builder) mapping(v reflect.Value, detail bool) {
	if b.summarize(v.Len(), detail) {
		b.style.AppendSummarySize(&b.buf, v.Len())
		return
	}
	k, _ := cycle.KeyOf(v)
	if !b.enter(k, v) {
		return
	}
	defer b.guard.Leave(k)

	b.buf.WriteString(b.cfg.MapStart)
	for i, key := range b.sortedKeys(v) {
		if i > 0 {
			b.buf.WriteString(b.cfg.MapSeparator)
		}
		b.style.AppendMapKey(&b.buf, keyText(key))
		b.value(uref.Settle(v.MapIndex(key)), b.cfg.ArrayContentDetail)
	}
	b.buf.WriteString(b.cfg.MapEnd)
}

// object renders a struct or a pointer to one.
func (b *Builder) object(v reflect.Value, detail bool) {
	sv := uref.Indirect(v)
	if s, ok := stringer(v); ok {
		b.style.AppendText(&b.buf, s)
		return
	}
	if !detail {
		b.style.AppendSummaryObject(&b.buf, b.shortName(sv))
		return
	}

	if k, ok := cycle.KeyOf(v); ok {
		if !b.enter(k, v) {
			return
		}
		defer b.guard.Leave(k)
	} else {
		if !b.guard.Descend() {
			b.log("format: depth budget spent, rendering summary", sv.Type())
			b.style.AppendSummaryObject(&b.buf, b.shortName(sv))
			return
		}
		defer b.guard.Ascend()
	}

	b.style.AppendStart(&b.buf, b.typeName(sv), b.identity(v))
	b.fields(sv)
	b.style.AppendEnd(&b.buf)
}

// enter registers a reference. On a repeat, or when the depth budget is
// spent, it writes the cyclic placeholder and reports false.
func (b *Builder) enter(k cycle.Key, v reflect.Value) bool {
	if b.guard.TryEnter(k) {
		return true
	}
	b.log("format: reference already being rendered or depth budget spent", v.Type())
	b.style.AppendCyclic(&b.buf, b.opts.Resolver.ResolveType(v.Type(), apis.NameConfig{}), b.identity(v))
	return false
}

func (b *Builder) sortedKeys(m reflect.Value) []reflect.Value {
	keys, err := order.SortKeys(m, b.opts)
	if err == nil {
		return keys
	}
	keys = m.MapKeys()
	sort.SliceStable(keys, func(i, j int) bool { return keyText(keys[i]) < keyText(keys[j]) })
	return keys
}

func keyText(k reflect.Value) string {
	k = uref.Settle(k)
	if k.Kind() == reflect.String {
		return k.String()
	}
	return fmt.Sprint(k.Interface())
}

func (b *Builder) typeName(sv reflect.Value) string {
	return b.opts.Resolver.Resolve(sv, apis.NameConfig{Short: b.cfg.UseShortTypeName})
}

func (b *Builder) shortName(sv reflect.Value) string {
	return b.opts.Resolver.Resolve(sv, apis.NameConfig{Short: true})
}

// identity returns the entity id of v, or the address of a reference.
func (b *Builder) identity(v reflect.Value) string {
	if v.IsValid() && v.Type().Implements(identifierType) && v.CanInterface() {
		return v.Interface().(apis.Identifier).EntityID()
	}
	if k, ok := cycle.KeyOf(v); ok {
		return strconv.FormatUint(uint64(k.Addr), 16)
	}
	return ""
}

func (b *Builder) leaf(t reflect.Type) bool {
	return t.Kind() != reflect.Ptr && b.opts.Registry != nil && b.opts.Registry.IsLeaf(t)
}

func (b *Builder) log(msg string, t reflect.Type) {
	logger.Get().WithFields(logrus.Fields{
		"type":  t.String(),
		"depth": b.guard.Depth(),
	}).Debug(msg)
}

// stringer returns the text of v's String method, including one declared on
// the pointer of an addressable value.
func stringer(v reflect.Value) (string, bool) {
	if !v.CanInterface() {
		return "", false
	}
	if v.Type().Implements(stringerType) {
		return v.Interface().(fmt.Stringer).String(), true
	}
	if v.Kind() != reflect.Ptr && v.CanAddr() && reflect.PointerTo(v.Type()).Implements(stringerType) {
		return v.Addr().Interface().(fmt.Stringer).String(), true
	}
	return "", false
}
