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

package structx

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"dirpx.dev/structx/apis"
	"dirpx.dev/structx/builder"
	"dirpx.dev/structx/config"
	"dirpx.dev/structx/equal"
	"dirpx.dev/structx/format"
	"dirpx.dev/structx/internal/logger"
	"dirpx.dev/structx/order"
	"dirpx.dev/structx/style"
	uref "dirpx.dev/structx/utils/reflect"
)

// init publishes the default snapshot.
func init() {
	b := builder.New()
	s := &state{opts: config.DefaultOptions(), style: style.Default, bld: b}
	s.reg = b.BuildRegistry(nil)
	s.res = b.BuildResolver(s.reg)
	st.Store(s)
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("structx: builder returned nil registry")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("structx: builder returned nil resolver")

	// ErrIncomparableTypes is returned by Compare for unrelated types.
	ErrIncomparableTypes = order.ErrIncomparableTypes
	// ErrUnorderable is returned by Compare for values with no order.
	ErrUnorderable = order.ErrUnorderable
	// ErrInvalidStyleUsage is returned by Render when the style rejects a field.
	ErrInvalidStyleUsage = style.ErrInvalidStyleUsage
	// ErrUnreadableField is the panic value raised when a field can neither
	// be addressed nor interfaced.
	ErrUnreadableField = uref.ErrUnreadableField
)

// Equal reports whether a and b are structurally equal under the global
// options. Floats compare by bit pattern: NaN equals NaN, +0 differs from -0.
func Equal(a, b any) bool {
	return equal.Reflect(a, b, st.Load().options())
}

// Compare orders a and b under the global options and returns -1, 0 or +1.
// NaN sorts above every float and -0 below +0.
func Compare(a, b any) (int, error) {
	return order.Reflect(a, b, st.Load().options())
}

// Render formats v with the global default style.
func Render(v any) (string, error) {
	s := st.Load()
	return format.Reflect(v, s.style, s.options())
}

// RenderWith formats v with sty.
func RenderWith(v any, sty style.Style) (string, error) {
	return format.Reflect(v, sty, st.Load().options())
}

// TypeName returns the display name of v's type.
func TypeName(v any) string {
	s := st.Load()
	return s.res.Resolve(reflect.ValueOf(v), apis.NameConfig{})
}

// RegisterType adds an entry to the global registry.
func RegisterType(e apis.Entry) error {
	return st.Load().reg.Register(e)
}

// SetLogger replaces the logger used by every engine. Nil is ignored.
func SetLogger(l logrus.FieldLogger) {
	logger.Set(l)
}

// SetAll replaces every global component in one step. Nil arguments leave
// the corresponding component unchanged; a nil registry or resolver is
// rebuilt by the (possibly new) builder and unpinned.
func SetAll(opts *apis.Options, sty style.Style, reg apis.Registry, res apis.Resolver, bld apis.Builder) {
	publish(func(old, next *state) {
		if opts != nil {
			next.opts = *opts
		}
		if sty != nil {
			next.style = sty
		}
		if bld != nil {
			next.bld = bld
		}
		next.reg, next.preg = reg, reg != nil
		if reg == nil {
			next.reg = next.bld.BuildRegistry(old.reg)
		}
		next.res, next.pres = res, res != nil
		if res == nil {
			next.res = next.bld.BuildResolver(next.reg)
		}
	})
}

// Options returns the global traversal options.
func Options() apis.Options {
	return st.Load().opts
}

// SetOptions replaces the global traversal options with the defaults
// adjusted by opts.
func SetOptions(opts ...config.Option) {
	o := config.NewOptions(opts...)
	publish(func(_, next *state) {
		next.opts = o
	})
}

// DefaultStyle returns the style used by Render.
func DefaultStyle() style.Style {
	return st.Load().style
}

// SetDefaultStyle sets the style used by Render. Nil is ignored.
func SetDefaultStyle(sty style.Style) {
	if sty == nil {
		return
	}
	publish(func(_, next *state) {
		next.style = sty
	})
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry sets and pins the global registry. An unpinned resolver is
// rebuilt over it.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}
	publish(func(_, next *state) {
		next.reg, next.preg = reg, true
		if !next.pres {
			next.res = next.bld.BuildResolver(reg)
		}
	})
}

// Resolver returns the global resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver sets and pins the global resolver.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}
	publish(func(_, next *state) {
		next.res, next.pres = res, true
	})
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global builder and rebuilds the unpinned layers.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	publish(func(old, next *state) {
		next.bld = b
		if !next.preg {
			next.reg = b.BuildRegistry(old.reg)
		}
		if !next.pres {
			next.res = b.BuildResolver(next.reg)
		}
	})
}

// IsRegistryPinned reports whether the registry is pinned.
func IsRegistryPinned() bool { return st.Load().preg }

// IsResolverPinned reports whether the resolver is pinned.
func IsResolverPinned() bool { return st.Load().pres }

// PinRegistry stops SetBuilder from rebuilding the registry.
func PinRegistry() { publish(func(_, next *state) { next.preg = true }) }

// UnpinRegistry lets SetBuilder rebuild the registry again.
func UnpinRegistry() { publish(func(_, next *state) { next.preg = false }) }

// PinResolver stops SetBuilder and SetRegistry from rebuilding the resolver.
func PinResolver() { publish(func(_, next *state) { next.pres = true }) }

// UnpinResolver lets the resolver be rebuilt again.
func UnpinResolver() { publish(func(_, next *state) { next.pres = false }) }

// publish copies the current snapshot, lets mut adjust the copy and stores
// it. Writers are serialised so a snapshot is never published half built.
func publish(mut func(old, next *state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	mut(old, &next)

	if next.reg == nil {
		panic(ErrNilRegistry)
	}
	if next.res == nil {
		panic(ErrNilResolver)
	}
	st.Store(&next)
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global snapshot.
var st atomic.Pointer[state]

// state is the global snapshot. Never mutate fields of a published state;
// writers create a new state and swap it atomically.
type state struct {
	// opts are the global traversal options.
	opts apis.Options
	// style is the default style of Render.
	style style.Style
	// reg is the global registry.
	reg apis.Registry
	// res is the global resolver.
	res apis.Resolver
	// bld is the global builder.
	bld apis.Builder
	// preg indicates whether the reg is pinned.
	preg bool
	// pres indicates whether the res is pinned.
	pres bool
}

// options returns the traversal options with the snapshot's registry and
// resolver.
func (s *state) options() apis.Options {
	o := s.opts
	o.Registry = s.reg
	o.Resolver = s.res
	return o
}
