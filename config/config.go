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

package config

import (
	"reflect"
	"sort"
	"sync"

	"dirpx.dev/structx/apis"
	"dirpx.dev/structx/builder"
)

const (
	// DefaultIncludeAncestors represents the default for IncludeAncestors.
	// When true, embedded structs are walked after the type's own fields.
	DefaultIncludeAncestors = true
	// DefaultIncludeTransient represents the default for IncludeTransient.
	DefaultIncludeTransient = false
	// DefaultRecursive represents the default for Recursive.
	// When false, nested values are compared by their own equality.
	DefaultRecursive = false
	// DefaultMaxDepth represents the default for MaxDepth (unlimited).
	DefaultMaxDepth = 0
)

// NewOptions constructs an apis.Options from the defaults and the given options.
func NewOptions(opts ...Option) apis.Options {
	return Apply(DefaultOptions(), opts...)
}

// Apply applies opts on top of base.
func Apply(base apis.Options, opts ...Option) apis.Options {
	base.Excluded = append([]string(nil), base.Excluded...)
	for _, opt := range opts {
		if opt != nil {
			opt(&base)
		}
	}
	base.Excluded = normalizeNames(base.Excluded)
	if base.MaxDepth < 0 {
		base.MaxDepth = DefaultMaxDepth
	}
	return base
}

// DefaultOptions is the default configuration used when none is provided.
func DefaultOptions() apis.Options {
	return apis.Options{
		IncludeAncestors: DefaultIncludeAncestors,
		IncludeTransient: DefaultIncludeTransient,
		Recursive:        DefaultRecursive,
		MaxDepth:         DefaultMaxDepth,
	}
}

// Complete fills the registry and resolver when they are unset.
func Complete(o apis.Options) apis.Options {
	if o.Registry == nil {
		o.Registry = defaults().reg
		if o.Resolver == nil {
			o.Resolver = defaults().res
		}
	}
	if o.Resolver == nil {
		o.Resolver = builder.New().BuildResolver(o.Registry)
	}
	return o
}

type defaultSet struct {
	reg apis.Registry
	res apis.Resolver
}

var defaults = sync.OnceValue(func() defaultSet {
	b := builder.New()
	reg := b.BuildRegistry(nil)
	return defaultSet{reg: reg, res: b.BuildResolver(reg)}
})

// Option is a functional option that mutates an apis.Options during construction.
type Option func(*apis.Options)

// WithAncestors sets the IncludeAncestors option.
func WithAncestors(include bool) Option {
	return func(o *apis.Options) {
		o.IncludeAncestors = include
	}
}

// WithStopAt sets the last ancestor type to traverse. Nil walks to the root.
func WithStopAt(t reflect.Type) Option {
	return func(o *apis.Options) {
		o.StopAt = t
	}
}

// WithExcluded adds field names to skip.
func WithExcluded(names ...string) Option {
	return func(o *apis.Options) {
		o.Excluded = append(o.Excluded, names...)
	}
}

// WithExclude sets the caller exclusion predicate.
func WithExclude(fn func(apis.Field) bool) Option {
	return func(o *apis.Options) {
		o.Exclude = fn
	}
}

// WithTransient sets the IncludeTransient option.
func WithTransient(include bool) Option {
	return func(o *apis.Options) {
		o.IncludeTransient = include
	}
}

// WithRecursive sets the Recursive option.
func WithRecursive(recursive bool) Option {
	return func(o *apis.Options) {
		o.Recursive = recursive
	}
}

// WithMaxDepth sets the MaxDepth option.
// A negative value resets to the default.
func WithMaxDepth(max int) Option {
	return func(o *apis.Options) {
		if max < 0 {
			o.MaxDepth = DefaultMaxDepth
			return
		}
		o.MaxDepth = max
	}
}

// WithOrder forces a field order for every engine.
func WithOrder(order apis.FieldOrder) Option {
	return func(o *apis.Options) {
		o.Order = &order
	}
}

// WithRegistry sets the type registry.
func WithRegistry(reg apis.Registry) Option {
	return func(o *apis.Options) {
		o.Registry = reg
	}
}

// WithResolver sets the type-name resolver.
func WithResolver(res apis.Resolver) Option {
	return func(o *apis.Options) {
		o.Resolver = res
	}
}

// normalizeNames sorts and de-duplicates names so that equal sets produce
// equal option values.
func normalizeNames(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)
	out := names[:0]
	for i, n := range names {
		if n == "" || (i > 0 && n == names[i-1]) {
			continue
		}
		out = append(out, n)
	}
	return out
}
