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

package strategy

import (
	"reflect"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"dirpx.dev/structx/apis"
)

// Local test types.
type A struct{}
type G[T any] struct{}
type W[T any] struct{ V T }

// cfg returns a convenient baseline NameConfig for tests.
func cfg(opts ...func(*apis.NameConfig)) apis.NameConfig {
	c := apis.NameConfig{MaxUnwrap: 8}
	for _, o := range opts {
		o(&c)
	}
	return c
}

func short(c *apis.NameConfig) { c.Short = true }

func TestReflectStrategy_ByValue(t *testing.T) {
	s := NewReflectStrategy()

	cases := []struct {
		name     string
		val      any
		cfg      apis.NameConfig
		expected string
	}{
		{"plain struct", A{}, cfg(), "strategy.A"},
		{"ptr", &A{}, cfg(), "strategy.A"},
		{"short", &A{}, cfg(short), "A"},
		{"slice keeps spelling", []A{}, cfg(), "[]strategy.A"},
		{"map keeps spelling", map[string]int{}, cfg(), "map[string]int"},
		{"builtin", 42, cfg(), "int"},
		{"generic strips params", G[int]{}, cfg(), "strategy.G"},
		{"generic short", W[G[int]]{}, cfg(short), "W"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := s.TryResolve(reflect.ValueOf(tc.val), tc.cfg)
			assert.True(t, ok)
			assert.Equal(t, tc.expected, got)
		})
	}

	_, ok := s.TryResolve(reflect.Value{}, cfg())
	assert.False(t, ok)
}

func TestReflectStrategy_MaxUnwrap(t *testing.T) {
	s := NewReflectStrategy()
	tt := reflect.TypeOf((**A)(nil))

	t.Run("tight limit", func(t *testing.T) {
		got, ok := s.TryResolveType(tt, cfg(func(c *apis.NameConfig) { c.MaxUnwrap = 1 }))
		assert.True(t, ok)
		assert.Equal(t, "**strategy.A", got)
	})

	t.Run("wide limit", func(t *testing.T) {
		got, ok := s.TryResolveType(tt, cfg())
		assert.True(t, ok)
		assert.Equal(t, "strategy.A", got)
	})
}

// This test stresses the memoization path under concurrency.
func TestReflectStrategy_Concurrent(t *testing.T) {
	s := NewReflectStrategy()
	conf := cfg()

	types := []reflect.Type{
		reflect.TypeOf(A{}),
		reflect.TypeOf(&A{}),
		reflect.TypeOf([]A{}),
		reflect.TypeOf(G[int]{}),
		reflect.TypeOf(W[G[int]]{}),
		reflect.TypeOf(0),
	}
	expect := []string{"strategy.A", "strategy.A", "[]strategy.A", "strategy.G", "strategy.W", "int"}

	workers := runtime.GOMAXPROCS(0) * 4
	iters := 2000

	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan string, workers)

	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < iters; i++ {
				idx := i % len(types)
				got, ok := s.TryResolveType(types[idx], conf)
				if !ok || got != expect[idx] {
					errCh <- got
					return
				}
			}
		}()
	}

	wg.Wait()
	close(errCh)
	for e := range errCh {
		t.Fatalf("concurrent resolve mismatch: got=%q", e)
	}
}

func BenchmarkReflectStrategy_ByType(b *testing.B) {
	s := NewReflectStrategy()
	types := []reflect.Type{
		reflect.TypeOf(A{}),
		reflect.TypeOf(&A{}),
		reflect.TypeOf([]A{}),
		reflect.TypeOf(G[int]{}),
		reflect.TypeOf(0),
	}
	conf := cfg()
	for _, t0 := range types {
		s.TryResolveType(t0, conf)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.TryResolveType(types[i%len(types)], conf)
	}
}
