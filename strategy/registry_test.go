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

package strategy_test

import (
	"reflect"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/structx/apis"
	"dirpx.dev/structx/registry"
	"dirpx.dev/structx/strategy"
)

// Local test types.
type A struct{}
type B struct{}

func TestRegistryStrategy_WithRealRegistry(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register(apis.Entry{Type: reflect.TypeOf(A{}), Name: "domain.A"}))
	require.NoError(t, reg.Register(apis.Entry{Type: reflect.TypeOf(B{}), Leaf: true}))

	s := strategy.NewRegistryStrategy(reg)
	conf := apis.NameConfig{}

	cases := []struct {
		name string
		val  any
		want string
		ok   bool
	}{
		{"plain", A{}, "domain.A", true},
		{"ptr", &A{}, "domain.A", true},
		{"leaf without name falls through", B{}, "", false},
		{"unknown", 1, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := s.TryResolve(reflect.ValueOf(tc.val), conf)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}

	got, ok := s.TryResolveType(reflect.TypeOf((*A)(nil)), conf)
	assert.True(t, ok)
	assert.Equal(t, "domain.A", got)

	_, ok = strategy.NewRegistryStrategy(nil).TryResolveType(reflect.TypeOf(A{}), conf)
	assert.False(t, ok)
}

// A small concurrency smoke test to ensure RegistryStrategy + real registry behave well.
func TestRegistryStrategy_WithRealRegistry_Concurrent(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register(apis.Entry{Type: reflect.TypeOf(A{}), Name: "domain.A"}))

	s := strategy.NewRegistryStrategy(reg)
	types := []reflect.Type{reflect.TypeOf(A{}), reflect.TypeOf(&A{})}

	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				got, ok := s.TryResolveType(types[i%len(types)], apis.NameConfig{})
				if !ok || got != "domain.A" {
					t.Errorf("concurrent mismatch: got=%q", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}
