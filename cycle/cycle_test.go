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

package cycle_test

import (
	"reflect"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/structx/cycle"
)

type node struct {
	next *node
}

func TestKeyOf(t *testing.T) {
	n := &node{}
	k1, ok := cycle.KeyOf(reflect.ValueOf(n))
	require.True(t, ok)
	k2, ok := cycle.KeyOf(reflect.ValueOf(any(n)))
	require.True(t, ok)
	assert.Equal(t, k1, k2)

	s := []int{1, 2, 3}
	ks, ok := cycle.KeyOf(reflect.ValueOf(s))
	require.True(t, ok)
	kSub, ok := cycle.KeyOf(reflect.ValueOf(s[:2]))
	require.True(t, ok)
	assert.NotEqual(t, ks, kSub)

	m := map[string]int{}
	_, ok = cycle.KeyOf(reflect.ValueOf(m))
	assert.True(t, ok)

	cases := []any{1, "s", node{}, (*node)(nil), []int(nil), map[int]int(nil), nil}
	for _, c := range cases {
		_, ok := cycle.KeyOf(reflect.ValueOf(c))
		assert.False(t, ok, "%#v", c)
	}
}

func TestGuard_EnterLeave(t *testing.T) {
	g := cycle.New(0)
	k, _ := cycle.KeyOf(reflect.ValueOf(&node{}))

	require.True(t, g.TryEnter(k))
	assert.False(t, g.TryEnter(k))
	assert.True(t, g.Contains(k))
	assert.Equal(t, 1, g.Len())
	assert.Equal(t, 1, g.Depth())

	g.Leave(k)
	assert.Equal(t, 0, g.Len())
	assert.Equal(t, 0, g.Depth())
	assert.True(t, g.TryEnter(k))

	// leaving an unknown key is a no-op
	g.Leave(cycle.Key{})
	assert.Equal(t, 1, g.Depth())
}

func TestGuard_MaxDepth(t *testing.T) {
	g := cycle.New(2)
	a, _ := cycle.KeyOf(reflect.ValueOf(&node{}))
	b, _ := cycle.KeyOf(reflect.ValueOf(&node{}))
	c, _ := cycle.KeyOf(reflect.ValueOf(&node{}))

	require.True(t, g.TryEnter(a))
	require.True(t, g.TryEnter(b))
	assert.True(t, g.Exhausted())
	assert.False(t, g.TryEnter(c))
	assert.False(t, g.Contains(c))

	g.Leave(b)
	assert.True(t, g.TryEnter(c))
}

func TestPairs_Symmetric(t *testing.T) {
	p := cycle.NewPairs(0)
	a, _ := cycle.KeyOf(reflect.ValueOf(&node{}))
	b, _ := cycle.KeyOf(reflect.ValueOf(&node{}))

	require.True(t, p.TryEnter(a, b))
	assert.False(t, p.TryEnter(a, b))
	assert.False(t, p.TryEnter(b, a))
	assert.True(t, p.TryEnter(a, a))
	assert.Equal(t, 2, p.Len())

	p.Leave(a, a)
	p.Leave(a, b)
	assert.Equal(t, 0, p.Len())
	assert.Equal(t, 0, p.Depth())
}

func TestPairs_DescendBudget(t *testing.T) {
	p := cycle.NewPairs(1)
	require.True(t, p.Descend())
	assert.False(t, p.Descend())
	p.Ascend()
	p.Ascend()
	assert.Equal(t, 0, p.Depth())
}

// Guards are per call; independent goroutines never observe each other.
func TestGuard_PerCallIsolation(t *testing.T) {
	shared := &node{}
	k, _ := cycle.KeyOf(reflect.ValueOf(shared))

	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				g := cycle.New(0)
				if !g.TryEnter(k) {
					t.Error("fresh guard rejected key")
					return
				}
				g.Leave(k)
			}
		}()
	}
	wg.Wait()
}
