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

package equal_test

import (
	"math"
	"net/netip"
	"reflect"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"dirpx.dev/structx/apis"
	"dirpx.dev/structx/config"
	"dirpx.dev/structx/equal"
	"dirpx.dev/structx/registry"
)

type Base struct {
	B int
}

type Derived struct {
	Base
	D string
}

type Node struct {
	Name string
	Next *Node
}

type point struct {
	x, y float64
	tags []string
	meta map[string]int
}

type stamp struct {
	At time.Time
}

// caseless compares by length only, to show that its own equality is used.
type caseless struct {
	s string
}

func (c caseless) Equal(o caseless) bool { return len(c.s) == len(o.s) }

type holder struct {
	C caseless
	P *caseless
}

func reflectEq(a, b any, opts ...config.Option) bool {
	return equal.Reflect(a, b, config.NewOptions(opts...))
}

func TestReflect_Floats(t *testing.T) {
	nan := math.NaN()
	negZero := math.Copysign(0, -1)

	assert.True(t, reflectEq(nan, nan), "NaN is reflexive under bit-pattern equality")
	assert.True(t, reflectEq(nan, -math.NaN()), "every NaN has the same canonical pattern")
	assert.False(t, reflectEq(0.0, negZero), "+0 and -0 differ")
	assert.True(t, reflectEq(float32(nan), float32(nan)))
	assert.False(t, reflectEq(float32(0), float32(negZero)))
	assert.True(t, reflectEq(complex(nan, 1), complex(nan, 1)))

	assert.True(t, reflectEq(point{x: nan}, point{x: nan}))
	assert.False(t, reflectEq(point{x: negZero}, point{}))
}

func TestReflect_Nulls(t *testing.T) {
	assert.True(t, reflectEq(nil, nil))
	assert.False(t, reflectEq(nil, &Node{}))
	assert.False(t, reflectEq(&Node{}, nil))
	assert.True(t, reflectEq((*Node)(nil), nil))
}

func TestReflect_Arrays(t *testing.T) {
	assert.False(t, reflectEq([]int{1, 2}, []int{1, 2, 3}))
	assert.True(t, reflectEq([]int{1, 2, 3}, []int{1, 2, 3}))
	assert.True(t, reflectEq([2]float64{math.NaN(), 1}, [2]float64{math.NaN(), 1}))
	assert.False(t, reflectEq([]int(nil), []int{}))
	assert.True(t, reflectEq([][]int{{1}, {2, 3}}, [][]int{{1}, {2, 3}}))
	assert.False(t, reflectEq([]any{1, "a"}, []any{1, "b"}))
	assert.False(t, reflectEq([]any{1}, []any{int64(1)}))
}

func TestReflect_UnexportedFields(t *testing.T) {
	a := point{x: 1, y: 2, tags: []string{"a"}, meta: map[string]int{"k": 1}}
	b := point{x: 1, y: 2, tags: []string{"a"}, meta: map[string]int{"k": 1}}
	assert.True(t, reflectEq(a, b))
	assert.True(t, reflectEq(&a, &b))

	b.tags[0] = "z"
	assert.False(t, reflectEq(a, b))
}

func TestReflect_AncestorWalk(t *testing.T) {
	a := Derived{Base: Base{B: 1}, D: "x"}
	b := Derived{Base: Base{B: 2}, D: "x"}

	assert.False(t, reflectEq(a, b), "ancestor field is compared")
	assert.True(t, reflectEq(a, b, config.WithStopAt(reflect.TypeOf(Derived{}))), "stop at the derived type")

	b.D = "y"
	assert.False(t, reflectEq(a, b, config.WithStopAt(reflect.TypeOf(Derived{}))))
}

func TestReflect_CommonType(t *testing.T) {
	d := &Derived{Base: Base{B: 7}, D: "x"}
	assert.True(t, reflectEq(d, Base{B: 7}))
	assert.True(t, reflectEq(Base{B: 7}, d))
	assert.False(t, reflectEq(d, Base{B: 8}))
	assert.False(t, reflectEq(Base{}, Node{}), "unrelated types")
}

func TestReflect_Cycles(t *testing.T) {
	a := &Node{Name: "a"}
	a.Next = a
	b := &Node{Name: "a"}
	b.Next = b

	assert.True(t, reflectEq(a, a))
	assert.True(t, reflectEq(a, b))
	assert.True(t, reflectEq(a, b, config.WithRecursive(true)))

	c := &Node{Name: "c"}
	c.Next = c
	assert.False(t, reflectEq(a, c, config.WithRecursive(true)))

	// two-node ring against a one-node ring with the same names
	r1, r2 := &Node{Name: "a"}, &Node{Name: "a"}
	r1.Next, r2.Next = r2, r1
	assert.True(t, reflectEq(r1, a, config.WithRecursive(true)))
}

func TestReflect_SelfReferentialSlice(t *testing.T) {
	s := make([]any, 1)
	s[0] = s
	assert.True(t, reflectEq(s, s))

	u := make([]any, 1)
	u[0] = u
	assert.True(t, reflectEq(s, u))
}

func TestReflect_OwnEqualityAndRecursiveMode(t *testing.T) {
	a := holder{C: caseless{"ab"}, P: &caseless{"ab"}}
	b := holder{C: caseless{"cd"}, P: &caseless{"cd"}}

	// non-recursive: caseless.Equal decides for the value field, the
	// pointer field falls back to reflect.DeepEqual
	assert.False(t, reflectEq(a, b))
	b.P = &caseless{"ab"}
	assert.True(t, reflectEq(a, b))

	// recursive: traversed field by field
	assert.False(t, reflectEq(a, b, config.WithRecursive(true)))
}

type reading struct {
	V float64
}

type sensor struct {
	Name string
	Last reading
}

func TestReflect_NestedStructFloats(t *testing.T) {
	nan := sensor{Name: "a", Last: reading{V: math.NaN()}}
	assert.True(t, reflectEq(nan, nan), "NaN nested in a struct value is reflexive")

	pos := sensor{Last: reading{V: 0}}
	neg := sensor{Last: reading{V: math.Copysign(0, -1)}}
	assert.False(t, reflectEq(pos, neg), "+0 and -0 nested in a struct value differ")

	// embedded struct as an ordinary field when ancestors are off
	type wrapped struct {
		reading
	}
	w := wrapped{reading{V: math.NaN()}}
	assert.True(t, reflectEq(w, w, config.WithAncestors(false)))
	assert.False(t, reflectEq(wrapped{reading{V: 0}}, wrapped{reading{V: math.Copysign(0, -1)}},
		config.WithAncestors(false)))
}

func TestReflect_LeafTypes(t *testing.T) {
	now := time.Now()
	utc := now.UTC()
	assert.True(t, reflectEq(stamp{At: now}, stamp{At: utc}), "time.Time uses its own Equal")
	assert.True(t, reflectEq(&now, &utc))

	assert.True(t, reflectEq(netip.MustParseAddr("10.0.0.1"), netip.MustParseAddr("10.0.0.1")))

	// a custom leaf stops traversal: Equal decides
	reg := registry.Default()
	assert.NoError(t, reg.Register(apis.Entry{Type: reflect.TypeOf(caseless{}), Leaf: true}))
	assert.True(t, reflectEq(
		holder{C: caseless{"ab"}, P: &caseless{"ab"}},
		holder{C: caseless{"xy"}, P: &caseless{"zz"}},
		config.WithRecursive(true), config.WithRegistry(reg),
	))
}

func TestReflect_Maps(t *testing.T) {
	type bag struct {
		M map[string][]float64
	}
	a := bag{M: map[string][]float64{"x": {math.NaN()}}}
	b := bag{M: map[string][]float64{"x": {math.NaN()}}}

	assert.False(t, reflectEq(a, b), "reflect.DeepEqual treats NaN as unequal")
	assert.True(t, reflectEq(a, b, config.WithRecursive(true)))

	b.M["y"] = nil
	assert.False(t, reflectEq(a, b, config.WithRecursive(true)))
}

func TestReflect_MaxDepth(t *testing.T) {
	mk := func(names ...string) *Node {
		var head *Node
		for i := len(names) - 1; i >= 0; i-- {
			head = &Node{Name: names[i], Next: head}
		}
		return head
	}
	a, b := mk("a", "b", "c"), mk("a", "b", "z")

	assert.False(t, reflectEq(a, b, config.WithRecursive(true)))
	assert.True(t, reflectEq(a, b, config.WithRecursive(true), config.WithMaxDepth(2)),
		"nodes past the budget contribute no signal")
}

func TestBuilder(t *testing.T) {
	b := equal.NewBuilder()
	assert.True(t, b.Append(1, 1).AppendFloat64(math.NaN(), math.NaN()).AppendFloat32(1, 1).IsEqual())
	assert.False(t, b.AppendSuper(false).IsEqual())
	assert.False(t, b.Append("a", "a").IsEqual(), "verdict is sticky")

	b.Reset()
	assert.True(t, b.IsEqual())
	assert.False(t, b.AppendFloat64(0, math.Copysign(0, -1)).IsEqual())

	b.Reset()
	assert.True(t, b.Append([]string{"a"}, []string{"a"}).Append(nil, nil).IsEqual())
	assert.False(t, b.Append([]string{"a"}, []string(nil)).IsEqual())
}

func TestReflect_Concurrent(t *testing.T) {
	a := &Node{Name: "n"}
	a.Next = a
	b := &Node{Name: "n"}
	b.Next = b

	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				if !reflectEq(a, b, config.WithRecursive(true)) {
					t.Error("cyclic graphs reported unequal")
					return
				}
			}
		}()
	}
	wg.Wait()
}

func BenchmarkReflect(b *testing.B) {
	x := point{x: 1, y: 2, tags: []string{"a", "b"}}
	y := point{x: 1, y: 2, tags: []string{"a", "b"}}
	opts := config.NewOptions()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		equal.Reflect(x, y, opts)
	}
}
