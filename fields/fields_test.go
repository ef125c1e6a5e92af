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

package fields_test

import (
	"reflect"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/structx/apis"
	"dirpx.dev/structx/config"
	"dirpx.dev/structx/fields"
)

type Root struct {
	Z int
}

type Base struct {
	Root
	B string
	A int
}

type Mixin struct {
	M bool
}

type Derived struct {
	Base
	*Mixin
	D     float64
	C     []int
	mu    sync.Mutex
	_     int
	fn    func()
	ch    chan int
	Cache map[string]int `structx:"cache,transient"`
	Skip  int            `structx:"-"`
	Blob  []byte         `structx:",summary"`
	Label string         `structx:"label"`
}

func names(fs []apis.Field) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Name
	}
	return out
}

func TestEnumerate_DeclarationWithAncestors(t *testing.T) {
	fs := fields.Enumerate(reflect.TypeOf(Derived{}), config.NewOptions(), apis.Declaration)

	assert.Equal(t, []string{"D", "C", "Blob", "label", "B", "A", "Z", "M"}, names(fs))
	for i, f := range fs {
		assert.Equal(t, i, f.Ordinal)
	}
	assert.Equal(t, 0, fs[0].Depth)
	assert.Equal(t, 1, fs[4].Depth)
	assert.Equal(t, 2, fs[6].Depth)
	assert.Equal(t, reflect.TypeOf(Root{}), fs[6].Owner)
	assert.True(t, fs[2].Summary)
	assert.Equal(t, "Label", fs[3].GoName)
}

func TestEnumerate_ByName(t *testing.T) {
	fs := fields.Enumerate(reflect.TypeOf(&Derived{}), config.NewOptions(), apis.ByName)
	// sorted within each type level, ancestors still after the owner
	assert.Equal(t, []string{"Blob", "C", "D", "label", "A", "B", "Z", "M"}, names(fs))
}

func TestEnumerate_WithoutAncestors(t *testing.T) {
	fs := fields.Enumerate(reflect.TypeOf(Derived{}), config.NewOptions(config.WithAncestors(false)), apis.Declaration)
	assert.Equal(t, []string{"Base", "Mixin", "D", "C", "Blob", "label"}, names(fs))
}

func TestEnumerate_StopAt(t *testing.T) {
	opts := config.NewOptions(config.WithStopAt(reflect.TypeOf(Base{})))
	fs := fields.Enumerate(reflect.TypeOf(Derived{}), opts, apis.Declaration)
	assert.Equal(t, []string{"D", "C", "Blob", "label", "B", "A", "M"}, names(fs))

	opts = config.NewOptions(config.WithStopAt(reflect.TypeOf(&Derived{})))
	fs = fields.Enumerate(reflect.TypeOf(Derived{}), opts, apis.Declaration)
	assert.Equal(t, []string{"D", "C", "Blob", "label"}, names(fs))
}

func TestEnumerate_Filters(t *testing.T) {
	opts := config.NewOptions(
		config.WithTransient(true),
		config.WithExcluded("label", "B"),
		config.WithExclude(func(f apis.Field) bool { return f.Name == "Z" }),
	)
	fs := fields.Enumerate(reflect.TypeOf(Derived{}), opts, apis.Declaration)
	assert.Equal(t, []string{"D", "C", "cache", "Blob", "A", "M"}, names(fs))
	assert.True(t, fs[2].Transient)
}

func TestEnumerate_NonStruct(t *testing.T) {
	assert.Nil(t, fields.Enumerate(reflect.TypeOf(1), config.NewOptions(), apis.Declaration))
	assert.Nil(t, fields.Enumerate(nil, config.NewOptions(), apis.Declaration))
}

type Loop struct {
	*Loop
	V int
}

func TestEnumerate_RecursiveEmbedding(t *testing.T) {
	fs := fields.Enumerate(reflect.TypeOf(Loop{}), config.NewOptions(), apis.Declaration)
	assert.Equal(t, []string{"V"}, names(fs))
}

func TestField_Read(t *testing.T) {
	d := Derived{Base: Base{Root: Root{Z: 9}, B: "b"}, D: 1.5}
	fs := fields.Enumerate(reflect.TypeOf(&d).Elem(), config.NewOptions(), apis.Declaration)

	byName := map[string]apis.Field{}
	for _, f := range fs {
		byName[f.Name] = f
	}
	v := reflect.ValueOf(&d)
	assert.Equal(t, 9, byName["Z"].Read(v).Interface())
	assert.Equal(t, "b", byName["B"].Read(v).Interface())
	// nil embedded pointer: no value
	assert.False(t, byName["M"].Read(v).IsValid())

	d.Mixin = &Mixin{M: true}
	assert.Equal(t, true, byName["M"].Read(reflect.ValueOf(d)).Interface())
}

func TestEnumerate_Deterministic_Concurrent(t *testing.T) {
	want := names(fields.Enumerate(reflect.TypeOf(Derived{}), config.NewOptions(), apis.ByName))

	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				got := names(fields.Enumerate(reflect.TypeOf(Derived{}), config.NewOptions(), apis.ByName))
				if !assert.ObjectsAreEqual(want, got) {
					t.Errorf("non-deterministic enumeration: %v", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestCommon(t *testing.T) {
	rel, path := fields.Common(reflect.TypeOf(Derived{}), reflect.TypeOf(&Derived{}))
	assert.Equal(t, fields.Same, rel)
	assert.Nil(t, path)

	rel, path = fields.Common(reflect.TypeOf(Derived{}), reflect.TypeOf(Root{}))
	assert.Equal(t, fields.LeftEmbeds, rel)
	assert.Equal(t, []int{0, 0}, path)

	rel, path = fields.Common(reflect.TypeOf(Mixin{}), reflect.TypeOf(&Derived{}))
	assert.Equal(t, fields.RightEmbeds, rel)
	assert.Equal(t, []int{1}, path)

	rel, _ = fields.Common(reflect.TypeOf(Root{}), reflect.TypeOf(Mixin{}))
	assert.Equal(t, fields.Unrelated, rel)
}

func TestProject(t *testing.T) {
	d := &Derived{Base: Base{Root: Root{Z: 4}}}
	_, path := fields.Common(reflect.TypeOf(d), reflect.TypeOf(Root{}))
	v := fields.Project(reflect.ValueOf(d), path)
	require.True(t, v.IsValid())
	assert.Equal(t, Root{Z: 4}, v.Interface())

	_, path = fields.Common(reflect.TypeOf(d), reflect.TypeOf(Mixin{}))
	v = fields.Project(reflect.ValueOf(d), path)
	require.Equal(t, reflect.Ptr, v.Kind())
	assert.True(t, v.IsNil())
}

func BenchmarkEnumerate_Cached(b *testing.B) {
	opts := config.NewOptions()
	t := reflect.TypeOf(Derived{})
	fields.Enumerate(t, opts, apis.Declaration)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		fields.Enumerate(t, opts, apis.Declaration)
	}
}
