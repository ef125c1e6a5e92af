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
	"testing"

	"github.com/stretchr/testify/assert"

	"dirpx.dev/structx/apis"
	"dirpx.dev/structx/strategy"
)

type namedType struct{}

func (namedType) TypeName() string { return "custom.Name" } // implements apis.TypeNamer

type ptrNamed struct{}

func (*ptrNamed) TypeName() string { return "custom.Ptr" }

func TestNamerStrategy_TryResolve(t *testing.T) {
	s := strategy.NewNamerStrategy()
	conf := apis.NameConfig{} // config is irrelevant for NamerStrategy

	got, ok := s.TryResolve(reflect.ValueOf(namedType{}), conf)
	assert.True(t, ok)
	assert.Equal(t, "custom.Name", got)

	got, ok = s.TryResolve(reflect.ValueOf(&ptrNamed{}), conf)
	assert.True(t, ok)
	assert.Equal(t, "custom.Ptr", got)

	// nil pointer must not be called
	got, ok = s.TryResolve(reflect.ValueOf((*ptrNamed)(nil)), conf)
	assert.False(t, ok)
	assert.Empty(t, got)

	got, ok = s.TryResolve(reflect.ValueOf(struct{}{}), conf)
	assert.False(t, ok)
	assert.Empty(t, got)

	// TryResolveType should never handle (no instance)
	got, ok = s.TryResolveType(reflect.TypeOf(namedType{}), conf)
	assert.False(t, ok)
	assert.Empty(t, got)
}

// Ensure the local type actually satisfies apis.TypeNamer (compile-time).
var _ apis.TypeNamer = (*namedType)(nil)
