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

package float_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"dirpx.dev/structx/utils/float"
)

func TestBits64_CanonicalNaN(t *testing.T) {
	quiet := math.NaN()
	other := math.Float64frombits(0x7ff0000000000001)
	assert.Equal(t, float.Bits64(quiet), float.Bits64(other))
	assert.NotEqual(t, float.Bits64(0.0), float.Bits64(math.Copysign(0, -1)))
}

func TestCompare64(t *testing.T) {
	negZero := math.Copysign(0, -1)
	nan := math.NaN()

	cases := []struct {
		name string
		x, y float64
		want int
	}{
		{"less", 1, 2, -1},
		{"greater", 2, 1, 1},
		{"equal", 2, 2, 0},
		{"neg zero below pos zero", negZero, 0, -1},
		{"pos zero above neg zero", 0, negZero, 1},
		{"nan equals nan", nan, nan, 0},
		{"nan above inf", nan, math.Inf(1), 1},
		{"inf below nan", math.Inf(1), nan, -1},
		{"nan above neg", nan, -1, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, float.Compare64(tc.x, tc.y))
		})
	}
}

func TestCompare32(t *testing.T) {
	nan := float32(math.NaN())
	negZero := float32(math.Copysign(0, -1))
	assert.Equal(t, 0, float.Compare32(nan, nan))
	assert.Equal(t, -1, float.Compare32(negZero, 0))
	assert.Equal(t, 1, float.Compare32(nan, float32(math.Inf(1))))
	assert.Equal(t, -1, float.Compare32(1, 2))
}
