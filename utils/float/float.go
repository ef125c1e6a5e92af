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

// Package float exposes canonical bit patterns of floating-point values.
//
// Every NaN maps to one canonical pattern, so two NaNs are "the same value"
// under both bit-pattern equality and the total order built on top of it.
// Signed zeros keep distinct patterns.
package float

import "math"

const (
	canonicalNaN64 uint64 = 0x7ff8000000000000
	canonicalNaN32 uint32 = 0x7fc00000
)

// Bits64 returns the canonical bit pattern of f.
func Bits64(f float64) uint64 {
	if f != f {
		return canonicalNaN64
	}
	return math.Float64bits(f)
}

// Bits32 returns the canonical bit pattern of f.
func Bits32(f float32) uint32 {
	if f != f {
		return canonicalNaN32
	}
	return math.Float32bits(f)
}

// Compare64 orders x and y totally: -0.0 < +0.0, NaN equals NaN and is
// greater than every other value, including +Inf.
func Compare64(x, y float64) int {
	if x < y {
		return -1
	}
	if x > y {
		return 1
	}
	xb, yb := int64(Bits64(x)), int64(Bits64(y))
	switch {
	case xb == yb:
		return 0
	case xb < yb:
		return -1
	default:
		return 1
	}
}

// Compare32 is Compare64 for float32.
func Compare32(x, y float32) int {
	if x < y {
		return -1
	}
	if x > y {
		return 1
	}
	xb, yb := int32(Bits32(x)), int32(Bits32(y))
	switch {
	case xb == yb:
		return 0
	case xb < yb:
		return -1
	default:
		return 1
	}
}
