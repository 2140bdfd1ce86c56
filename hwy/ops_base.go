// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hwy

import (
	"math"

	"github.com/chewxy/math32"
)

// This file provides the pure Go implementations of all lane operations.
// Binary operations produce min(len(a), len(b)) lanes.

// Load creates a vector by loading data from a slice.
// If src is shorter than MaxLanes, only len(src) lanes are loaded.
func Load[T Floats](src []T) Vec[T] {
	n := min(len(src), MaxLanes[T]())
	data := make([]T, n)
	copy(data, src[:n])
	return Vec[T]{data: data}
}

// Store writes a vector's data to a slice.
func Store[T Floats](v Vec[T], dst []T) {
	n := min(len(dst), len(v.data))
	copy(dst[:n], v.data[:n])
}

// Set creates a vector with all lanes set to the same value.
func Set[T Floats](value T) Vec[T] {
	data := make([]T, MaxLanes[T]())
	for i := range data {
		data[i] = value
	}
	return Vec[T]{data: data}
}

// Zero creates a vector with all lanes set to zero.
func Zero[T Floats]() Vec[T] {
	return Vec[T]{data: make([]T, MaxLanes[T]())}
}

func binary[T Floats](a, b Vec[T], fn func(x, y T) T) Vec[T] {
	n := min(len(a.data), len(b.data))
	result := make([]T, n)
	for i := range n {
		result[i] = fn(a.data[i], b.data[i])
	}
	return Vec[T]{data: result}
}

func unary[T Floats](v Vec[T], fn func(x T) T) Vec[T] {
	result := make([]T, len(v.data))
	for i, x := range v.data {
		result[i] = fn(x)
	}
	return Vec[T]{data: result}
}

func compare[T Floats](a, b Vec[T], fn func(x, y T) bool) Mask[T] {
	n := min(len(a.data), len(b.data))
	bits := make([]bool, n)
	for i := range n {
		bits[i] = fn(a.data[i], b.data[i])
	}
	return Mask[T]{bits: bits}
}

// Add performs element-wise addition.
func Add[T Floats](a, b Vec[T]) Vec[T] {
	return binary(a, b, func(x, y T) T { return x + y })
}

// Sub performs element-wise subtraction.
func Sub[T Floats](a, b Vec[T]) Vec[T] {
	return binary(a, b, func(x, y T) T { return x - y })
}

// Mul performs element-wise multiplication.
func Mul[T Floats](a, b Vec[T]) Vec[T] {
	return binary(a, b, func(x, y T) T { return x * y })
}

// Div performs element-wise division. Lanes dividing by zero yield ±Inf or
// NaN; callers mask them out with IfThenElse.
func Div[T Floats](a, b Vec[T]) Vec[T] {
	return binary(a, b, func(x, y T) T { return x / y })
}

// MulAdd computes a*b + c.
func MulAdd[T Floats](a, b, c Vec[T]) Vec[T] {
	return Add(Mul(a, b), c)
}

// Lerp computes a*(1-t) + b*t.
func Lerp[T Floats](a, b, t Vec[T]) Vec[T] {
	return Add(Mul(a, Sub(Set(T(1)), t)), Mul(b, t))
}

// Neg negates all lanes.
func Neg[T Floats](v Vec[T]) Vec[T] {
	return unary(v, func(x T) T { return -x })
}

// Abs computes absolute value.
func Abs[T Floats](v Vec[T]) Vec[T] {
	return unary(v, absHelper[T])
}

// Min returns element-wise minimum.
func Min[T Floats](a, b Vec[T]) Vec[T] {
	return binary(a, b, func(x, y T) T {
		if x < y {
			return x
		}
		return y
	})
}

// Max returns element-wise maximum.
func Max[T Floats](a, b Vec[T]) Vec[T] {
	return binary(a, b, func(x, y T) T {
		if x > y {
			return x
		}
		return y
	})
}

// Clamp limits every lane to [lo, hi].
func Clamp[T Floats](v, lo, hi Vec[T]) Vec[T] {
	return Min(Max(v, lo), hi)
}

// Floor rounds every lane toward negative infinity.
func Floor[T Floats](v Vec[T]) Vec[T] {
	return unary(v, floorHelper[T])
}

// Trunc rounds every lane toward zero.
func Trunc[T Floats](v Vec[T]) Vec[T] {
	return unary(v, truncHelper[T])
}

// Mod computes the floored modulus a - b*floor(a/b): the result has the sign
// of b. This matches the `%` operator of array languages, not C fmod.
func Mod[T Floats](a, b Vec[T]) Vec[T] {
	return binary(a, b, modHelper[T])
}

// ReduceMax returns the largest lane. Returns zero for an empty vector.
func ReduceMax[T Floats](v Vec[T]) T {
	if len(v.data) == 0 {
		return 0
	}
	m := v.data[0]
	for _, x := range v.data[1:] {
		m = max(m, x)
	}
	return m
}

// Equal performs element-wise equality comparison.
func Equal[T Floats](a, b Vec[T]) Mask[T] {
	return compare(a, b, func(x, y T) bool { return x == y })
}

// LessThan performs element-wise less-than comparison.
func LessThan[T Floats](a, b Vec[T]) Mask[T] {
	return compare(a, b, func(x, y T) bool { return x < y })
}

// LessEqual performs element-wise less-than-or-equal comparison.
func LessEqual[T Floats](a, b Vec[T]) Mask[T] {
	return compare(a, b, func(x, y T) bool { return x <= y })
}

// GreaterThan performs element-wise greater-than comparison.
func GreaterThan[T Floats](a, b Vec[T]) Mask[T] {
	return compare(a, b, func(x, y T) bool { return x > y })
}

// GreaterEqual performs element-wise greater-than-or-equal comparison.
func GreaterEqual[T Floats](a, b Vec[T]) Mask[T] {
	return compare(a, b, func(x, y T) bool { return x >= y })
}

// MaskAnd returns the lane-wise conjunction of two masks.
func MaskAnd[T Floats](a, b Mask[T]) Mask[T] {
	n := min(len(a.bits), len(b.bits))
	bits := make([]bool, n)
	for i := range n {
		bits[i] = a.bits[i] && b.bits[i]
	}
	return Mask[T]{bits: bits}
}

// MaskOr returns the lane-wise disjunction of two masks.
func MaskOr[T Floats](a, b Mask[T]) Mask[T] {
	n := min(len(a.bits), len(b.bits))
	bits := make([]bool, n)
	for i := range n {
		bits[i] = a.bits[i] || b.bits[i]
	}
	return Mask[T]{bits: bits}
}

// MaskNot inverts every lane of a mask.
func MaskNot[T Floats](m Mask[T]) Mask[T] {
	bits := make([]bool, len(m.bits))
	for i, bit := range m.bits {
		bits[i] = !bit
	}
	return Mask[T]{bits: bits}
}

// IfThenElse returns a where mask is true, b otherwise.
func IfThenElse[T Floats](mask Mask[T], a, b Vec[T]) Vec[T] {
	n := min(len(b.data), len(a.data), len(mask.bits))
	result := make([]T, n)
	for i := range n {
		if mask.bits[i] {
			result[i] = a.data[i]
		} else {
			result[i] = b.data[i]
		}
	}
	return Vec[T]{data: result}
}

// IfThenElseZero returns a where mask is true, zero otherwise.
func IfThenElseZero[T Floats](mask Mask[T], a Vec[T]) Vec[T] {
	n := min(len(a.data), len(mask.bits))
	result := make([]T, n)
	for i := range n {
		if mask.bits[i] {
			result[i] = a.data[i]
		}
	}
	return Vec[T]{data: result}
}

func absHelper[T Floats](a T) T {
	switch av := any(a).(type) {
	case float32:
		return T(math32.Abs(av))
	case float64:
		return T(math.Abs(av))
	default:
		if a < 0 {
			return -a
		}
		return a
	}
}

func floorHelper[T Floats](a T) T {
	switch av := any(a).(type) {
	case float32:
		return T(math32.Floor(av))
	default:
		return T(math.Floor(float64(a)))
	}
}

func truncHelper[T Floats](a T) T {
	switch av := any(a).(type) {
	case float32:
		return T(math32.Trunc(av))
	default:
		return T(math.Trunc(float64(a)))
	}
}

func modHelper[T Floats](a, b T) T {
	var r T
	switch av := any(a).(type) {
	case float32:
		bv := any(b).(float32)
		r = T(math32.Mod(av, bv))
	default:
		r = T(math.Mod(float64(a), float64(b)))
	}
	// math.Mod truncates; shift into the sign of the divisor.
	if r != 0 && (r < 0) != (b < 0) {
		r += b
		// A tiny negative remainder can round up to b itself.
		if r == b {
			r = 0
		}
	}
	return r
}
