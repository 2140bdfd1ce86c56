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

// This file provides pure Go (scalar) implementations of table lookups.
// Index vectors are plain []int32 slices with one entry per lane.

// ConvertToInt32 truncates each lane toward zero and returns the lanes as
// indices. Lanes outside the int32 range saturate.
func ConvertToInt32[T Floats](v Vec[T]) []int32 {
	out := make([]int32, len(v.data))
	for i, x := range v.data {
		switch {
		case x != x:
			out[i] = 0
		case x >= 2147483647:
			out[i] = 2147483647
		case x <= -2147483648:
			out[i] = -2147483648
		default:
			out[i] = int32(x)
		}
	}
	return out
}

// GatherIndex loads elements from non-contiguous memory locations specified by indices.
// For each lane i, it loads src[indices[i]].
// If an index is out of bounds (negative or >= len(src)), the result for that lane is zero.
func GatherIndex[T Floats](src []T, indices []int32) Vec[T] {
	result := make([]T, len(indices))
	for i, idx := range indices {
		if idx >= 0 && int(idx) < len(src) {
			result[i] = src[idx]
		}
	}
	return Vec[T]{data: result}
}
