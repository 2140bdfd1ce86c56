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

// Package hwy provides portable lane-wise vector operations used by the
// image kernels.
//
// A Vec holds MaxLanes elements, where the lane count is derived from the
// register width detected at startup. Kernels are written once against this
// API and process rows in vector-sized chunks with a buffered tail:
//
//	lanes := hwy.MaxLanes[float32]()
//	for i := 0; i+lanes <= len(in); i += lanes {
//		v := hwy.Load(in[i:])
//		hwy.Store(hwy.Mul(v, hwy.Set[float32](2)), out[i:])
//	}
package hwy

// Floats is a constraint for floating-point lane types.
type Floats interface {
	~float32 | ~float64
}

// Vec is a portable vector handle.
//
// Vec instances should not be created directly; use Load, Set, or Zero instead.
type Vec[T Floats] struct {
	data []T
}

// NumLanes returns the number of lanes (elements) in this vector.
func (v Vec[T]) NumLanes() int {
	return len(v.data)
}

// Data returns the underlying lanes. Intended for tests.
func (v Vec[T]) Data() []T {
	return v.data
}

// Store writes the vector's lanes to dst.
func (v Vec[T]) Store(dst []T) {
	Store(v, dst)
}

// Mask is the result of a lane-wise comparison. Use it with IfThenElse to
// select between two vectors.
type Mask[T Floats] struct {
	bits []bool
}

// NumLanes returns the number of lanes in this mask.
func (m Mask[T]) NumLanes() int {
	return len(m.bits)
}

// AllTrue returns true if all lanes in the mask are active.
func (m Mask[T]) AllTrue() bool {
	for _, bit := range m.bits {
		if !bit {
			return false
		}
	}
	return true
}

// AnyTrue returns true if at least one lane in the mask is active.
func (m Mask[T]) AnyTrue() bool {
	for _, bit := range m.bits {
		if bit {
			return true
		}
	}
	return false
}

// GetBit returns whether lane i is active.
func (m Mask[T]) GetBit(i int) bool {
	if i < 0 || i >= len(m.bits) {
		return false
	}
	return m.bits[i]
}
