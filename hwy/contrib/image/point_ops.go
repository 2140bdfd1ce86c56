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

package image

import (
	"github.com/hueshift/hlslvec/hwy"
)

// ClampImage clamps pixel values to [minVal, maxVal].
func ClampImage[T hwy.Floats](img, out *Image[T], minVal, maxVal T) {
	if img == nil || out == nil || img.data == nil || out.data == nil {
		return
	}

	minVec := hwy.Set(minVal)
	maxVec := hwy.Set(maxVal)
	lanes := hwy.MaxLanes[T]()

	for y := 0; y < img.height; y++ {
		inRow := img.Row(y)
		outRow := out.Row(y)

		hwy.ProcessWithTail[T](img.width,
			func(i int) {
				hwy.Store(hwy.Clamp(hwy.Load(inRow[i:]), minVec, maxVec), outRow[i:])
			},
			func(i, remaining int) {
				buf := make([]T, lanes)
				copy(buf, inRow[i:i+remaining])
				hwy.Store(hwy.Clamp(hwy.Load(buf), minVec, maxVec), buf)
				copy(outRow[i:i+remaining], buf[:remaining])
			},
		)
	}
}

// ClampImage3 clamps every plane of img into [minVal, maxVal].
func ClampImage3[T hwy.Floats](img, out *Image3[T], minVal, maxVal T) {
	for i := range 3 {
		ClampImage(img.Plane(i), out.Plane(i), minVal, maxVal)
	}
}

// SelectImage3 writes a where mask is non-zero and b elsewhere.
// All images must have the same size.
func SelectImage3[T hwy.Floats](mask *Image[T], a, b, out *Image3[T]) {
	if mask == nil || a == nil || b == nil || out == nil {
		return
	}

	zero := hwy.Zero[T]()
	lanes := hwy.MaxLanes[T]()

	// Rows are padded to a multiple of the vector width, so whole padded
	// rows are processed without a tail.
	for y := range mask.height {
		mRow := mask.Row(y)
		for p := range 3 {
			aRow, bRow, outRow := a.PlaneRow(p, y), b.PlaneRow(p, y), out.PlaneRow(p, y)
			for i := 0; i+lanes <= len(mRow); i += lanes {
				sel := hwy.GreaterThan(hwy.Load(mRow[i:]), zero)
				hwy.Store(hwy.IfThenElse(sel, hwy.Load(aRow[i:]), hwy.Load(bRow[i:])), outRow[i:])
			}
		}
	}
}
