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

// Image is a single-channel 2D array with vector-aligned rows.
// Each row is padded to a multiple of the vector width, so kernels may
// process whole padded rows or stop at Width and buffer the tail.
type Image[T hwy.Floats] struct {
	data   []T
	width  int
	height int
	stride int // elements per row (includes padding)
}

// NewImage creates a new zero-filled image with the specified dimensions.
func NewImage[T hwy.Floats](width, height int) *Image[T] {
	if width <= 0 || height <= 0 {
		return &Image[T]{}
	}

	stride := hwy.AlignedSize[T](width)
	return &Image[T]{
		data:   make([]T, stride*height),
		width:  width,
		height: height,
		stride: stride,
	}
}

// Width returns the image width in pixels.
func (img *Image[T]) Width() int {
	return img.width
}

// Height returns the image height in pixels.
func (img *Image[T]) Height() int {
	return img.height
}

// Stride returns the number of elements per row (including padding).
func (img *Image[T]) Stride() int {
	return img.stride
}

// Row returns a mutable slice for the specified row, including padding.
func (img *Image[T]) Row(y int) []T {
	if y < 0 || y >= img.height || img.data == nil {
		return nil
	}
	start := y * img.stride
	return img.data[start : start+img.stride]
}

// RowSlice returns a mutable slice for the specified row,
// limited to the actual image width (excluding padding).
func (img *Image[T]) RowSlice(y int) []T {
	if y < 0 || y >= img.height || img.data == nil {
		return nil
	}
	start := y * img.stride
	return img.data[start : start+img.width]
}

// At returns the value at position (x, y), or zero when out of bounds.
func (img *Image[T]) At(x, y int) T {
	if x < 0 || x >= img.width || y < 0 || y >= img.height || img.data == nil {
		return 0
	}
	return img.data[y*img.stride+x]
}

// Set sets the value at position (x, y). Out of bounds writes are ignored.
func (img *Image[T]) Set(x, y int, value T) {
	if x < 0 || x >= img.width || y < 0 || y >= img.height || img.data == nil {
		return
	}
	img.data[y*img.stride+x] = value
}

// SubRows returns a view of rows [y0, y1) that shares pixel storage with img.
// Bounds are clamped to the image.
func (img *Image[T]) SubRows(y0, y1 int) *Image[T] {
	y0, y1 = max(y0, 0), min(y1, img.height)
	if y0 >= y1 || img.data == nil {
		return &Image[T]{}
	}
	return &Image[T]{
		data:   img.data[y0*img.stride : y1*img.stride],
		width:  img.width,
		height: y1 - y0,
		stride: img.stride,
	}
}

// SameSize returns true if both images have the same dimensions.
func SameSize[T, U hwy.Floats](a *Image[T], b *Image[U]) bool {
	return a.width == b.width && a.height == b.height
}

// Clone creates a deep copy of the image.
func (img *Image[T]) Clone() *Image[T] {
	clone := *img
	if img.data != nil {
		clone.data = make([]T, len(img.data))
		copy(clone.data, img.data)
	}
	return &clone
}

// Fill sets all pixels to the specified value.
func (img *Image[T]) Fill(value T) {
	for i := range img.data {
		img.data[i] = value
	}
}

// Image3 bundles three same-sized Image planes: RGB, or HSV with hue in
// degrees and saturation/value in [0, 1].
type Image3[T hwy.Floats] struct {
	planes [3]*Image[T]
}

// NewImage3 creates a new 3-plane image with the specified dimensions.
func NewImage3[T hwy.Floats](width, height int) *Image3[T] {
	return &Image3[T]{
		planes: [3]*Image[T]{
			NewImage[T](width, height),
			NewImage[T](width, height),
			NewImage[T](width, height),
		},
	}
}

// Plane returns the specified plane (0, 1, or 2).
func (img *Image3[T]) Plane(i int) *Image[T] {
	if i < 0 || i > 2 {
		return nil
	}
	return img.planes[i]
}

// PlaneRow returns a row from the specified plane.
func (img *Image3[T]) PlaneRow(plane, y int) []T {
	if plane < 0 || plane > 2 {
		return nil
	}
	return img.planes[plane].Row(y)
}

// Width returns the image width (all planes have the same size).
func (img *Image3[T]) Width() int {
	return img.planes[0].Width()
}

// Height returns the image height.
func (img *Image3[T]) Height() int {
	return img.planes[0].Height()
}

// At returns the three channel values at (x, y).
func (img *Image3[T]) At(x, y int) [3]T {
	return [3]T{img.planes[0].At(x, y), img.planes[1].At(x, y), img.planes[2].At(x, y)}
}

// Set writes the three channel values at (x, y).
func (img *Image3[T]) Set(x, y int, c [3]T) {
	for i, p := range img.planes {
		p.Set(x, y, c[i])
	}
}

// SubRows returns a view of rows [y0, y1) of all three planes.
func (img *Image3[T]) SubRows(y0, y1 int) *Image3[T] {
	return &Image3[T]{
		planes: [3]*Image[T]{
			img.planes[0].SubRows(y0, y1),
			img.planes[1].SubRows(y0, y1),
			img.planes[2].SubRows(y0, y1),
		},
	}
}

// Clone creates a deep copy of all three planes.
func (img *Image3[T]) Clone() *Image3[T] {
	return &Image3[T]{
		planes: [3]*Image[T]{
			img.planes[0].Clone(),
			img.planes[1].Clone(),
			img.planes[2].Clone(),
		},
	}
}
