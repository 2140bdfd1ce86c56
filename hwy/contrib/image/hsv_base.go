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

// HSVEpsilon is the delta/max threshold below which hue (and saturation)
// are treated as undefined and set to zero.
const HSVEpsilon = 0.0001

// RGBToHSV converts an RGB image into HSV planes:
//
//	H in degrees [0, 360), S in [0, 1], V in [0, 1]
//
// Hue uses the 60° sector formula selected by the channel holding the max;
// it is zero where max-min <= HSVEpsilon. Saturation is zero where
// max <= HSVEpsilon. src and dst may be the same image.
func RGBToHSV[T hwy.Floats](src, dst *Image3[T]) {
	forEachVector(src, dst, RGBToHSVVec[T])
}

// HSVToRGB converts HSV planes back to RGB using six half-open 60° sectors.
// Hue is first reduced into [0, 360) with a floored modulus.
// src and dst may be the same image.
func HSVToRGB[T hwy.Floats](src, dst *Image3[T]) {
	forEachVector(src, dst, HSVToRGBVec[T])
}

// RGBToHSVVec is the lane-wise body of RGBToHSV.
func RGBToHSVVec[T hwy.Floats](r, g, b hwy.Vec[T]) (h, s, v hwy.Vec[T]) {
	eps := hwy.Set(T(HSVEpsilon))
	zero := hwy.Zero[T]()
	sixty := hwy.Set(T(60))

	cmax := hwy.Max(r, hwy.Max(g, b))
	cmin := hwy.Min(r, hwy.Min(g, b))
	delta := hwy.Sub(cmax, cmin)
	defined := hwy.GreaterThan(delta, eps)

	hr := hwy.Mul(sixty, hwy.Mod(hwy.Div(hwy.Sub(g, b), delta), hwy.Set(T(6))))
	hg := hwy.Mul(sixty, hwy.Add(hwy.Div(hwy.Sub(b, r), delta), hwy.Set(T(2))))
	hb := hwy.Mul(sixty, hwy.Add(hwy.Div(hwy.Sub(r, g), delta), hwy.Set(T(4))))

	// Later branches win ties: r==g==max takes the green formula, which
	// yields the same hue as the red one.
	h = zero
	h = hwy.IfThenElse(hwy.MaskAnd(hwy.Equal(cmax, r), defined), hr, h)
	h = hwy.IfThenElse(hwy.MaskAnd(hwy.Equal(cmax, g), defined), hg, h)
	h = hwy.IfThenElse(hwy.MaskAnd(hwy.Equal(cmax, b), defined), hb, h)
	h = hwy.IfThenElse(hwy.LessThan(h, zero), hwy.Add(h, hwy.Set(T(360))), h)

	s = hwy.IfThenElseZero(hwy.GreaterThan(cmax, eps), hwy.Div(delta, cmax))
	v = cmax
	return h, s, v
}

// HSVToRGBVec is the lane-wise body of HSVToRGB.
func HSVToRGBVec[T hwy.Floats](h, s, v hwy.Vec[T]) (r, g, b hwy.Vec[T]) {
	one := hwy.Set(T(1))
	zero := hwy.Zero[T]()

	h = hwy.Div(hwy.Mod(h, hwy.Set(T(360))), hwy.Set(T(60)))
	c := hwy.Mul(v, s)
	x := hwy.Mul(c, hwy.Sub(one, hwy.Abs(hwy.Sub(hwy.Mod(h, hwy.Set(T(2))), one))))
	m := hwy.Sub(v, c)

	below := func(k T) hwy.Mask[T] { return hwy.LessThan(h, hwy.Set(k)) }
	lt1, lt2, lt3, lt4, lt5 := below(1), below(2), below(3), below(4), below(5)

	// Sector k covers [k, k+1); the last one also takes h == 6, which the
	// modulus can produce by rounding.
	r = hwy.IfThenElse(lt1, c, hwy.IfThenElse(lt2, x, hwy.IfThenElse(lt4, zero, hwy.IfThenElse(lt5, x, c))))
	g = hwy.IfThenElse(lt1, x, hwy.IfThenElse(lt3, c, hwy.IfThenElse(lt4, x, zero)))
	b = hwy.IfThenElse(lt2, zero, hwy.IfThenElse(lt3, x, hwy.IfThenElse(lt5, c, x)))

	return hwy.Add(r, m), hwy.Add(g, m), hwy.Add(b, m)
}

// forEachVector runs fn over all three planes of src in vector-sized chunks,
// buffering the row tail, and stores the results into dst.
func forEachVector[T hwy.Floats](src, dst *Image3[T], fn func(a, b, c hwy.Vec[T]) (hwy.Vec[T], hwy.Vec[T], hwy.Vec[T])) {
	if src == nil || dst == nil || !SameSize(src.planes[0], dst.planes[0]) {
		return
	}

	lanes := hwy.MaxLanes[T]()
	width := src.Width()

	for y := range src.Height() {
		in0, in1, in2 := src.PlaneRow(0, y), src.PlaneRow(1, y), src.PlaneRow(2, y)
		out0, out1, out2 := dst.PlaneRow(0, y), dst.PlaneRow(1, y), dst.PlaneRow(2, y)

		hwy.ProcessWithTail[T](width,
			func(i int) {
				a, b, c := fn(hwy.Load(in0[i:]), hwy.Load(in1[i:]), hwy.Load(in2[i:]))
				hwy.Store(a, out0[i:])
				hwy.Store(b, out1[i:])
				hwy.Store(c, out2[i:])
			},
			// Tail elements go through a buffer.
			func(i, remaining int) {
				buf0 := make([]T, lanes)
				buf1 := make([]T, lanes)
				buf2 := make([]T, lanes)
				copy(buf0, in0[i:i+remaining])
				copy(buf1, in1[i:i+remaining])
				copy(buf2, in2[i:i+remaining])

				a, b, c := fn(hwy.Load(buf0), hwy.Load(buf1), hwy.Load(buf2))
				hwy.Store(a, buf0)
				hwy.Store(b, buf1)
				hwy.Store(c, buf2)

				copy(out0[i:i+remaining], buf0[:remaining])
				copy(out1[i:i+remaining], buf1[:remaining])
				copy(out2[i:i+remaining], buf2[:remaining])
			},
		)
	}
}
