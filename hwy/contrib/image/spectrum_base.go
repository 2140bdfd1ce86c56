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

// SampleTexture writes, for every hue in hue, the RGB color of the texture
// sample the hue maps to. The texture is a 1×W strip; only its first row is
// read. Hue is wrapped mod 360 only when it lies outside [0, 360], so 360
// itself selects the last sample:
//
//	u = clamp(trunc(hue / 360 * (W-1)), 0, W-1)
func SampleTexture[T hwy.Floats](texture *Image3[T], hue *Image[T], dst *Image3[T]) {
	if texture == nil || hue == nil || dst == nil || texture.Width() == 0 || !SameSize(hue, dst.planes[0]) {
		return
	}

	tw := texture.Width()
	tex := [3][]T{texture.PlaneRow(0, 0), texture.PlaneRow(1, 0), texture.PlaneRow(2, 0)}
	tex[0], tex[1], tex[2] = tex[0][:tw], tex[1][:tw], tex[2][:tw]

	zero := hwy.Zero[T]()
	full := hwy.Set(T(360))
	last := hwy.Set(T(tw - 1))
	lanes := hwy.MaxLanes[T]()
	width := hue.Width()

	sample := func(h hwy.Vec[T], out [3][]T) {
		outside := hwy.MaskOr(hwy.LessThan(h, zero), hwy.GreaterThan(h, full))
		h = hwy.IfThenElse(outside, hwy.Mod(h, full), h)
		u := hwy.Clamp(hwy.Trunc(hwy.Mul(hwy.Div(h, full), last)), zero, last)
		idx := hwy.ConvertToInt32(u)
		for p := range 3 {
			hwy.Store(hwy.GatherIndex(tex[p], idx), out[p])
		}
	}

	for y := range hue.Height() {
		in := hue.Row(y)
		out := [3][]T{dst.PlaneRow(0, y), dst.PlaneRow(1, y), dst.PlaneRow(2, y)}

		hwy.ProcessWithTail[T](width,
			func(i int) {
				sample(hwy.Load(in[i:]), [3][]T{out[0][i:], out[1][i:], out[2][i:]})
			},
			func(i, remaining int) {
				buf := make([]T, lanes)
				copy(buf, in[i:i+remaining])
				tail := [3][]T{make([]T, lanes), make([]T, lanes), make([]T, lanes)}
				sample(hwy.Load(buf), tail)
				for p := range 3 {
					copy(out[p][i:i+remaining], tail[p][:remaining])
				}
			},
		)
	}
}

// BlendHSV mixes an HSV image with a per-pixel spectrum HSV at strength:
//
//	h' = lerp(h, sh, strength)
//	s' = s * lerp(1, ss, strength)
//	v' = v * ((1 - s) + s * lerp(1, sv, strength))
//
// Gray pixels (s = 0) keep their value. src and dst may be the same image.
func BlendHSV[T hwy.Floats](src, spec *Image3[T], strength T, dst *Image3[T]) {
	if src == nil || spec == nil || dst == nil {
		return
	}
	st := hwy.Set(strength)
	one := hwy.Set(T(1))

	forEachVector6(src, spec, dst, func(h, s, v, sh, ss, sv hwy.Vec[T]) (hwy.Vec[T], hwy.Vec[T], hwy.Vec[T]) {
		fh := hwy.Lerp(h, sh, st)
		fs := hwy.Mul(s, hwy.Lerp(one, ss, st))
		fv := hwy.Mul(v, hwy.Add(hwy.Sub(one, s), hwy.Mul(s, hwy.Lerp(one, sv, st))))
		return fh, fs, fv
	})
}

// forEachVector6 is forEachVector over two three-plane inputs.
func forEachVector6[T hwy.Floats](a, b, dst *Image3[T], fn func(a0, a1, a2, b0, b1, b2 hwy.Vec[T]) (hwy.Vec[T], hwy.Vec[T], hwy.Vec[T])) {
	if !SameSize(a.planes[0], b.planes[0]) || !SameSize(a.planes[0], dst.planes[0]) {
		return
	}

	lanes := hwy.MaxLanes[T]()
	width := a.Width()

	for y := range a.Height() {
		var in [6][]T
		for p := range 3 {
			in[p], in[p+3] = a.PlaneRow(p, y), b.PlaneRow(p, y)
		}
		out := [3][]T{dst.PlaneRow(0, y), dst.PlaneRow(1, y), dst.PlaneRow(2, y)}
		step := func(src [6][]T, out [3][]T) {
			r0, r1, r2 := fn(hwy.Load(src[0]), hwy.Load(src[1]), hwy.Load(src[2]),
				hwy.Load(src[3]), hwy.Load(src[4]), hwy.Load(src[5]))
			hwy.Store(r0, out[0])
			hwy.Store(r1, out[1])
			hwy.Store(r2, out[2])
		}

		hwy.ProcessWithTail[T](width,
			func(i int) {
				var chunk [6][]T
				for k := range in {
					chunk[k] = in[k][i:]
				}
				step(chunk, [3][]T{out[0][i:], out[1][i:], out[2][i:]})
			},
			func(i, remaining int) {
				var chunk [6][]T
				for k := range in {
					chunk[k] = make([]T, lanes)
					copy(chunk[k], in[k][i:i+remaining])
				}
				tail := [3][]T{make([]T, lanes), make([]T, lanes), make([]T, lanes)}
				step(chunk, tail)
				for p := range 3 {
					copy(out[p][i:i+remaining], tail[p][:remaining])
				}
			},
		)
	}
}
