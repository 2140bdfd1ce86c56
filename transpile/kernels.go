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

package transpile

import (
	"fmt"

	"github.com/hueshift/hlslvec/hwy"
	"github.com/hueshift/hlslvec/hwy/contrib/image"
	"github.com/hueshift/hlslvec/hwy/contrib/workerpool"
)

// Kernels is the native counterpart of a generated Module: one Go function
// per routine. Later entries hold references to the earlier ones they call,
// fixed when the registry is built.
type Kernels[T hwy.Floats] struct {
	// RGBToHSV converts src into HSV planes (hue in degrees).
	RGBToHSV func(src, dst *image.Image3[T])

	// HSVToRGB converts HSV planes back to RGB.
	HSVToRGB func(src, dst *image.Image3[T])

	// LookupSpectrumHSV samples the 1×W texture at each hue and writes the
	// sample's HSV.
	LookupSpectrumHSV func(texture *image.Image3[T], hue *image.Image[T], dst *image.Image3[T])

	// ApplySpectrum blends src toward the texture's tone at strength and
	// writes RGB into dst. src and dst may be the same image.
	ApplySpectrum func(src, texture *image.Image3[T], strength T, dst *image.Image3[T])
}

// NewKernels builds the registry in declaration order.
func NewKernels[T hwy.Floats]() *Kernels[T] {
	k := &Kernels[T]{
		RGBToHSV: image.RGBToHSV[T],
		HSVToRGB: image.HSVToRGB[T],
	}

	rgbToHSV := k.RGBToHSV
	k.LookupSpectrumHSV = func(texture *image.Image3[T], hue *image.Image[T], dst *image.Image3[T]) {
		image.SampleTexture(texture, hue, dst)
		rgbToHSV(dst, dst)
	}

	lookup, hsvToRGB := k.LookupSpectrumHSV, k.HSVToRGB
	k.ApplySpectrum = func(src, texture *image.Image3[T], strength T, dst *image.Image3[T]) {
		hsv := image.NewImage3[T](src.Width(), src.Height())
		rgbToHSV(src, hsv)
		spec := image.NewImage3[T](src.Width(), src.Height())
		lookup(texture, hsv.Plane(0), spec)
		image.BlendHSV(hsv, spec, strength, hsv)
		hsvToRGB(hsv, dst)
	}
	return k
}

// nativeRoutines names the routines NewKernels implements.
var nativeRoutines = map[string]bool{
	RGBToHSVName:          true,
	HSVToRGBName:          true,
	LookupSpectrumHSVName: true,
	ApplySpectrumName:     true,
}

// Bind returns native kernels for every routine of m. It fails when m
// declares its routines out of order or names one outside the registry.
func Bind[T hwy.Floats](m *Module) (*Kernels[T], error) {
	if _, err := Assemble(m); err != nil {
		return nil, err
	}
	k := NewKernels[T]()
	for _, r := range m.Routines {
		if !nativeRoutines[r.Name] {
			return nil, fmt.Errorf("bind: no native kernel for %s", r.Name)
		}
	}
	return k, nil
}

// ApplySpectrumRows runs ApplySpectrum over horizontal bands of src on pool.
// Rows are independent, so the result equals a single ApplySpectrum call.
func (k *Kernels[T]) ApplySpectrumRows(pool *workerpool.Pool, src, texture *image.Image3[T], strength T, dst *image.Image3[T]) {
	if pool == nil {
		k.ApplySpectrum(src, texture, strength, dst)
		return
	}
	pool.ParallelFor(src.Height(), func(start, end int) {
		k.ApplySpectrum(src.SubRows(start, end), texture, strength, dst.SubRows(start, end))
	})
}
