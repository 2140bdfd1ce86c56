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

package spectrum

import (
	"github.com/hueshift/hlslvec/hwy/contrib/image"
	"github.com/hueshift/hlslvec/hwy/contrib/workerpool"
	"github.com/hueshift/hlslvec/transpile"
)

// Applier runs the spectrum kernels over images.
type Applier struct {
	Kernels  *transpile.Kernels[float32]
	Strength float32

	// TextureWidth defaults to DefaultTextureWidth.
	TextureWidth int

	// Rows, when set, splits each image into bands processed in parallel.
	Rows *workerpool.Pool
}

// NewApplier returns an Applier over the native kernels.
func NewApplier(strength float32) *Applier {
	return &Applier{Kernels: transpile.NewKernels[float32](), Strength: strength}
}

func (a *Applier) width() int {
	if a.TextureWidth > 0 {
		return a.TextureWidth
	}
	return DefaultTextureWidth
}

// Apply tones img with s and returns a new RGB image.
func (a *Applier) Apply(img *image.Image3[float32], s Spectrum) (*image.Image3[float32], error) {
	tex, err := Texture[float32](s, a.width())
	if err != nil {
		return nil, err
	}
	out := image.NewImage3[float32](img.Width(), img.Height())
	a.Kernels.ApplySpectrumRows(a.Rows, img, tex, a.Strength, out)
	return out, nil
}

// ApplyDual tones img with first where noise is set and with second
// everywhere else.
func (a *Applier) ApplyDual(img *image.Image3[float32], first, second Spectrum, noise *Noise) (*image.Image3[float32], error) {
	one, err := a.Apply(img, first)
	if err != nil {
		return nil, err
	}
	two, err := a.Apply(img, second)
	if err != nil {
		return nil, err
	}
	mask := noise.Mask(img.Width(), img.Height())
	out := image.NewImage3[float32](img.Width(), img.Height())
	image.SelectImage3(mask, one, two, out)
	return out, nil
}
