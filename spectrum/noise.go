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
	"fmt"
	goimage "image"
	"image/color"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/hueshift/hlslvec/hwy/contrib/image"
)

// noiseThreshold is the luma above which a noise pixel selects the first
// spectrum.
const noiseThreshold = 128

// Noise is a binarized selection pattern for dual application.
type Noise struct {
	bits *goimage.Gray
}

// NewNoise thresholds src by luma.
func NewNoise(src goimage.Image) *Noise {
	b := src.Bounds()
	bits := goimage.NewGray(goimage.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if color.GrayModel.Convert(src.At(x, y)).(color.Gray).Y > noiseThreshold {
				bits.SetGray(x-b.Min.X, y-b.Min.Y, color.Gray{Y: 255})
			}
		}
	}
	return &Noise{bits: bits}
}

// LoadNoise decodes and thresholds the noise image at path.
func LoadNoise(path string) (*Noise, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	src, _, err := goimage.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode noise %s: %w", path, err)
	}
	return NewNoise(src), nil
}

// Bounds returns the rectangle of a width×height display the noise covers
// once scaled to fit while keeping its aspect ratio, centered.
func (n *Noise) Bounds(width, height int) goimage.Rectangle {
	tw, th := n.bits.Bounds().Dx(), n.bits.Bounds().Dy()
	if tw == 0 || th == 0 || width <= 0 || height <= 0 {
		return goimage.Rectangle{}
	}
	texAspect := float64(tw) / float64(th)
	dispAspect := float64(width) / float64(height)
	if texAspect > dispAspect {
		scaled := int(float64(th) * float64(width) / float64(tw))
		off := (height - scaled) / 2
		return goimage.Rect(0, off, width, off+scaled)
	}
	scaled := int(float64(tw) * float64(height) / float64(th))
	off := (width - scaled) / 2
	return goimage.Rect(off, 0, off+scaled, height)
}

// Mask returns a width×height mask that is 1 where the fitted noise is set
// and 0 elsewhere, including outside the fitted area.
func (n *Noise) Mask(width, height int) *image.Image[float32] {
	mask := image.NewImage[float32](width, height)
	fit := n.Bounds(width, height)
	if fit.Empty() {
		return mask
	}
	canvas := goimage.NewGray(goimage.Rect(0, 0, width, height))
	xdraw.NearestNeighbor.Scale(canvas, fit, n.bits, n.bits.Bounds(), xdraw.Src, nil)
	for y := range height {
		row := mask.Row(y)
		line := canvas.Pix[y*canvas.Stride : y*canvas.Stride+width]
		for x, v := range line {
			if v > 0 {
				row[x] = 1
			}
		}
	}
	return mask
}
