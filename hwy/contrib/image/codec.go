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
	"fmt"
	goimage "image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"

	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// FromImage converts any decoded image into normalized float32 RGB planes.
// Alpha is discarded; colors are taken non-premultiplied.
func FromImage(src goimage.Image) *Image3[float32] {
	b := src.Bounds()
	nrgba := goimage.NewNRGBA(goimage.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Copy(nrgba, goimage.Point{}, src, b, xdraw.Src, nil)

	out := NewImage3[float32](b.Dx(), b.Dy())
	for y := range b.Dy() {
		r, g, bl := out.PlaneRow(0, y), out.PlaneRow(1, y), out.PlaneRow(2, y)
		pix := nrgba.Pix[y*nrgba.Stride:]
		for x := range b.Dx() {
			r[x] = float32(pix[4*x]) / 255
			g[x] = float32(pix[4*x+1]) / 255
			bl[x] = float32(pix[4*x+2]) / 255
		}
	}
	return out
}

// NRGBA converts normalized RGB planes into an opaque 8-bit image.
// Values are clipped to [0, 1] and truncated, matching a
// clip(x, 0, 1) * 255 cast to uint8.
func NRGBA(img *Image3[float32]) *goimage.NRGBA {
	clipped := NewImage3[float32](img.Width(), img.Height())
	ClampImage3(img, clipped, 0, 1)

	out := goimage.NewNRGBA(goimage.Rect(0, 0, img.Width(), img.Height()))
	for y := range img.Height() {
		r, g, b := clipped.PlaneRow(0, y), clipped.PlaneRow(1, y), clipped.PlaneRow(2, y)
		for x := range img.Width() {
			out.SetNRGBA(x, y, color.NRGBA{
				R: uint8(r[x] * 255),
				G: uint8(g[x] * 255),
				B: uint8(b[x] * 255),
				A: 0xff,
			})
		}
	}
	return out
}

// Decode reads an image in any registered format (PNG, JPEG, GIF, BMP,
// TIFF, WebP) and converts it to float32 RGB planes.
func Decode(r io.Reader) (*Image3[float32], error) {
	src, _, err := goimage.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return FromImage(src), nil
}

// ReadFile decodes the image stored at path.
func ReadFile(path string) (*Image3[float32], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// EncodePNG writes img as an 8-bit PNG.
func EncodePNG(w io.Writer, img *Image3[float32]) error {
	return png.Encode(w, NRGBA(img))
}

// WritePNGFile writes img as an 8-bit PNG to path.
func WritePNGFile(path string, img *Image3[float32]) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodePNG(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
