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

// Package image provides SIMD-friendly planar image types and the color
// kernels the spectrum pipeline runs over them.
//
// The core types are Image[T] for single-channel images and Image3[T] for
// three-plane images (RGB, or HSV with hue in degrees). Rows are aligned to
// SIMD vector width for efficient vectorized processing.
//
// # Color Conversion
//
//	RGBToHSV(src, dst) // H in [0, 360), S and V in [0, 1]
//	HSVToRGB(src, dst) // inverse, six 60° sectors
//
// # Point Operations
//
//	ClampImage(img, out, minVal, maxVal) // clamp to range
//	SelectImage3(mask, a, b, out)        // a where mask > 0, else b
//
// # Codecs
//
// ReadFile and Decode accept PNG, JPEG, GIF, BMP, TIFF and WebP input and
// produce normalized float32 RGB planes. EncodePNG and WritePNGFile clip to
// [0, 1] and write opaque 8-bit PNGs.
//
//	img, err := image.ReadFile("photo.png")
//	hsv := image.NewImage3[float32](img.Width(), img.Height())
//	image.RGBToHSV(img, hsv)
package image
