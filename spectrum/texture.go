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
	"github.com/hueshift/hlslvec/hwy"
	"github.com/hueshift/hlslvec/hwy/contrib/image"
)

// DefaultTextureWidth is one sample per degree of hue.
const DefaultTextureWidth = 360

// Texture samples the gradient into a 1×width RGB strip. Sample i sits at
// t = i/(width-1) and takes the color of the first segment [p1, p2] that
// contains t, linearly interpolated in RGB. Samples no segment covers stay
// black.
func Texture[T hwy.Floats](s Spectrum, width int) (*image.Image3[T], error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	colors := make([][3]float64, len(s.Nodes))
	for i, n := range s.Nodes {
		c, err := n.RGB()
		if err != nil {
			return nil, err
		}
		colors[i] = [3]float64{c.R, c.G, c.B}
	}

	tex := image.NewImage3[T](width, 1)
	for i := range width {
		t := 0.0
		if width > 1 {
			t = float64(i) / float64(width-1)
		}
		for j := 0; j+1 < len(s.Nodes); j++ {
			p1, p2 := s.Nodes[j].Position, s.Nodes[j+1].Position
			if t < p1 || t > p2 {
				continue
			}
			seg := 0.0
			if p2 > p1 {
				seg = (t - p1) / (p2 - p1)
			}
			a, b := colors[j], colors[j+1]
			tex.Set(i, 0, [3]T{
				T(a[0] + (b[0]-a[0])*seg),
				T(a[1] + (b[1]-a[1])*seg),
				T(a[2] + (b[2]-a[2])*seg),
			})
			break
		}
	}
	return tex, nil
}
