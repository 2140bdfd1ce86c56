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
	"strings"
)

// Routine names, in declaration order.
const (
	RGBToHSVName          = "rgb_to_hsv"
	HSVToRGBName          = "hsv_to_rgb"
	LookupSpectrumHSVName = "lookup_spectrum_hsv"
	ApplySpectrumName     = "apply_spectrum"
)

// DefaultEntryPoint is the pixel shader whose blend apply_spectrum mirrors.
const DefaultEntryPoint = "PS_Main"

// Routine is one generated, image-wide function.
type Routine struct {
	Name      string   // emitted function name
	Signature string   // parameter list as emitted
	Calls     []string // generated routines referenced from Source
	Origin    string   // shader function whose existence backs the routine
	Source    string   // emitted text, newline terminated
}

// routineSpec describes how to produce one Routine. emit receives the
// rewriter so blend expressions can be authored in HLSL.
type routineSpec struct {
	name      string
	origin    string // empty means the generator's entry point
	signature string
	calls     []string
	emit      func(r *Rewriter) string
}

// blendExpressions are the per-pixel blend of the pixel shader, as HLSL.
var blendExpressions = []struct{ name, hlsl string }{
	{"final_hue", "lerp(input_hsv.x, spectrum_hsv.x, strength)"},
	{"final_saturation", "input_hsv.y * lerp(1.0, spectrum_hsv.y, strength)"},
	{"final_value", "input_hsv.z * ((1.0 - input_hsv.y) + input_hsv.y * lerp(1.0, spectrum_hsv.z, strength))"},
}

var routineSpecs = []routineSpec{
	{
		name:      RGBToHSVName,
		origin:    "rgb_to_hsv",
		signature: "rgb",
		emit:      func(*Rewriter) string { return rgbToHSVSource },
	},
	{
		name:      HSVToRGBName,
		origin:    "hsv_to_rgb",
		signature: "hsv",
		emit:      func(*Rewriter) string { return hsvToRGBSource },
	},
	{
		name:      LookupSpectrumHSVName,
		origin:    "lookup_spectrum_hsv",
		signature: "spectrum_texture, hue",
		calls:     []string{RGBToHSVName},
		emit:      func(*Rewriter) string { return lookupSpectrumHSVSource },
	},
	{
		name:      ApplySpectrumName,
		signature: "image_rgb, spectrum_texture, strength=1.0",
		calls:     []string{RGBToHSVName, LookupSpectrumHSVName, HSVToRGBName},
		emit:      emitApplySpectrum,
	},
}

func emitApplySpectrum(r *Rewriter) string {
	var b strings.Builder
	b.WriteString("def apply_spectrum(image_rgb, spectrum_texture, strength=1.0):\n")
	b.WriteString("    input_hsv = rgb_to_hsv(image_rgb)\n\n")
	b.WriteString("    spectrum_hsv = lookup_spectrum_hsv(spectrum_texture, input_hsv[..., 0])\n\n")
	for _, e := range blendExpressions {
		fmt.Fprintf(&b, "    %s = %s\n", e.name, r.Rewrite(e.hlsl, true))
	}
	b.WriteString("\n    final_hsv = np.stack([final_hue, final_saturation, final_value], axis=-1)\n\n")
	b.WriteString("    return hsv_to_rgb(final_hsv)\n")
	return b.String()
}

const rgbToHSVSource = `def rgb_to_hsv(rgb):
    r, g, b = rgb[..., 0], rgb[..., 1], rgb[..., 2]

    cmax = np.maximum(r, np.maximum(g, b))
    cmin = np.minimum(r, np.minimum(g, b))
    delta = cmax - cmin

    h = np.zeros_like(cmax)
    mask = delta > 0.0001
    safe = np.where(mask, delta, 1.0)

    r_max = (cmax == r) & mask
    g_max = (cmax == g) & mask
    b_max = (cmax == b) & mask

    h = np.where(r_max, 60.0 * (((g - b) / safe) % 6.0), h)
    h = np.where(g_max, 60.0 * ((b - r) / safe + 2.0), h)
    h = np.where(b_max, 60.0 * ((r - g) / safe + 4.0), h)
    h = np.where(h < 0, h + 360.0, h)

    s = np.where(cmax > 0.0001, delta / np.where(cmax > 0.0001, cmax, 1.0), 0.0)
    v = cmax

    return np.stack([h, s, v], axis=-1)
`

const hsvToRGBSource = `def hsv_to_rgb(hsv):
    h, s, v = hsv[..., 0], hsv[..., 1], hsv[..., 2]

    h = (h % 360.0) / 60.0
    c = v * s
    x = c * (1.0 - np.abs(h % 2.0 - 1.0))
    m = v - c
    z = np.zeros_like(c)

    sectors = [h < 1, h < 2, h < 3, h < 4, h < 5]
    r = np.select(sectors, [c, x, z, z, x], default=c)
    g = np.select(sectors, [x, c, c, x, z], default=z)
    b = np.select(sectors, [z, z, x, c, c], default=x)

    return np.stack([r + m, g + m, b + m], axis=-1)
`

const lookupSpectrumHSVSource = `def lookup_spectrum_hsv(spectrum_texture, hue):
    width = spectrum_texture.shape[1]
    hue = np.where((hue < 0.0) | (hue > 360.0), hue % 360.0, hue)
    u = np.clip((hue / 360.0 * (width - 1)).astype(int), 0, width - 1)

    spectrum_rgb = spectrum_texture[0, u]
    return rgb_to_hsv(spectrum_rgb)
`
