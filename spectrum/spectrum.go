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

// Package spectrum reads gradient definitions, builds their lookup textures
// and runs the spectrum kernels over images.
package spectrum

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// ErrInvalidSpectrum is wrapped by every validation failure.
var ErrInvalidSpectrum = errors.New("invalid spectrum")

// Node is one stop of a gradient. Hue, Saturation and Value, when set,
// override the corresponding component of Color.
type Node struct {
	Position   float64  `json:"position" yaml:"position"`
	Color      string   `json:"color" yaml:"color"`
	Hue        *float64 `json:"hue,omitempty" yaml:"hue,omitempty"`
	Saturation *float64 `json:"saturation,omitempty" yaml:"saturation,omitempty"`
	Value      *float64 `json:"value,omitempty" yaml:"value,omitempty"`
}

// Spectrum is a gradient of nodes ordered by position.
type Spectrum struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
}

// File is the on-disk collection of spectra.
type File struct {
	Spectra []Spectrum `json:"spectra" yaml:"spectra"`
}

// ParseColor parses a six digit hex color, with or without a leading "#".
func ParseColor(hex string) (colorful.Color, error) {
	digits := strings.TrimPrefix(hex, "#")
	if len(digits) != 6 {
		return colorful.Color{}, fmt.Errorf("invalid hex color %q", hex)
	}
	c, err := colorful.Hex("#" + digits)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid hex color %q", hex)
	}
	return c, nil
}

// RGB returns the node color with any HSV overrides applied.
func (n Node) RGB() (colorful.Color, error) {
	c, err := ParseColor(n.Color)
	if err != nil {
		return c, err
	}
	if n.Hue == nil && n.Saturation == nil && n.Value == nil {
		return c, nil
	}
	h, s, v := n.HSV(c)
	return colorful.Hsv(h, s, v), nil
}

// HSV returns the node's HSV: the overrides where present, otherwise the
// components of base.
func (n Node) HSV(base colorful.Color) (h, s, v float64) {
	h, s, v = base.Hsv()
	if n.Hue != nil {
		h = *n.Hue
	}
	if n.Saturation != nil {
		s = *n.Saturation
	}
	if n.Value != nil {
		v = *n.Value
	}
	return h, s, v
}

// Validate reports every problem of the spectrum at once.
func (s Spectrum) Validate() error {
	if len(s.Nodes) == 0 {
		return fmt.Errorf("%w: spectrum must have at least one node", ErrInvalidSpectrum)
	}

	var errs error
	last := 0.0
	for i, n := range s.Nodes {
		fail := func(format string, args ...any) {
			errs = multierr.Append(errs, fmt.Errorf("%w: node %d: %s", ErrInvalidSpectrum, i, fmt.Sprintf(format, args...)))
		}
		switch {
		case n.Position < 0 || n.Position > 1:
			fail("position %v out of range [0, 1]", n.Position)
		case n.Position < last:
			fail("position %v is before the previous node (%v)", n.Position, last)
		default:
			last = n.Position
		}
		if _, err := ParseColor(n.Color); err != nil {
			fail("%v", err)
		}
		if n.Hue != nil && (*n.Hue < 0 || *n.Hue >= 360) {
			fail("hue %v out of range [0, 360)", *n.Hue)
		}
		if n.Saturation != nil && (*n.Saturation < 0 || *n.Saturation > 1) {
			fail("saturation %v out of range [0, 1]", *n.Saturation)
		}
		if n.Value != nil && (*n.Value < 0 || *n.Value > 1) {
			fail("value %v out of range [0, 1]", *n.Value)
		}
	}
	return errs
}

// Validate checks that the file has spectra and that each one is valid.
func (f *File) Validate() error {
	if len(f.Spectra) == 0 {
		return fmt.Errorf("%w: file has no spectra", ErrInvalidSpectrum)
	}
	var errs error
	for i, s := range f.Spectra {
		if err := s.Validate(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("spectrum %d: %w", i+1, err))
		}
	}
	return errs
}

// Parse decodes a spectrum file. format is "json" or "yaml".
func Parse(data []byte, format string) (*File, error) {
	var f File
	switch format {
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSpectrum, err)
		}
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSpectrum, err)
		}
	default:
		return nil, fmt.Errorf("unsupported spectrum format %q", format)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads and validates the spectrum file at path, choosing the decoder
// from its extension.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data, Format(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Format returns the decoder name for path, or "" when it is not a spectrum file.
func Format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	}
	return ""
}
