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

// Package hlsl extracts the pieces of an HLSL shader that the transpiler
// understands: static scalar constants and top-level function definitions.
//
// Matching is textual. Nothing here parses HLSL grammar; the patterns cover
// the small, known vocabulary the color kernels are written in.
package hlsl

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	// ErrSourceUnavailable is returned when the shader file cannot be read.
	ErrSourceUnavailable = errors.New("shader source unavailable")

	// ErrFunctionNotFound is returned when no definition of a function exists.
	ErrFunctionNotFound = errors.New("function not found")
)

// Source is shader text loaded once, with its constant table built eagerly.
// A Source is immutable and safe for concurrent use.
type Source struct {
	path      string
	text      string
	constants *ConstantTable
}

// Load reads the shader at path. A UTF-8 or UTF-16 byte order mark selects
// the encoding and is stripped; without one the file is read as UTF-8.
func Load(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer f.Close()

	text, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, path, err)
	}
	return Parse(path, text), nil
}

// Decode reads all of r as shader text, honoring a leading byte order mark.
func Decode(r io.Reader) (string, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(r, dec))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Parse wraps already-decoded shader text. path is only used for reporting.
func Parse(path, text string) *Source {
	return &Source{
		path:      path,
		text:      text,
		constants: ExtractConstants(text),
	}
}

// Path returns the path the source was loaded from.
func (s *Source) Path() string { return s.path }

// Text returns the full shader text.
func (s *Source) Text() string { return s.text }

// Constants returns the constant table extracted from the whole source.
func (s *Source) Constants() *ConstantTable { return s.constants }
