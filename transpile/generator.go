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

// Package transpile turns the color functions of an HLSL spectrum shader
// into image-wide routines: NumPy source text for external pipelines, and
// the equivalent native Go kernels in a Kernels registry.
package transpile

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/samber/lo"

	"github.com/hueshift/hlslvec/hlsl"
)

// Generator orchestrates routine generation for one shader source.
type Generator struct {
	Source     *hlsl.Source // loaded shader (required)
	Target     Target       // output dialect; zero value means NumPyTarget
	EntryPoint string       // pixel shader backing apply_spectrum; default DefaultEntryPoint
	SourceName string       // path shown in the banner; default Source.Path()
	Logger     *slog.Logger // nil discards
}

// Module is the ordered set of generated routines plus its banner.
type Module struct {
	Target   Target
	Banner   []string
	Routines []Routine
}

// Generate locates every backing shader function and emits the four
// routines. A missing function aborts the whole module: the routines call
// each other, so a partial module is never returned.
func (g *Generator) Generate() (*Module, error) {
	if g.Source == nil {
		return nil, fmt.Errorf("generate: no shader source")
	}
	target := g.Target
	if target.Name == "" {
		target = NumPyTarget()
	}
	entry := g.EntryPoint
	if entry == "" {
		entry = DefaultEntryPoint
	}
	name := g.SourceName
	if name == "" {
		name = g.Source.Path()
	}
	logger := g.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	rw := NewRewriter(g.Source.Constants(), target)
	logger.Debug("constants extracted", "count", g.Source.Constants().Len(), "names", g.Source.Constants().Names())

	routines := make([]Routine, 0, len(routineSpecs))
	for _, spec := range routineSpecs {
		origin := lo.Ternary(spec.origin == "", entry, spec.origin)
		fn, err := g.Source.Function(origin)
		if err != nil {
			return nil, fmt.Errorf("generate %s: %w", spec.name, err)
		}
		if n := g.Source.Count(origin); n > 1 {
			logger.Warn("multiple definitions, using the first", "function", origin, "count", n)
		}
		logger.Debug("routine generated", "routine", spec.name, "origin", origin, "return_type", fn.ReturnType)

		routines = append(routines, Routine{
			Name:      spec.name,
			Signature: spec.signature,
			Calls:     spec.calls,
			Origin:    origin,
			Source:    spec.emit(rw),
		})
	}

	return &Module{
		Target: target,
		Banner: []string{
			target.Comment + " Auto-generated from HLSL shader - DO NOT EDIT DIRECTLY",
			target.Comment + " Source: " + name,
		},
		Routines: routines,
	}, nil
}

// Names returns the routine names in declaration order.
func (m *Module) Names() []string {
	return lo.Map(m.Routines, func(r Routine, _ int) string { return r.Name })
}
