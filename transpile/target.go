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
	"math"
	"strconv"
	"strings"
)

// Target describes how HLSL constructs are spelled in an output dialect.
type Target struct {
	Name    string // "numpy"
	Import  string // runtime import line placed after the banner
	Comment string // line comment prefix

	// Intrinsics are rewritten in slice order. Template references the
	// captured arguments as ${1}, ${2}, ...
	Intrinsics []Intrinsic

	// Swizzles map accessor suffixes (without the dot) to a component index
	// or slice, applied in slice order.
	Swizzles []Swizzle

	ScalarIndex     string // fmt pattern for single-vector access, e.g. "[%s]"
	VectorizedIndex string // fmt pattern for trailing-axis access, e.g. "[..., %s]"

	// Constructors maps a vector type to the fmt pattern its argument list
	// is wrapped in.
	Constructors []Constructor

	// FormatFloat renders a constant value as a float literal.
	FormatFloat func(v float64) string
}

// Intrinsic is a built-in HLSL function with fixed arity.
type Intrinsic struct {
	Name     string
	Arity    int
	Template string
}

// Swizzle is a component accessor.
type Swizzle struct {
	Accessor  string // "r", "rgb"
	Component string // "0", ":3"
}

// Constructor is a vector constructor such as float3(...).
type Constructor struct {
	Type    string
	Pattern string
}

// NumPyTarget returns the NumPy array dialect.
func NumPyTarget() Target {
	return Target{
		Name:    "numpy",
		Import:  "import numpy as np",
		Comment: "#",
		Intrinsics: []Intrinsic{
			{Name: "fmod", Arity: 2, Template: "((${1}) % (${2}))"},
			{Name: "lerp", Arity: 3, Template: "((${1}) * (1 - (${3})) + (${2}) * (${3}))"},
		},
		Swizzles: []Swizzle{
			{"r", "0"}, {"g", "1"}, {"b", "2"}, {"a", "3"},
			{"x", "0"}, {"y", "1"}, {"z", "2"}, {"w", "3"},
			{"rgb", ":3"}, {"xyz", ":3"},
		},
		ScalarIndex:     "[%s]",
		VectorizedIndex: "[..., %s]",
		Constructors: []Constructor{
			{Type: "float3", Pattern: "np.array([%s])"},
			{Type: "float4", Pattern: "np.array([%s])"},
		},
		FormatFloat: pythonFloat,
	}
}

// GetTarget returns the target with the given name.
func GetTarget(name string) (Target, error) {
	switch strings.ToLower(name) {
	case "numpy", "python", "":
		return NumPyTarget(), nil
	default:
		return Target{}, fmt.Errorf("unknown target: %s", name)
	}
}

// AvailableTargets returns the names accepted by GetTarget.
func AvailableTargets() []string {
	return []string{"numpy"}
}

// pythonFloat renders v the way Python's repr does: fixed notation with at
// least one fractional digit inside [1e-4, 1e16), shortest exponent form
// outside it.
func pythonFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	if abs := math.Abs(v); v == 0 || (abs >= 1e-4 && abs < 1e16) {
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}
	return strconv.FormatFloat(v, 'e', -1, 64)
}
