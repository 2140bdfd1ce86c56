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

package hlsl

import (
	"regexp"
	"strconv"
)

// constantPattern matches "static const <type> <name> = <decimal>;".
// Only plain decimal literals with an optional f/h suffix qualify; signs,
// exponents, hex and expressions do not match.
var constantPattern = regexp.MustCompile(`static\s+const\s+\w+\s+(\w+)\s*=\s*([\d.]+)[fFhH]?\s*;`)

// ConstantTable maps constant names to their values.
// Names keep the order of their first declaration.
type ConstantTable struct {
	names  []string
	values map[string]float64
}

// ExtractConstants scans text for static scalar constants.
// A later declaration of the same name overwrites the earlier value.
// Literals that fit the pattern but do not parse (such as "1.2.3") are
// skipped, leaving any previous value in place.
func ExtractConstants(text string) *ConstantTable {
	t := &ConstantTable{values: make(map[string]float64)}
	for _, m := range constantPattern.FindAllStringSubmatch(text, -1) {
		name, literal := m[1], m[2]
		value, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			continue
		}
		if _, seen := t.values[name]; !seen {
			t.names = append(t.names, name)
		}
		t.values[name] = value
	}
	return t
}

// Lookup returns the value of the named constant.
func (t *ConstantTable) Lookup(name string) (float64, bool) {
	v, ok := t.values[name]
	return v, ok
}

// Names returns the constant names in declaration order.
func (t *ConstantTable) Names() []string {
	return append([]string(nil), t.names...)
}

// Len returns the number of distinct constants.
func (t *ConstantTable) Len() int { return len(t.names) }
