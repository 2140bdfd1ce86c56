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
	"errors"
	"fmt"
	"strings"
)

// ErrDeclarationOrder is returned when a routine calls another routine that
// is not declared before it.
var ErrDeclarationOrder = errors.New("routine declared before its callee")

// Assemble joins the banner, the runtime import and the routines into one
// source text, keeping the routines in the order given.
func Assemble(m *Module) (string, error) {
	declared := make(map[string]bool, len(m.Routines))
	for _, r := range m.Routines {
		for _, callee := range r.Calls {
			if !declared[callee] {
				return "", fmt.Errorf("%w: %s calls %s", ErrDeclarationOrder, r.Name, callee)
			}
		}
		declared[r.Name] = true
	}

	parts := make([]string, 0, len(m.Banner)+len(m.Routines)+2)
	parts = append(parts, m.Banner...)
	parts = append(parts, m.Target.Import, "")
	for _, r := range m.Routines {
		parts = append(parts, r.Source)
	}
	return strings.Join(parts, "\n"), nil
}

// Text is Assemble(m).
func (m *Module) Text() (string, error) {
	return Assemble(m)
}
