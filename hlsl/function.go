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
	"fmt"
	"regexp"
	"strings"
)

// FunctionRecord is one located function definition. Params and Body are the
// raw text between the delimiters, trimmed of surrounding whitespace.
type FunctionRecord struct {
	Name       string
	ReturnType string
	Params     string
	Body       string
}

// functionPattern matches a definition of name anywhere a declaration can
// start, so attribute prefixes such as "[earlydepthstencil]" are allowed:
//
//	[static|inline|precise]* <type> name(<params>) [: SEMANTIC] {
//	    ...
//	}
//
// The body ends at the first "}" in column zero. Parameter lists may not
// contain parentheses. Call sites never match: they are not followed by "{".
func functionPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?ms)(?:^|[^\w.])(?:(?:static|inline|precise)\s+)*(\w+)\s+` +
		regexp.QuoteMeta(name) +
		`\s*\(([^)]*)\)\s*(?::\s*\w+\s*)?\{(.*?)\n\}`)
}

// Function locates the first definition of name.
// It returns an error wrapping ErrFunctionNotFound when there is none.
func (s *Source) Function(name string) (FunctionRecord, error) {
	m := functionPattern(name).FindStringSubmatch(s.text)
	if m == nil {
		return FunctionRecord{}, fmt.Errorf("%w: %s", ErrFunctionNotFound, name)
	}
	return FunctionRecord{
		Name:       name,
		ReturnType: m[1],
		Params:     strings.TrimSpace(m[2]),
		Body:       strings.TrimSpace(m[3]),
	}, nil
}

// Count returns how many definitions of name the source contains.
func (s *Source) Count(name string) int {
	return len(functionPattern(name).FindAllStringIndex(s.text, -1))
}
