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
	"regexp"
	"strings"

	"github.com/hueshift/hlslvec/hlsl"
)

// Rewriter turns HLSL expressions into array expressions of a Target.
// It is a fixed sequence of textual substitutions over a known vocabulary;
// anything outside that vocabulary passes through unchanged.
//
// Intrinsic and constructor arguments are matched non-greedily up to the
// first closing parenthesis, so arguments that themselves contain
// parentheses are not rewritten correctly.
//
// A Rewriter is immutable after construction and safe for concurrent use.
type Rewriter struct {
	target       Target
	intrinsics   []rule
	swizzles     []swizzleRule
	constants    []rule
	constructors []rule
}

type rule struct {
	re   *regexp.Regexp
	repl string
}

type swizzleRule struct {
	re         *regexp.Regexp
	scalar     string
	vectorized string
}

// NewRewriter compiles the rewrite rules for target. Constants substitute in
// the table's declaration order; a nil table substitutes nothing.
func NewRewriter(constants *hlsl.ConstantTable, target Target) *Rewriter {
	r := &Rewriter{target: target}

	for _, in := range target.Intrinsics {
		args := make([]string, in.Arity)
		for i := range args {
			args[i] = `(.*?)`
		}
		pattern := `\b` + regexp.QuoteMeta(in.Name) + `\s*\(` + strings.Join(args, `,\s*`) + `\)`
		r.intrinsics = append(r.intrinsics, rule{regexp.MustCompile(pattern), in.Template})
	}

	for _, sw := range target.Swizzles {
		r.swizzles = append(r.swizzles, swizzleRule{
			re:         regexp.MustCompile(`\.` + regexp.QuoteMeta(sw.Accessor) + `\b`),
			scalar:     fmt.Sprintf(target.ScalarIndex, sw.Component),
			vectorized: fmt.Sprintf(target.VectorizedIndex, sw.Component),
		})
	}

	if constants != nil {
		for _, name := range constants.Names() {
			v, _ := constants.Lookup(name)
			r.constants = append(r.constants, rule{
				re:   regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`),
				repl: target.FormatFloat(v),
			})
		}
	}

	for _, c := range target.Constructors {
		r.constructors = append(r.constructors, rule{
			re:   regexp.MustCompile(`\b` + regexp.QuoteMeta(c.Type) + `\s*\((.*?)\)`),
			repl: fmt.Sprintf(c.Pattern, "${1}"),
		})
	}
	return r
}

// Target returns the dialect the rewriter emits.
func (r *Rewriter) Target() Target { return r.target }

// Rewrite applies, in order: intrinsic calls, swizzles, constant
// substitution and vector constructors. With vectorized set, component
// access indexes the trailing axis of a batch; otherwise it indexes a
// single vector.
func (r *Rewriter) Rewrite(expr string, vectorized bool) string {
	expr = strings.TrimSpace(expr)

	for _, in := range r.intrinsics {
		expr = in.re.ReplaceAllString(expr, in.repl)
	}

	for _, sw := range r.swizzles {
		repl := sw.scalar
		if vectorized {
			repl = sw.vectorized
		}
		expr = sw.re.ReplaceAllLiteralString(expr, repl)
	}

	for _, c := range r.constants {
		expr = c.re.ReplaceAllLiteralString(expr, c.repl)
	}

	for _, c := range r.constructors {
		expr = c.re.ReplaceAllString(expr, c.repl)
	}
	return expr
}
