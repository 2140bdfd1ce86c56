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

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hueshift/hlslvec/transpile"
)

func newGenCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate the vectorized color routines from the shader",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target, err := transpile.GetTarget(e.v.GetString("target"))
			if err != nil {
				return err
			}
			m, err := e.generate(target)
			if err != nil {
				return err
			}
			text, err := m.Text()
			if err != nil {
				return err
			}

			out := e.v.GetString("output")
			if out == "" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), text)
				return err
			}
			if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
				return err
			}
			e.logger.Info("generated", "output", out, "routines", m.Names())
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	cmd.Flags().String("target", "numpy", "output dialect ("+strings.Join(transpile.AvailableTargets(), ", ")+")")
	return cmd
}
