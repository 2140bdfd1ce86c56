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
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/hueshift/hlslvec/hwy/contrib/workerpool"
	"github.com/hueshift/hlslvec/spectrum"
	"github.com/hueshift/hlslvec/transpile"
)

func newApplyCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply every spectrum in a directory to an image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, dir := e.v.GetString("input"), e.v.GetString("spectra")
			if input == "" || dir == "" {
				return fmt.Errorf("--input and --spectra are required")
			}
			strength := e.v.GetFloat64("strength")
			if strength < 0 || strength > 1 {
				return fmt.Errorf("--strength %v out of range [0, 1]", strength)
			}

			// The shader must declare every routine the native kernels stand in for.
			m, err := e.generate(transpile.NumPyTarget())
			if err != nil {
				return err
			}
			kernels, err := transpile.Bind[float32](m)
			if err != nil {
				return err
			}

			workers := e.v.GetInt("jobs")
			jobs, rows := workerpool.New(workers), workerpool.New(workers)
			defer jobs.Close()
			defer rows.Close()

			applier := &spectrum.Applier{
				Kernels:      kernels,
				Strength:     float32(strength),
				TextureWidth: e.v.GetInt("texture-width"),
				Rows:         rows,
			}
			b := &spectrum.Batch{
				Input:      input,
				SpectraDir: dir,
				OutputDir:  e.v.GetString("out-dir"),
				Noise:      e.v.GetString("noise"),
				Applier:    applier,
				Jobs:       jobs,
				Logger:     e.logger,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			written, err := b.Run(ctx)
			e.logger.Info("apply finished", "written", len(written), "jobs", jobs.NumWorkers())
			return err
		},
	}
	flags := cmd.Flags()
	flags.StringP("input", "i", "", "input image")
	flags.String("spectra", "", "directory of spectrum files (.json, .yaml)")
	flags.String("out-dir", "output", "output directory, created if missing")
	flags.String("noise", "", "noise image selecting between the first two spectra of each file")
	flags.Float64("strength", 1, "blend strength in [0, 1]")
	flags.Int("texture-width", spectrum.DefaultTextureWidth, "spectrum texture samples")
	flags.IntP("jobs", "j", 0, "parallel workers (default: GOMAXPROCS)")
	return cmd
}
