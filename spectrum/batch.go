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

package spectrum

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/multierr"

	"github.com/hueshift/hlslvec/hwy/contrib/image"
	"github.com/hueshift/hlslvec/hwy/contrib/workerpool"
)

// Batch applies every spectrum found in a directory to one image.
type Batch struct {
	Input      string
	SpectraDir string
	OutputDir  string

	// Noise, when set, names a pattern image; files with at least two
	// spectra then also get a <name>_dual.png.
	Noise string

	Applier *Applier

	// Jobs runs outputs in parallel. A nil pool processes them in order.
	Jobs *workerpool.Pool

	Logger *slog.Logger
}

type job struct {
	name   string
	index  int
	first  Spectrum
	second *Spectrum
}

func (j job) output() string {
	if j.second != nil {
		return j.name + "_dual.png"
	}
	return fmt.Sprintf("%s_%d.png", j.name, j.index)
}

// SpectrumFiles lists the spectrum files of dir in name order.
func SpectrumFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	files := lo.FilterMap(entries, func(e os.DirEntry, _ int) (string, bool) {
		return filepath.Join(dir, e.Name()), !e.IsDir() && Format(e.Name()) != ""
	})
	slices.Sort(files)
	return files, nil
}

// Run processes every spectrum and returns the written paths. A file that
// fails to load is reported and skipped; the remaining files still run.
func (b *Batch) Run(ctx context.Context) ([]string, error) {
	logger := lo.Ternary(b.Logger != nil, b.Logger, slog.Default())
	applier := lo.Ternary(b.Applier != nil, b.Applier, NewApplier(1))

	img, err := image.ReadFile(b.Input)
	if err != nil {
		return nil, err
	}
	var noise *Noise
	if b.Noise != "" {
		if noise, err = LoadNoise(b.Noise); err != nil {
			return nil, err
		}
	}
	files, err := SpectrumFiles(b.SpectraDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		logger.Warn("no spectrum files found", "dir", b.SpectraDir)
	}
	if err := os.MkdirAll(b.OutputDir, 0o755); err != nil {
		return nil, err
	}

	var errs error
	var jobs []job
	for _, path := range files {
		f, err := Load(path)
		if err != nil {
			logger.Error("skipping spectrum file", "path", path, "error", err)
			errs = multierr.Append(errs, err)
			continue
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		for i, s := range f.Spectra {
			jobs = append(jobs, job{name: name, index: i + 1, first: s})
		}
		if noise != nil && len(f.Spectra) >= 2 {
			jobs = append(jobs, job{name: name, first: f.Spectra[0], second: &f.Spectra[1]})
		}
	}

	written := make([]string, len(jobs))
	run := func(ctx context.Context, i int) error {
		j := jobs[i]
		var out *image.Image3[float32]
		var err error
		if j.second != nil {
			out, err = applier.ApplyDual(img, j.first, *j.second, noise)
		} else {
			out, err = applier.Apply(img, j.first)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", j.output(), err)
		}
		path := filepath.Join(b.OutputDir, j.output())
		if err := image.WritePNGFile(path, out); err != nil {
			return err
		}
		logger.Info("wrote", "path", path)
		written[i] = path
		return nil
	}

	if b.Jobs != nil {
		errs = multierr.Append(errs, b.Jobs.ForEach(ctx, len(jobs), run))
	} else {
		for i := range jobs {
			if err := ctx.Err(); err != nil {
				errs = multierr.Append(errs, err)
				break
			}
			errs = multierr.Append(errs, run(ctx, i))
		}
	}
	return lo.Compact(written), errs
}
