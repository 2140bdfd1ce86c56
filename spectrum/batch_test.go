package spectrum

import (
	"context"
	"errors"
	goimage "image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hueshift/hlslvec/hwy/contrib/image"
	"github.com/hueshift/hlslvec/hwy/contrib/workerpool"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func setupBatch(t *testing.T) (*Batch, string) {
	t.Helper()
	dir := t.TempDir()
	input := filepath.Join(dir, "photo.png")
	if err := image.WritePNGFile(input, gradient(6, 4)); err != nil {
		t.Fatal(err)
	}
	spectra := filepath.Join(dir, "spectra")
	if err := os.Mkdir(spectra, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(spectra, "a.json"), `{"spectra": [
		{"nodes": [{"position": 0, "color": "#ff0000"}, {"position": 1, "color": "#ffff00"}]},
		{"nodes": [{"position": 0, "color": "#0000ff"}]}
	]}`)
	writeFile(t, filepath.Join(spectra, "b.yaml"), "spectra:\n  - nodes:\n      - {position: 0, color: \"#00ff00\"}\n")
	writeFile(t, filepath.Join(spectra, "notes.txt"), "ignored")

	noise := filepath.Join(dir, "noise.png")
	f, err := os.Create(noise)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, halfWhite(4, 4)); err != nil {
		t.Fatal(err)
	}
	f.Close()

	out := filepath.Join(dir, "out")
	return &Batch{Input: input, SpectraDir: spectra, OutputDir: out, Noise: noise}, out
}

func TestBatch_Run(t *testing.T) {
	b, out := setupBatch(t)
	jobs, rows := workerpool.New(2), workerpool.New(2)
	defer jobs.Close()
	defer rows.Close()
	b.Jobs = jobs
	b.Applier = NewApplier(0.5)
	b.Applier.Rows = rows

	written, err := b.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []string{
		filepath.Join(out, "a_1.png"),
		filepath.Join(out, "a_2.png"),
		filepath.Join(out, "a_dual.png"),
		filepath.Join(out, "b_1.png"),
	}
	if diff := cmp.Diff(want, written); diff != "" {
		t.Errorf("Run() written mismatch (-want +got):\n%s", diff)
	}
	for _, path := range want {
		f, err := os.Open(path)
		if err != nil {
			t.Fatal(err)
		}
		cfg, _, err := goimage.DecodeConfig(f)
		f.Close()
		if err != nil || cfg.Width != 6 || cfg.Height != 4 {
			t.Errorf("%s: config %+v, %v; want a 6x4 image", path, cfg, err)
		}
	}
}

func TestBatch_SkipsInvalidFiles(t *testing.T) {
	b, out := setupBatch(t)
	b.Noise = ""
	writeFile(t, filepath.Join(b.SpectraDir, "bad.json"), `{"spectra": [{"nodes": []}]}`)

	written, err := b.Run(context.Background())
	if !errors.Is(err, ErrInvalidSpectrum) {
		t.Errorf("Run() error = %v, want ErrInvalidSpectrum", err)
	}
	want := []string{
		filepath.Join(out, "a_1.png"),
		filepath.Join(out, "a_2.png"),
		filepath.Join(out, "b_1.png"),
	}
	if diff := cmp.Diff(want, written); diff != "" {
		t.Errorf("Run() written mismatch (-want +got):\n%s", diff)
	}
}

func TestBatch_Canceled(t *testing.T) {
	b, _ := setupBatch(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	written, err := b.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if len(written) != 0 {
		t.Errorf("Run() wrote %v after cancellation", written)
	}
}

func TestBatch_MissingInput(t *testing.T) {
	b, _ := setupBatch(t)
	b.Input = filepath.Join(t.TempDir(), "missing.png")
	if _, err := b.Run(context.Background()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Run() error = %v, want os.ErrNotExist", err)
	}
}

func TestSpectrumFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"z.json", "a.yml", "m.yaml", "readme.md"} {
		writeFile(t, filepath.Join(dir, name), "")
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0o755); err != nil {
		t.Fatal(err)
	}
	got, err := SpectrumFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "a.yml"), filepath.Join(dir, "m.yaml"), filepath.Join(dir, "z.json")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SpectrumFiles mismatch (-want +got):\n%s", diff)
	}
}
