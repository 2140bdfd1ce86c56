package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"
	"golang.org/x/tools/txtar"

	"github.com/hueshift/hlslvec/hlsl"
	"github.com/hueshift/hlslvec/hwy/contrib/image"
)

// run executes the command line args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand(viper.New())
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestGen_BuiltinShader(t *testing.T) {
	ar, err := txtar.ParseFile("../../transpile/testdata/numpy.txtar")
	if err != nil {
		t.Fatal(err)
	}
	var want string
	for _, f := range ar.Files {
		if f.Name == "module.py" {
			want = strings.Replace(string(f.Data), "# Source: shader.hlsl", "# Source: "+defaultShaderName, 1)
		}
	}

	got, _, err := run(t, "gen")
	if err != nil {
		t.Fatalf("gen: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("gen output mismatch (-want +got):\n%s", diff)
	}
}

func TestGen_OutputFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "module.py")
	stdout, stderr, err := run(t, "gen", "--output", out)
	if err != nil {
		t.Fatalf("gen: %v", err)
	}
	if stdout != "" {
		t.Errorf("gen --output wrote to stdout: %q", stdout)
	}
	if !strings.Contains(stderr, `"msg":"generated"`) {
		t.Errorf("expected a JSON log line on stderr, got %q", stderr)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"rgb_to_hsv", "hsv_to_rgb", "lookup_spectrum_hsv", "apply_spectrum"} {
		if !strings.Contains(string(data), "def "+name+"(") {
			t.Errorf("module is missing %s", name)
		}
	}
}

func TestGen_Errors(t *testing.T) {
	dir := t.TempDir()
	shader := filepath.Join(dir, "empty.hlsl")
	if err := os.WriteFile(shader, []byte("// nothing here\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		args   []string
		target error
	}{
		{"unknown target", []string{"gen", "--target", "cobol"}, nil},
		{"missing entry point", []string{"gen", "--entry", "NoSuchMain"}, hlsl.ErrFunctionNotFound},
		{"empty shader", []string{"gen", "--shader", shader}, hlsl.ErrFunctionNotFound},
		{"missing shader", []string{"gen", "--shader", filepath.Join(dir, "missing.hlsl")}, hlsl.ErrSourceUnavailable},
		{"extra args", []string{"gen", "extra"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("error = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestGen_Environment(t *testing.T) {
	t.Setenv("HLSLVEC_ENTRY", "FromEnvironment")
	_, _, err := run(t, "gen")
	if !errors.Is(err, hlsl.ErrFunctionNotFound) || !strings.Contains(err.Error(), "FromEnvironment") {
		t.Errorf("gen with HLSLVEC_ENTRY: error = %v", err)
	}
}

func TestGen_ConfigFile(t *testing.T) {
	config := filepath.Join(t.TempDir(), "hlslvec.yaml")
	if err := os.WriteFile(config, []byte("target: cobol\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err := run(t, "gen", "--config", config)
	if err == nil || !strings.Contains(err.Error(), "cobol") {
		t.Errorf("gen with config target: error = %v, want unknown target cobol", err)
	}

	// Flags take precedence over the config file.
	if _, _, err := run(t, "gen", "--config", config, "--target", "numpy"); err != nil {
		t.Errorf("gen with flag override: %v", err)
	}

	if _, _, err := run(t, "gen", "--config", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("gen with a missing config file should fail")
	}
}

func TestApply(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "photo.png")
	img := image.NewImage3[float32](5, 3)
	for x := range 5 {
		img.Set(x, 1, [3]float32{float32(x) / 4, 0.5, 0.25})
	}
	if err := image.WritePNGFile(input, img); err != nil {
		t.Fatal(err)
	}
	spectra := filepath.Join(dir, "spectra")
	if err := os.Mkdir(spectra, 0o755); err != nil {
		t.Fatal(err)
	}
	def := `{"spectra": [{"nodes": [{"position": 0, "color": "#000000"}, {"position": 1, "color": "#ffffff"}]}]}`
	if err := os.WriteFile(filepath.Join(spectra, "mono.json"), []byte(def), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out")

	_, _, err := run(t, "apply", "--input", input, "--spectra", spectra, "--out-dir", out, "--strength", "0.5", "-j", "2")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	got, err := image.ReadFile(filepath.Join(out, "mono_1.png"))
	if err != nil {
		t.Fatal(err)
	}
	if got.Width() != 5 || got.Height() != 3 {
		t.Errorf("output size = %dx%d, want 5x3", got.Width(), got.Height())
	}
}

func TestApply_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no input", []string{"apply", "--spectra", "x"}},
		{"no spectra", []string{"apply", "--input", "x.png"}},
		{"strength", []string{"apply", "--input", "x.png", "--spectra", "x", "--strength", "1.5"}},
		{"missing input", []string{"apply", "--input", "missing.png", "--spectra", "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := run(t, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestApply_Help(t *testing.T) {
	stdout, _, err := run(t, "apply", "--help")
	if err != nil {
		t.Fatal(err)
	}
	for _, flag := range []string{"--input", "--spectra", "--out-dir", "--noise", "--strength"} {
		if !strings.Contains(stdout, flag) {
			t.Errorf("apply help is missing %s", flag)
		}
	}
}

func TestCPUInfo(t *testing.T) {
	stdout, _, err := run(t, "cpuinfo")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"GOARCH:", "Dispatch level:", "float32 lanes:"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("cpuinfo output missing %q:\n%s", want, stdout)
		}
	}
}
