package transpile

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"

	"github.com/hueshift/hlslvec/hlsl"
)

// stubShader defines each named function with a trivial body.
func stubShader(names ...string) string {
	var b strings.Builder
	for _, name := range names {
		b.WriteString("float3 " + name + "(float3 c)\n{\n    return c;\n}\n\n")
	}
	return b.String()
}

var allOrigins = []string{"rgb_to_hsv", "hsv_to_rgb", "lookup_spectrum_hsv", "PS_Main"}

func TestGenerate_Golden(t *testing.T) {
	ar, err := txtar.ParseFile("testdata/numpy.txtar")
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	files := make(map[string]string)
	for _, f := range ar.Files {
		files[f.Name] = string(f.Data)
	}

	gen := &Generator{Source: hlsl.Parse("shader.hlsl", files["shader.hlsl"])}
	m, err := gen.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	got, err := m.Text()
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if diff := cmp.Diff(files["module.py"], got); diff != "" {
		t.Errorf("generated module mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_Routines(t *testing.T) {
	gen := &Generator{Source: hlsl.Parse("stub.hlsl", stubShader(allOrigins...))}
	m, err := gen.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	want := []string{RGBToHSVName, HSVToRGBName, LookupSpectrumHSVName, ApplySpectrumName}
	if diff := cmp.Diff(want, m.Names()); diff != "" {
		t.Errorf("routine order mismatch (-want +got):\n%s", diff)
	}
	for _, r := range m.Routines {
		if !strings.HasPrefix(r.Source, "def "+r.Name+"("+r.Signature+"):\n") {
			t.Errorf("routine %s does not start with its signature: %q", r.Name, firstLine(r.Source))
		}
		if !strings.HasSuffix(r.Source, "\n") {
			t.Errorf("routine %s is not newline terminated", r.Name)
		}
	}
	if got := m.Routines[3].Origin; got != DefaultEntryPoint {
		t.Errorf("apply_spectrum origin = %q, want %q", got, DefaultEntryPoint)
	}
	if m.Banner[1] != "# Source: stub.hlsl" {
		t.Errorf("banner = %q", m.Banner)
	}
}

func TestGenerate_BlendUsesRewriter(t *testing.T) {
	gen := &Generator{Source: hlsl.Parse("", stubShader(allOrigins...))}
	m, err := gen.Generate()
	if err != nil {
		t.Fatal(err)
	}
	apply := m.Routines[3].Source
	for _, want := range []string{
		"final_hue = ((input_hsv[..., 0]) * (1 - (strength)) + (spectrum_hsv[..., 0]) * (strength))",
		"final_saturation = input_hsv[..., 1] * ((1.0) * (1 - (strength)) + (spectrum_hsv[..., 1]) * (strength))",
	} {
		if !strings.Contains(apply, want) {
			t.Errorf("apply_spectrum missing %q:\n%s", want, apply)
		}
	}
	if strings.Contains(apply, "lerp") || strings.Contains(apply, ".x") {
		t.Errorf("apply_spectrum still contains HLSL syntax:\n%s", apply)
	}
}

func TestGenerate_FunctionNotFound(t *testing.T) {
	for i, missing := range allOrigins {
		t.Run(missing, func(t *testing.T) {
			present := append(append([]string(nil), allOrigins[:i]...), allOrigins[i+1:]...)
			gen := &Generator{Source: hlsl.Parse("", stubShader(present...))}

			m, err := gen.Generate()
			if !errors.Is(err, hlsl.ErrFunctionNotFound) {
				t.Fatalf("Generate() error = %v, want ErrFunctionNotFound", err)
			}
			if m != nil {
				t.Error("Generate() must not return a partial module")
			}
			if !strings.Contains(err.Error(), missing) {
				t.Errorf("error %q should name %s", err, missing)
			}
		})
	}
}

func TestGenerate_EntryPoint(t *testing.T) {
	src := hlsl.Parse("", stubShader("rgb_to_hsv", "hsv_to_rgb", "lookup_spectrum_hsv", "main_ps"))

	if _, err := (&Generator{Source: src}).Generate(); !errors.Is(err, hlsl.ErrFunctionNotFound) {
		t.Errorf("default entry point: error = %v, want ErrFunctionNotFound", err)
	}
	m, err := (&Generator{Source: src, EntryPoint: "main_ps"}).Generate()
	if err != nil {
		t.Fatalf("EntryPoint main_ps: %v", err)
	}
	if m.Routines[3].Origin != "main_ps" {
		t.Errorf("apply_spectrum origin = %q, want main_ps", m.Routines[3].Origin)
	}
}

func TestGenerate_DuplicateWarning(t *testing.T) {
	var logs bytes.Buffer
	gen := &Generator{
		Source: hlsl.Parse("", stubShader(append(allOrigins, "hsv_to_rgb")...)),
		Logger: slog.New(slog.NewTextHandler(&logs, nil)),
	}
	if _, err := gen.Generate(); err != nil {
		t.Fatal(err)
	}
	out := logs.String()
	if !strings.Contains(out, "multiple definitions") || !strings.Contains(out, "function=hsv_to_rgb") || !strings.Contains(out, "count=2") {
		t.Errorf("expected a duplicate-definition warning, got logs:\n%s", out)
	}
}

func TestGenerate_NoSource(t *testing.T) {
	if _, err := (&Generator{}).Generate(); err == nil {
		t.Error("Generate without a source should fail")
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
