package hlsl

import (
	"errors"
	"strings"
	"testing"
)

func TestFunction(t *testing.T) {
	src := Parse("inline.hlsl", "float3 rgb_to_hsv(float3 c) {\n    float h = 0.0;\n    return float3(h, 0.0, c.r);\n}\n")

	rec, err := src.Function("rgb_to_hsv")
	if err != nil {
		t.Fatalf("Function(rgb_to_hsv): %v", err)
	}
	if rec.ReturnType != "float3" {
		t.Errorf("ReturnType = %q, want float3", rec.ReturnType)
	}
	if rec.Params != "float3 c" {
		t.Errorf("Params = %q, want %q", rec.Params, "float3 c")
	}
	if want := "float h = 0.0;\n    return float3(h, 0.0, c.r);"; rec.Body != want {
		t.Errorf("Body = %q, want %q", rec.Body, want)
	}
}

func TestFunction_Fixture(t *testing.T) {
	src, err := Load("testdata/spectrum.hlsl")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		name       string
		returnType string
		params     string
		bodyEnd    string
	}{
		{"rgb_to_hsv", "float3", "float3 c", "return float3(h, s, cmax);"},
		{"hsv_to_rgb", "float3", "float3 hsv", "return rgb + m;"},
		{"lookup_spectrum_hsv", "float3", "float hue", "return rgb_to_hsv(spectrum_rgb);"},
		{"PS_Main", "float4", "PS_INPUT input", "color.a);"},
		{"VS_Main", "PS_INPUT", "uint id : SV_VertexID", "return output;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := src.Function(tt.name)
			if err != nil {
				t.Fatalf("Function(%q): %v", tt.name, err)
			}
			if rec.Name != tt.name || rec.ReturnType != tt.returnType || rec.Params != tt.params {
				t.Errorf("Function(%q) = {%q, %q, %q}, want {%q, %q, %q}",
					tt.name, rec.Name, rec.ReturnType, rec.Params, tt.name, tt.returnType, tt.params)
			}
			if !strings.HasSuffix(rec.Body, tt.bodyEnd) {
				t.Errorf("Function(%q).Body ends with %q, want suffix %q", tt.name, lastLine(rec.Body), tt.bodyEnd)
			}
			if got := src.Count(tt.name); got != 1 {
				t.Errorf("Count(%q) = %d, want 1", tt.name, got)
			}
		})
	}
}

func TestFunction_Modifiers(t *testing.T) {
	src := Parse("", "static inline float half_of(float v)\n{\n    return v * 0.5;\n}\n")
	rec, err := src.Function("half_of")
	if err != nil {
		t.Fatalf("Function: %v", err)
	}
	if rec.ReturnType != "float" || rec.Body != "return v * 0.5;" {
		t.Errorf("Function(half_of) = %+v", rec)
	}
}

func TestFunction_Attributes(t *testing.T) {
	tests := []struct {
		name, text string
	}{
		{"own line", "[earlydepthstencil]\nfloat4 PS_Main(PS_INPUT input) : SV_Target\n{\n    return 0;\n}\n"},
		{"same line", "[earlydepthstencil] float4 PS_Main(PS_INPUT input) : SV_Target\n{\n    return 0;\n}\n"},
		{"numthreads", "[numthreads(8, 8, 1)] float4 PS_Main(PS_INPUT input) : SV_Target\n{\n    return 0;\n}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Parse("", tt.text).Function("PS_Main")
			if err != nil {
				t.Fatalf("Function: %v", err)
			}
			if rec.ReturnType != "float4" || rec.Params != "PS_INPUT input" || rec.Body != "return 0;" {
				t.Errorf("Function(PS_Main) = %+v", rec)
			}
		})
	}
}

func TestFunction_NotFound(t *testing.T) {
	src := Parse("", "float3 rgb_to_hsv(float3 c) {\n    return c;\n}\n")

	for _, name := range []string{"hsv_to_rgb", "rgb_to", "rgb_to_hsv2", "PS_Main"} {
		_, err := src.Function(name)
		if !errors.Is(err, ErrFunctionNotFound) {
			t.Errorf("Function(%q) error = %v, want ErrFunctionNotFound", name, err)
		}
		if err != nil && !strings.Contains(err.Error(), name) {
			t.Errorf("Function(%q) error %q should name the function", name, err)
		}
	}
}

func TestFunction_CallIsNotDefinition(t *testing.T) {
	src := Parse("", "float3 wrap(float3 c)\n{\n    return rgb_to_hsv(c);\n}\n")
	if _, err := src.Function("rgb_to_hsv"); !errors.Is(err, ErrFunctionNotFound) {
		t.Errorf("a call site must not be located as a definition, got err = %v", err)
	}

	member := Parse("", "float3 wrap(float3 c)\n{\n    return lib.rgb_to_hsv(c);\n}\n")
	if got := member.Count("rgb_to_hsv"); got != 0 {
		t.Errorf("Count(rgb_to_hsv) = %d for a member call, want 0", got)
	}
}

func TestFunction_Duplicates(t *testing.T) {
	src := Parse("", "float f(float a)\n{\n    return 1.0;\n}\n\nfloat f(float b)\n{\n    return 2.0;\n}\n")

	rec, err := src.Function("f")
	if err != nil {
		t.Fatalf("Function: %v", err)
	}
	if rec.Params != "float a" || rec.Body != "return 1.0;" {
		t.Errorf("Function(f) should return the first definition, got %+v", rec)
	}
	if got := src.Count("f"); got != 2 {
		t.Errorf("Count(f) = %d, want 2", got)
	}
}

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
