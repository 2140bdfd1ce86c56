package hlsl

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtractConstants(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		want      map[string]float64
		wantNames []string
	}{
		{
			name:      "single",
			text:      "static const float kEps = 0.0001;",
			want:      map[string]float64{"kEps": 0.0001},
			wantNames: []string{"kEps"},
		},
		{
			name: "last declaration wins",
			text: "static const float A = 1.0;\nstatic const float B = 2;\nstatic const float A = 3.5;\n",
			want: map[string]float64{"A": 3.5, "B": 2},
			// A keeps its first position.
			wantNames: []string{"A", "B"},
		},
		{
			name:      "suffixes and spacing",
			text:      "static  const half H=0.5h ;\nstatic const float F = 360.0f;\nstatic const int N = 6;",
			want:      map[string]float64{"H": 0.5, "F": 360, "N": 6},
			wantNames: []string{"H", "F", "N"},
		},
		{
			name: "unsupported literals are skipped",
			text: "static const float E = 1e-5;\nstatic const float X = 0x10;\nstatic const float M = -1.0;\n" +
				"static const float S = 2.0 * 3.0;\nstatic const float3 V = float3(1, 2, 3);",
			want:      map[string]float64{},
			wantNames: nil,
		},
		{
			name:      "malformed literal keeps earlier value",
			text:      "static const float P = 1.5;\nstatic const float P = 1.2.3;",
			want:      map[string]float64{"P": 1.5},
			wantNames: []string{"P"},
		},
		{
			name:      "no constants",
			text:      "float4 PS_Main() : SV_Target { return 0; }",
			want:      map[string]float64{},
			wantNames: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := ExtractConstants(tt.text)
			got := make(map[string]float64)
			for _, name := range table.Names() {
				v, ok := table.Lookup(name)
				if !ok {
					t.Fatalf("Lookup(%q) failed for a listed name", name)
				}
				got[name] = v
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ExtractConstants() values mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantNames, table.Names()); diff != "" {
				t.Errorf("ExtractConstants() names mismatch (-want +got):\n%s", diff)
			}
			if table.Len() != len(tt.want) {
				t.Errorf("Len() = %d, want %d", table.Len(), len(tt.want))
			}
		})
	}
}

func TestConstantTable_NamesIsCopy(t *testing.T) {
	table := ExtractConstants("static const float A = 1.0;")
	names := table.Names()
	names[0] = "B"
	if _, ok := table.Lookup("A"); !ok || table.Names()[0] != "A" {
		t.Error("Names() must not expose internal state")
	}
}
