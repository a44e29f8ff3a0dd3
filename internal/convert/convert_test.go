package convert

import (
	"path/filepath"
	"testing"

	"github.com/enermodel/h2khpxml/internal/convert/record"
	"github.com/stretchr/testify/assert"
)

func TestDeriveOutputPath(t *testing.T) {
	cases := []struct {
		name  string
		input string
		opts  Options
		want  string
	}{
		{
			name:  "explicit path wins",
			input: "/in/house.h2k",
			opts:  Options{OutputPath: "/elsewhere/custom.xml", OutputDir: "/out"},
			want:  "/elsewhere/custom.xml",
		},
		{
			name:  "extension swapped under output dir",
			input: "/in/house.h2k",
			opts:  Options{OutputDir: "/out"},
			want:  "/out/house.xml",
		},
		{
			name:  "no output dir writes beside input",
			input: "/in/house.h2k",
			opts:  Options{},
			want:  "/in/house.xml",
		},
		{
			name:  "input root mirrors structure",
			input: "/in/region/a/house.h2k",
			opts:  Options{OutputDir: "/out", InputRoot: "/in"},
			want:  "/out/region/a/house.xml",
		},
		{
			name:  "flatten drops structure",
			input: "/in/region/a/house.h2k",
			opts:  Options{OutputDir: "/out", InputRoot: "/in", Flatten: true},
			want:  "/out/house.xml",
		},
		{
			name:  "input outside root is not mirrored",
			input: "/other/house.h2k",
			opts:  Options{OutputDir: "/out", InputRoot: "/in"},
			want:  "/out/house.xml",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := deriveOutputPath(tc.input, tc.opts)
			assert.Equal(t, filepath.FromSlash(tc.want), got)
		})
	}
}

func TestApplyOverrides(t *testing.T) {
	a := record.New("WaterHeatingSystem_1", "WaterHeatingSystem")
	a.Props["EnergyFactor"] = "0.92"
	b := record.New("LightingGroup_1", "LightingGroup")

	repl := record.New("WaterHeatingSystem_1", "WaterHeatingSystem")
	repl.Props["EnergyFactor"] = "0.62"

	out := applyOverrides([]record.Record{a, b}, []record.Record{repl})
	assert.Len(t, out, 2)
	assert.Equal(t, "0.62", out[0].Props["EnergyFactor"])
	assert.Equal(t, "LightingGroup_1", out[1].ID)

	// Replacement matching nothing is appended.
	extra := record.New("PlugLoad_1", "PlugLoad")
	out = applyOverrides(out, []record.Record{extra})
	assert.Len(t, out, 3)
	assert.Equal(t, "PlugLoad_1", out[2].ID)
}

func TestBatchStatusString(t *testing.T) {
	assert.Equal(t, "ok", BatchOK.String())
	assert.Equal(t, "partial failure", BatchPartial.String())
	assert.Equal(t, "failed", BatchFailed.String())
}
