package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xgraph/dataset"
	"xgraph/graph"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	v, err := cfg.View()
	require.NoError(t, err)
	assert.Equal(t, dataset.DefaultView(), v)
	assert.Equal(t, dataset.DefaultOptions(), cfg.Options())
}

func TestDecodeOverDefaults(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`
width: 320
origin: center
range_x: [-10, 10]
encoding: utf-8
palette: ["#102030", "#40506080"]
headless:
  hz: 30
  ticks: 5
`))
	require.NoError(t, err)
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.Equal(t, []float64{0, 5}, cfg.RangeY)
	assert.Equal(t, uint64(5), cfg.Headless.Ticks)

	v, err := cfg.View()
	require.NoError(t, err)
	assert.Equal(t, graph.Origin{}, v.Origin)
	assert.Equal(t, -10.0, v.MinX)
	assert.Equal(t, 10.0, v.MaxX)
	require.Len(t, v.Palette, 2)
	assert.Equal(t, color.NRGBA{R: 0x40, G: 0x50, B: 0x60, A: 0x80}, v.Palette[1])
}

func TestDecodeEmpty(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "colour: red"},
		{"zero width", "width: 0"},
		{"bad origin", "origin: middle"},
		{"flat range", "range_y: [2, 2]"},
		{"short range", "range_x: [1]"},
		{"bad encoding", "encoding: ebcdic-9"},
		{"negative skip", "skip_columns: -1"},
		{"empty palette", "palette: []"},
		{"bad color", `palette: ["red"]`},
		{"zero hz", "headless: {hz: 0}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.yaml))
			assert.Error(t, err)
		})
	}

	_, err := Decode(strings.NewReader("range_y: [1, 1]"))
	assert.ErrorIs(t, err, graph.ErrDomain)
}

func TestLoadAndEncode(t *testing.T) {
	cfg := Default()
	cfg.Width = 1024
	cfg.Sheet = "Data"
	b, err := cfg.Encode()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "xgraph.yaml")
	require.NoError(t, os.WriteFile(path, b, 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0x80, A: 0xff}, c)

	_, err = ParseColor("#ff80")
	assert.Error(t, err)
	_, err = ParseColor("#gg0000")
	assert.Error(t, err)
}
