// Package config holds viewer settings: defaults, a YAML file over them, and
// validation.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"xgraph/dataset"
	"xgraph/graph"
)

// Config is the viewer configuration.
type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Origin is a ParseOrigin expression such as "left|bottom".
	Origin string    `yaml:"origin"`
	RangeY []float64 `yaml:"range_y"`
	// RangeX is optional; when unset the X axis spans the loaded rows.
	RangeX []float64 `yaml:"range_x,omitempty"`

	Encoding    string `yaml:"encoding"`
	SkipColumns int    `yaml:"skip_columns"`
	Sheet       string `yaml:"sheet,omitempty"`

	// Palette entries are "#rrggbb" or "#rrggbbaa".
	Palette []string `yaml:"palette"`

	Headless Headless `yaml:"headless"`
}

// Headless configures window-less runs.
type Headless struct {
	Hz    int     `yaml:"hz"`
	Ticks uint64  `yaml:"ticks"`
	Scale float64 `yaml:"scale,omitempty"`
}

// Default returns the settings the viewer uses without a config file.
func Default() Config {
	return Config{
		Width:       800,
		Height:      600,
		Origin:      "left|bottom",
		RangeY:      []float64{0, 5},
		Encoding:    "shift_jis",
		SkipColumns: dataset.DefaultSkipColumns,
		Palette:     []string{"#ff0000", "#00ff00", "#0000ff", "#ffff00", "#00ffff", "#ff00ff"},
		Headless:    Headless{Hz: 60, Ticks: 1},
	}
}

// Load reads a YAML file over Default and validates the result.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads YAML over Default. Unknown keys are an error.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg as YAML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("size %dx%d: width and height must be positive", c.Width, c.Height)
	}
	if _, err := graph.ParseOrigin(c.Origin); err != nil {
		return err
	}
	if err := checkRange("range_y", c.RangeY); err != nil {
		return err
	}
	if len(c.RangeX) > 0 {
		if err := checkRange("range_x", c.RangeX); err != nil {
			return err
		}
	}
	if _, err := dataset.ParseEncoding(c.Encoding); err != nil {
		return err
	}
	if c.SkipColumns < 0 {
		return fmt.Errorf("skip_columns %d: must not be negative", c.SkipColumns)
	}
	if len(c.Palette) == 0 {
		return errors.New("palette: at least one color is required")
	}
	for _, p := range c.Palette {
		if _, err := ParseColor(p); err != nil {
			return err
		}
	}
	if c.Headless.Hz <= 0 {
		return fmt.Errorf("headless.hz %d: must be positive", c.Headless.Hz)
	}
	if c.Headless.Scale < 0 {
		return fmt.Errorf("headless.scale %g: must not be negative", c.Headless.Scale)
	}
	return nil
}

func checkRange(name string, r []float64) error {
	if len(r) != 2 {
		return fmt.Errorf("%s: want [min, max], got %d values", name, len(r))
	}
	if graph.CheckRange(graph.AxisX, r[0], r[1]) != nil {
		return fmt.Errorf("%s [%g, %g]: %w", name, r[0], r[1], graph.ErrDomain)
	}
	return nil
}

// Options returns the file reading options.
func (c Config) Options() dataset.Options {
	return dataset.Options{Encoding: c.Encoding, SkipColumns: c.SkipColumns, Sheet: c.Sheet}
}

// View returns the axis setup. c must be valid.
func (c Config) View() (dataset.View, error) {
	o, err := graph.ParseOrigin(c.Origin)
	if err != nil {
		return dataset.View{}, err
	}
	v := dataset.View{Origin: o, MinY: c.RangeY[0], MaxY: c.RangeY[1]}
	if len(c.RangeX) == 2 {
		v.MinX, v.MaxX = c.RangeX[0], c.RangeX[1]
	}
	for _, p := range c.Palette {
		col, err := ParseColor(p)
		if err != nil {
			return dataset.View{}, err
		}
		v.Palette = append(v.Palette, col)
	}
	return v, nil
}

// ParseColor parses "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
	}
	if len(h) == 6 {
		h += "ff"
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
