package graph

import (
	"image/color"
	"math"
	"strconv"
	"strings"
)

// DefaultColor is used when a series is added without a color.
var DefaultColor = color.NRGBA{R: 0xff, A: 0xff}

// Series is one named, colored line.
type Series struct {
	Name string
	// Color is straight-alpha RGBA in [0,1].
	Color [4]float32
	// Data is interleaved [x0,y0,x1,y1,...].
	Data []float64
}

// Len is the number of x/y pairs.
func (s Series) Len() int { return len(s.Data) / 2 }

func (s Series) clone() Series {
	s.Data = append([]float64(nil), s.Data...)
	return s
}

// NormalizeColor converts c to straight-alpha channels in [0,1]. A nil color yields
// DefaultColor.
func NormalizeColor(c color.Color) [4]float32 {
	if c == nil {
		c = DefaultColor
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return [4]float32{
		float32(n.R) / 255,
		float32(n.G) / 255,
		float32(n.B) / 255,
		float32(n.A) / 255,
	}
}

// IndexPairs flattens values into [0,v0,1,v1,...].
func IndexPairs(values []float64) []float64 {
	out := make([]float64, 0, 2*len(values))
	for i, v := range values {
		out = append(out, float64(i), v)
	}
	return out
}

// ParseRecord splits a record into its display name (first field) and numeric
// values. Fields that do not parse as numbers become NaN.
func ParseRecord(record []string) (name string, values []float64) {
	if len(record) == 0 {
		return "", nil
	}
	values = make([]float64, 0, len(record)-1)
	for _, f := range record[1:] {
		values = append(values, ParseValue(f))
	}
	return record[0], values
}

// ParseValue parses a sample, ignoring surrounding space. Anything that is not a
// number yields NaN.
func ParseValue(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
