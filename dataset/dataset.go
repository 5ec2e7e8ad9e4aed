// Package dataset loads tabular files into graph series.
//
// A file is a header row of series names followed by data rows. The first
// SkipColumns fields of every row are labels and are ignored. Column j of the
// remaining fields becomes series j.
package dataset

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"xgraph/graph"
)

var (
	// ErrEmpty means a file has no header or no data columns.
	ErrEmpty = errors.New("dataset: no series in file")
	// ErrEncoding means the text encoding is unknown or the bytes do not decode.
	ErrEncoding = errors.New("dataset: bad text encoding")
)

// DefaultSkipColumns is the number of leading label columns.
const DefaultSkipColumns = 2

// Options controls how a file is read.
type Options struct {
	// Encoding names the CSV text encoding; see ParseEncoding. Empty means Shift-JIS.
	Encoding string
	// SkipColumns leading fields of every row are dropped.
	SkipColumns int
	// Sheet selects the XLSX worksheet; empty means the first one.
	Sheet string
}

// DefaultOptions reads Shift-JIS CSV with two label columns.
func DefaultOptions() Options {
	return Options{Encoding: "shift_jis", SkipColumns: DefaultSkipColumns}
}

// Table is a column-major view of a file: Columns[j] holds the values of Names[j].
type Table struct {
	Names   []string
	Columns [][]float64
}

// Rows is the number of data rows, the length of the longest column.
func (t *Table) Rows() int {
	n := 0
	for _, c := range t.Columns {
		n = max(n, len(c))
	}
	return n
}

// Load picks the reader from the file extension: .xlsx and .xlsm go through
// excelize, everything else is CSV.
func Load(name string, data []byte, opt Options) (*Table, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		t, err := DecodeXLSX(data, opt)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return t, nil
	default:
		t, err := DecodeCSV(data, opt)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return t, nil
	}
}

// fromRows drops blank rows and label columns, then transposes. Missing cells
// at the end of a short row are left out of that column; cells that are not
// numbers become NaN.
func fromRows(rows [][]string, skip int) (*Table, error) {
	if skip < 0 {
		skip = 0
	}
	var kept [][]string
	for _, r := range rows {
		if blank(r) {
			continue
		}
		if len(r) > skip {
			r = r[skip:]
		} else {
			r = nil
		}
		kept = append(kept, r)
	}
	if len(kept) == 0 || len(kept[0]) == 0 {
		return nil, ErrEmpty
	}

	t := &Table{Names: make([]string, len(kept[0]))}
	for j, n := range kept[0] {
		t.Names[j] = strings.TrimSpace(n)
	}
	t.Columns = make([][]float64, len(t.Names))
	for _, r := range kept[1:] {
		for j := range t.Names {
			if j >= len(r) {
				break
			}
			t.Columns[j] = append(t.Columns[j], graph.ParseValue(r[j]))
		}
	}
	return t, nil
}

func blank(r []string) bool {
	for _, f := range r {
		if f != "" {
			return false
		}
	}
	return true
}

// Palette cycles through the series colors by index.
type Palette []color.Color

// DefaultPalette is red, green, blue, yellow, cyan, magenta.
var DefaultPalette = Palette{
	color.NRGBA{R: 0xff, A: 0xff},
	color.NRGBA{G: 0xff, A: 0xff},
	color.NRGBA{B: 0xff, A: 0xff},
	color.NRGBA{R: 0xff, G: 0xff, A: 0xff},
	color.NRGBA{G: 0xff, B: 0xff, A: 0xff},
	color.NRGBA{R: 0xff, B: 0xff, A: 0xff},
}

// Color returns the color for series i.
func (p Palette) Color(i int) color.Color {
	if len(p) == 0 {
		return graph.DefaultColor
	}
	return p[i%len(p)]
}
