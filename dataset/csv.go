package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ParseEncoding resolves a WHATWG encoding label such as "shift_jis", "euc-jp"
// or "utf-8". An empty name means Shift-JIS.
func ParseEncoding(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "shift_jis"
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrEncoding, name)
	}
	return enc, nil
}

// DecodeCSV reads comma separated text in opt.Encoding. A byte order mark, if
// present, overrides the configured encoding.
func DecodeCSV(data []byte, opt Options) (*Table, error) {
	enc, err := ParseEncoding(opt.Encoding)
	if err != nil {
		return nil, err
	}
	dec := unicode.BOMOverride(enc.NewDecoder())
	r := csv.NewReader(transform.NewReader(bytes.NewReader(data), dec))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("dataset: csv: %w", err)
	}
	return fromRows(rows, opt.SkipColumns)
}
