package dataset

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// DecodeXLSX reads the rows of one worksheet, opt.Sheet or the first sheet.
func DecodeXLSX(data []byte, opt Options) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("dataset: xlsx: %w", err)
	}
	defer f.Close()

	sheet := opt.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrEmpty
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("dataset: xlsx sheet %q: %w", sheet, err)
	}
	return fromRows(rows, opt.SkipColumns)
}
