package decoder

import (
	"bytes"
	"fmt"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// DecodeXLSX reads the first sheet of an .xlsx workbook. Wallet exports
// (detected by a banner in the top rows) are flattened into pseudo-lines;
// anything else stays a header+rows table.
func DecodeXLSX(data []byte) (*Document, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrDecode)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return sheetDocument(rows), nil
}

// DecodeXLS reads the first sheet of a legacy .xls workbook.
func DecodeXLS(data []byte) (*Document, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	rows := wb.ReadAllCells(maxSheetRows)
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: workbook has no rows", ErrDecode)
	}
	return sheetDocument(rows), nil
}

// Statements are bounded by the upload size cap well before this.
const maxSheetRows = 100000
