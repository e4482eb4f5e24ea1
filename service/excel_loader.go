package service

import (
	"fmt"
	"io"
	"os"

	"github.com/ToTheRepublic/assessor-tools/dto"
	"github.com/xuri/excelize/v2"
)

// LoadWorkbook reads the first sheet of an .xlsx workbook into a Dataset.
// The first row is the header; short rows are padded with empty cells.
func LoadWorkbook(r io.Reader) (*dto.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return &dto.Dataset{}, nil
	}

	columns := rows[0]
	ds := &dto.Dataset{Columns: columns}
	for _, cells := range rows[1:] {
		rec := make(dto.Record, len(columns))
		for i, col := range columns {
			if i < len(cells) {
				rec[col] = cells[i]
			} else {
				rec[col] = ""
			}
		}
		ds.Rows = append(ds.Rows, rec)
	}
	return ds, nil
}

// LoadWorkbookFile reads a workbook from disk.
func LoadWorkbookFile(path string) (*dto.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()
	return LoadWorkbook(f)
}
