// Package excel adapts spreadsheet files to the engine's ingestion path. A
// sheet is read into raw string rows and handed to the same dataset builder
// the delimited-text path uses, so header handling and type inference behave
// identically for both sources.
package excel

import (
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"datalens/domain/table"
	"datalens/internal/ingest"
)

// defaultSheet is read when the workbook's active sheet cannot be resolved.
const defaultSheet = "Sheet1"

// Reader reads one sheet of an .xlsx workbook.
type Reader struct {
	filePath string
}

// NewReader creates a reader for the workbook at filePath.
func NewReader(filePath string) *Reader {
	return &Reader{filePath: filePath}
}

// ReadRows returns the sheet contents as raw string rows.
func (r *Reader) ReadRows() ([][]string, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("workbook not found: %s", r.filePath)
	}

	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return sheetRows(f)
}

// ReadDataset reads the sheet and builds a typed dataset from it.
func (r *Reader) ReadDataset(hasHeader bool) (table.Dataset, error) {
	rows, err := r.ReadRows()
	if err != nil {
		return table.Empty(), err
	}
	return ingest.BuildFromRecords(rows, hasHeader), nil
}

// ReadDatasetFrom builds a typed dataset from workbook bytes supplied by a
// stream, e.g. an HTTP upload.
func ReadDatasetFrom(src io.Reader, hasHeader bool) (table.Dataset, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return table.Empty(), fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows, err := sheetRows(f)
	if err != nil {
		return table.Empty(), err
	}
	return ingest.BuildFromRecords(rows, hasHeader), nil
}

func sheetRows(f *excelize.File) ([][]string, error) {
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if sheet == "" {
		sheet = defaultSheet
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	return rows, nil
}
