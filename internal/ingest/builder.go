// Package ingest turns raw delimited text into a typed dataset: it detects
// the field separator, splits the text into rows, infers one semantic type
// per column, and assembles the immutable table the rest of the engine reads.
//
// Every operation here is a pure function of its inputs. Bad input degrades
// to a well-defined default or an empty dataset; nothing in this package
// returns an error, logs, or retries.
package ingest

import (
	"fmt"
	"strings"

	"datalens/domain/table"
)

// Config controls how raw text is parsed into a dataset.
type Config struct {
	// Delimiter is the field separator. Empty means auto-detect.
	Delimiter string `json:"delimiter"`
	// HasHeader marks the first parsed row as column names.
	HasHeader bool `json:"has_header"`
	// SkipEmptyLines drops blank lines instead of keeping them as empty rows.
	SkipEmptyLines bool `json:"skip_empty_lines"`
	// Encoding is advisory metadata passed through from the upload; the
	// engine does not transcode.
	Encoding string `json:"encoding,omitempty"`
}

// DefaultConfig returns the parsing configuration the UI offers by default.
func DefaultConfig() Config {
	return Config{HasHeader: true, SkipEmptyLines: true}
}

// Build parses raw delimited text into a typed dataset. Empty input yields an
// empty dataset, never an error.
func Build(text string, cfg Config) table.Dataset {
	delimiter := cfg.Delimiter
	if delimiter == "" {
		delimiter = DetectDelimiter(text)
	}
	records := ParseRows(text, delimiter, cfg.SkipEmptyLines)
	return BuildFromRecords(records, cfg.HasHeader)
}

// BuildFromRecords assembles a dataset from already-split rows. This is the
// shared tail of the CSV path and the spreadsheet adapter: header handling,
// row padding, and per-column type inference are identical for both.
func BuildFromRecords(records [][]string, hasHeader bool) table.Dataset {
	if len(records) == 0 {
		return table.Empty()
	}

	var headers []string
	var dataRows [][]string
	if hasHeader {
		headers = headerNames(records[0])
		dataRows = records[1:]
	} else {
		headers = make([]string, len(records[0]))
		for i := range headers {
			headers[i] = placeholderName(i)
		}
		dataRows = records
	}

	// Pad every row to header width; surplus trailing cells are dropped.
	rows := make([][]string, len(dataRows))
	for i, record := range dataRows {
		row := make([]string, len(headers))
		for j := range headers {
			if j < len(record) {
				row[j] = record[j]
			}
		}
		rows[i] = row
	}

	columns := make([]table.Column, len(headers))
	for i, name := range headers {
		columns[i] = table.Column{
			Name:  name,
			Type:  InferColumnType(columnValues(rows, i)),
			Index: i,
		}
	}

	return table.Dataset{
		Headers:  headers,
		Rows:     rows,
		Columns:  columns,
		RowCount: len(rows),
	}
}

// headerNames trims header cells and replaces blank ones with a synthesized
// placeholder.
func headerNames(record []string) []string {
	headers := make([]string, len(record))
	for i, cell := range record {
		name := strings.TrimSpace(cell)
		if name == "" {
			name = placeholderName(i)
		}
		headers[i] = name
	}
	return headers
}

func placeholderName(index int) string {
	return fmt.Sprintf("Column %d", index+1)
}

func columnValues(rows [][]string, col int) []string {
	values := make([]string, len(rows))
	for i, row := range rows {
		values[i] = row[col]
	}
	return values
}
