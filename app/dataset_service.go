// Package app orchestrates the engine for the collaborator shells: it owns
// the parse-then-digest flow and fans chart requests out over the pipeline.
// All dataset state stays with the caller; the services here are stateless.
package app

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"datalens/adapters/excel"
	"datalens/domain/core"
	"datalens/domain/table"
	"datalens/internal/errors"
	"datalens/internal/ingest"
	"datalens/internal/summary"
)

// DatasetService builds typed datasets and their digests for callers.
type DatasetService struct{}

// NewDatasetService creates a new dataset service.
func NewDatasetService() *DatasetService {
	return &DatasetService{}
}

// Parse builds a dataset from raw delimited text. Empty input yields an
// empty dataset; this never fails.
func (s *DatasetService) Parse(text string, cfg ingest.Config) table.Dataset {
	return ingest.Build(text, cfg)
}

// ParseUpload builds a dataset from an uploaded file stream, dispatching on
// the filename extension: .xlsx goes through the spreadsheet adapter,
// anything else is treated as delimited text. Unlike Parse, an upload is
// allowed to fail: an unreadable stream, a legacy workbook format, or a
// zero-byte file surface as errors for the shell to map onto a response.
func (s *DatasetService) ParseUpload(src io.Reader, filename string, cfg ingest.Config) (table.Dataset, error) {
	ext := filepath.Ext(filename)
	if strings.EqualFold(ext, ".xls") {
		return table.Empty(), fmt.Errorf("%w: legacy workbook %s", core.ErrUnsupportedFormat, filename)
	}
	if strings.EqualFold(ext, ".xlsx") {
		ds, err := excel.ReadDatasetFrom(src, cfg.HasHeader)
		if err != nil {
			return table.Empty(), errors.Wrapf(err, "failed to read workbook %s", filename)
		}
		return ds, nil
	}

	raw, err := io.ReadAll(src)
	if err != nil {
		return table.Empty(), errors.Wrapf(err, "failed to read upload %s", filename)
	}
	if len(raw) == 0 {
		return table.Empty(), core.ErrEmptyUpload
	}
	return ingest.Build(string(raw), cfg), nil
}

// Digest produces the statistical text digest for a dataset.
func (s *DatasetService) Digest(ds table.Dataset) string {
	return summary.Generate(ds)
}
