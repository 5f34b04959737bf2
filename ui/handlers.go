package ui

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"datalens/app"
	"datalens/domain/chart"
	"datalens/domain/core"
	"datalens/internal/ingest"
	"datalens/internal/sample"
)

// createDatasetRequest is the JSON body for parsing raw delimited text.
type createDatasetRequest struct {
	Name    string        `json:"name"`
	Text    string        `json:"text"`
	Options ingest.Config `json:"options"`
}

// chartRequest is the JSON body for chart projections. Aggregation and order
// arrive as free-form strings (possibly AI-supplied) and are normalized onto
// the closed sets.
type chartRequest struct {
	XAxis       string `json:"x_axis"`
	YAxis       string `json:"y_axis"`
	Aggregation string `json:"aggregation"`
	Order       string `json:"order"`
	Limit       int    `json:"limit"`
	Delimiter   string `json:"delimiter"`
}

func (r chartRequest) toAppRequest() app.ChartRequest {
	return app.ChartRequest{
		Spec: chart.Spec{
			XAxis:       r.XAxis,
			YAxis:       r.YAxis,
			Aggregation: chart.ParseAggregation(r.Aggregation),
		},
		Order: chart.ParseSortOrder(r.Order),
		Limit: r.Limit,
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleCreateDataset(c *gin.Context) {
	var req createDatasetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ds := s.datasets.Parse(req.Text, req.Options)
	entry := s.store.Put(req.Name, ds)
	s.log.Info("[API] parsed dataset %s (%d rows, %d columns)", entry.ID, ds.RowCount, len(ds.Headers))
	c.JSON(http.StatusCreated, entryResponse(entry))
}

func (s *Server) handleUploadDataset(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": core.NewValidationError("file", "missing file field").Error()})
		return
	}
	if header.Size > s.config.Upload.MaxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable upload"})
		return
	}
	defer file.Close()

	cfg := ingest.DefaultConfig()
	cfg.Delimiter = c.PostForm("delimiter")
	if c.PostForm("has_header") == "false" {
		cfg.HasHeader = false
	}
	if c.PostForm("skip_empty_lines") == "false" {
		cfg.SkipEmptyLines = false
	}
	cfg.Encoding = c.PostForm("encoding")

	ds, err := s.datasets.ParseUpload(file, header.Filename, cfg)
	if err != nil {
		s.log.Warn("[API] upload %s failed: %v", header.Filename, err)
		respondError(c, err)
		return
	}

	entry := s.store.Put(header.Filename, ds)
	s.log.Info("[API] uploaded dataset %s from %s (%d rows)", entry.ID, header.Filename, ds.RowCount)
	c.JSON(http.StatusCreated, entryResponse(entry))
}

func (s *Server) handleSampleDataset(c *gin.Context) {
	cfg := sample.DefaultConfig()
	cfg.Seed = s.config.Sample.Seed
	cfg.Rows = s.config.Sample.Rows

	ds := sample.NewGenerator(cfg).Generate()
	entry := s.store.Put("sample-orders", ds)
	c.JSON(http.StatusCreated, entryResponse(entry))
}

func (s *Server) handleListDatasets(c *gin.Context) {
	entries := s.store.List()
	out := make([]gin.H, len(entries))
	for i, entry := range entries {
		out[i] = entryResponse(entry)
	}
	c.JSON(http.StatusOK, gin.H{"datasets": out})
}

func (s *Server) handleGetDataset(c *gin.Context) {
	entry, ok := s.lookup(c)
	if !ok {
		return
	}
	resp := entryResponse(entry)
	resp["rows"] = previewRows(entry, 100)
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleDeleteDataset(c *gin.Context) {
	id, err := core.ParseDatasetID(c.Param("id"))
	if err != nil || !s.store.Delete(id) {
		respondError(c, core.ErrDatasetNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleSummary(c *gin.Context) {
	entry, ok := s.lookup(c)
	if !ok {
		return
	}
	c.String(http.StatusOK, s.datasets.Digest(entry.Dataset))
}

func (s *Server) handleReport(c *gin.Context) {
	entry, ok := s.lookup(c)
	if !ok {
		return
	}
	html := renderReport(entry, s.datasets.Digest(entry.Dataset))
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

func (s *Server) handleChart(c *gin.Context) {
	entry, ok := s.lookup(c)
	if !ok {
		return
	}
	var req chartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	// An empty projection is the caller's "nothing to show" signal, not an
	// HTTP error.
	c.JSON(http.StatusOK, s.charts.Rows(entry.Dataset, req.toAppRequest()))
}

func (s *Server) handleChartExport(c *gin.Context) {
	entry, ok := s.lookup(c)
	if !ok {
		return
	}
	var req chartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	text := s.charts.Export(entry.Dataset, req.toAppRequest(), req.Delimiter)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(text))
}

func (s *Server) handleChartBatch(c *gin.Context) {
	entry, ok := s.lookup(c)
	if !ok {
		return
	}
	var body struct {
		Charts []chartRequest `json:"charts"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	reqs := make([]app.ChartRequest, len(body.Charts))
	for i, r := range body.Charts {
		reqs[i] = r.toAppRequest()
	}
	results, err := s.charts.BatchRows(c.Request.Context(), entry.Dataset, reqs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (s *Server) lookup(c *gin.Context) (*Entry, bool) {
	raw := c.Param("id")
	id, err := core.ParseDatasetID(raw)
	if err != nil {
		respondError(c, core.NewNotFoundError("dataset", raw))
		return nil, false
	}
	entry, ok := s.store.Get(id)
	if !ok {
		respondError(c, core.NewNotFoundError("dataset", raw))
		return nil, false
	}
	return entry, true
}

// respondError maps a domain error onto its HTTP status. Anything that is not
// a recognized sentinel is an upload the service could not parse.
func respondError(c *gin.Context, err error) {
	switch {
	case core.IsNotFoundError(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, core.ErrUnsupportedFormat):
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	}
}

func entryResponse(entry *Entry) gin.H {
	return gin.H{
		"id":         entry.ID,
		"name":       entry.Name,
		"created_at": entry.CreatedAt,
		"headers":    entry.Dataset.Headers,
		"columns":    entry.Dataset.Columns,
		"row_count":  entry.Dataset.RowCount,
	}
}

func previewRows(entry *Entry, limit int) [][]string {
	rows := entry.Dataset.Rows
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}
