package ui

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datalens/internal/config"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return NewServer(&config.Config{
		Server: config.ServerConfig{Port: "0", GinMode: gin.TestMode},
		Upload: config.UploadConfig{MaxBytes: 1 << 20},
		Sample: config.SampleConfig{Seed: 42, Rows: 25},
	})
}

func postJSON(t *testing.T, s *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func createDataset(t *testing.T, s *Server, text string) string {
	t.Helper()
	w := postJSON(t, s, "/api/datasets", gin.H{
		"name": "test.csv",
		"text": text,
		"options": gin.H{
			"delimiter":        ",",
			"has_header":       true,
			"skip_empty_lines": true,
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)
	return resp.ID
}

func TestHandleCreateDataset(t *testing.T) {
	s := testServer(t)
	id := createDataset(t, s, "region,total\nNorth,10\nSouth,5\n")

	req := httptest.NewRequest(http.MethodGet, "/api/datasets/"+id, nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Headers  []string   `json:"headers"`
		RowCount int        `json:"row_count"`
		Rows     [][]string `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"region", "total"}, resp.Headers)
	assert.Equal(t, 2, resp.RowCount)
	assert.Len(t, resp.Rows, 2)
}

func TestHandleCreateDatasetEmptyTextIsNotAnError(t *testing.T) {
	s := testServer(t)
	w := postJSON(t, s, "/api/datasets", gin.H{"name": "empty.csv", "text": ""})

	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		RowCount int `json:"row_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.RowCount)
}

func TestHandleChart(t *testing.T) {
	s := testServer(t)
	id := createDataset(t, s, "region,total\nNorth,10\nSouth,5\nNorth,3\n")

	w := postJSON(t, s, "/api/datasets/"+id+"/chart", gin.H{
		"x_axis":      "region",
		"y_axis":      "total",
		"aggregation": "sum",
		"order":       "desc",
		"limit":       1,
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		XKey string `json:"x_key"`
		Rows []struct {
			X string  `json:"x"`
			Y float64 `json:"y"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, "North", resp.Rows[0].X)
	assert.Equal(t, 13.0, resp.Rows[0].Y)
}

func TestHandleChartUnresolvableXGivesEmptyRows(t *testing.T) {
	s := testServer(t)
	id := createDataset(t, s, "region,total\nNorth,10\n")

	w := postJSON(t, s, "/api/datasets/"+id+"/chart", gin.H{
		"x_axis":      "nope",
		"aggregation": "count",
	})

	// An unrenderable chart is an empty result, not an HTTP error.
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Rows []any `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Rows)
}

func TestHandleChartExport(t *testing.T) {
	s := testServer(t)
	id := createDataset(t, s, "region,total\nNorth,10\nSouth,5\n")

	w := postJSON(t, s, "/api/datasets/"+id+"/chart/export", gin.H{
		"x_axis":      "region",
		"y_axis":      "total",
		"aggregation": "sum",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "region,total\nNorth,10\nSouth,5\n", w.Body.String())
}

func TestHandleChartBatch(t *testing.T) {
	s := testServer(t)
	id := createDataset(t, s, "region,total\nNorth,10\nSouth,5\n")

	w := postJSON(t, s, "/api/datasets/"+id+"/charts", gin.H{
		"charts": []gin.H{
			{"x_axis": "region", "y_axis": "total", "aggregation": "sum"},
			{"x_axis": "region", "aggregation": "count"},
		},
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Results []struct {
			YKey string `json:"y_key"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "total", resp.Results[0].YKey)
	assert.Equal(t, "count", resp.Results[1].YKey)
}

func TestHandleSummary(t *testing.T) {
	s := testServer(t)
	id := createDataset(t, s, "region,total\nNorth,10\nSouth,5\n")

	req := httptest.NewRequest(http.MethodGet, "/api/datasets/"+id+"/summary", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dataset: 2 rows, 2 columns")
}

func TestHandleReport(t *testing.T) {
	s := testServer(t)
	id := createDataset(t, s, "region,total\nNorth,10\n")

	req := httptest.NewRequest(http.MethodGet, "/api/datasets/"+id+"/report", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "<h1")
}

func TestHandleSampleDataset(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/datasets/sample", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		RowCount int `json:"row_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 25, resp.RowCount)
}

func TestHandleGetDatasetNotFound(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/datasets/unknown-id", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	// The error message names the id the caller asked for.
	assert.Contains(t, w.Body.String(), "unknown-id")
}

func postUpload(t *testing.T, s *Server, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/datasets/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHandleUploadDataset(t *testing.T) {
	s := testServer(t)
	w := postUpload(t, s, "orders.csv", []byte("region,total\nNorth,10\n"))

	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		RowCount int `json:"row_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.RowCount)
}

func TestHandleUploadDatasetUnsupportedFormat(t *testing.T) {
	s := testServer(t)
	w := postUpload(t, s, "orders.xls", []byte("legacy bytes"))

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestHandleUploadDatasetEmptyFile(t *testing.T) {
	s := testServer(t)
	w := postUpload(t, s, "orders.csv", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestHandleUploadDatasetMissingFileField(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/datasets/upload", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleDeleteDataset(t *testing.T) {
	s := testServer(t)
	id := createDataset(t, s, "a,b\n1,2\n")

	req := httptest.NewRequest(http.MethodDelete, "/api/datasets/"+id, nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/datasets/"+id, nil)
	w = httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
