// Package ui is the HTTP collaborator shell around the engine: it accepts
// uploads, holds parsed datasets in memory, and serves chart projections,
// digests, and reports. The engine packages never depend on anything here.
package ui

import (
	"github.com/gin-gonic/gin"

	"datalens/app"
	"datalens/domain/core"
	"datalens/internal"
	"datalens/internal/config"
)

// Server represents the web server for the datalens API
type Server struct {
	router   *gin.Engine
	config   *config.Config
	store    *Store
	datasets *app.DatasetService
	charts   *app.ChartService
	log      *internal.Logger
}

// NewServer creates a new web server instance
func NewServer(cfg *config.Config) *Server {
	gin.SetMode(cfg.Server.GinMode)

	s := &Server{
		router:   gin.Default(),
		config:   cfg,
		store:    NewStore(),
		datasets: app.NewDatasetService(),
		charts:   app.NewChartService(),
		log:      internal.DefaultLogger,
	}
	s.store.Subscribe(func(id core.DatasetID) {
		s.log.Debug("[Store] dataset set changed: %s", id)
	})
	s.registerRoutes()
	return s
}

// Router exposes the configured gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the HTTP server on the configured port.
func (s *Server) Run() error {
	s.log.Info("[Server] listening on :%s", s.config.Server.Port)
	return s.router.Run(":" + s.config.Server.Port)
}

func (s *Server) registerRoutes() {
	api := s.router.Group("/api")

	api.GET("/health", s.handleHealth)

	api.POST("/datasets", s.handleCreateDataset)
	api.POST("/datasets/upload", s.handleUploadDataset)
	api.POST("/datasets/sample", s.handleSampleDataset)
	api.GET("/datasets", s.handleListDatasets)
	api.GET("/datasets/:id", s.handleGetDataset)
	api.DELETE("/datasets/:id", s.handleDeleteDataset)

	api.GET("/datasets/:id/summary", s.handleSummary)
	api.GET("/datasets/:id/report", s.handleReport)
	api.POST("/datasets/:id/chart", s.handleChart)
	api.POST("/datasets/:id/chart/export", s.handleChartExport)
	api.POST("/datasets/:id/charts", s.handleChartBatch)
}
