// Package ui exposes the pipeline over HTTP
package ui

import (
	"net/http"

	"golotto/adapters/report"
	"golotto/app"
	"golotto/internal"
	"golotto/internal/config"
	"golotto/internal/errors"

	"github.com/gin-gonic/gin"
)

// Server represents the web server for the lottery strategy engine
type Server struct {
	router   *gin.Engine
	pipeline *app.Pipeline
	cfg      *config.Config
	log      *internal.Logger
}

// NewServer creates a server around a wired pipeline
func NewServer(cfg *config.Config, pipeline *app.Pipeline, log *internal.Logger) *Server {
	if log == nil {
		log = internal.DefaultLogger
	}
	s := &Server{
		router:   gin.Default(),
		pipeline: pipeline,
		cfg:      cfg,
		log:      log,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/api/analysis", s.handleAnalysis)
	s.router.POST("/api/generate", s.handleGenerate)
	s.router.POST("/api/validate", s.handleValidate)
	s.router.GET("/report", s.handleReport)
}

// Run starts the HTTP server on the given address
func (s *Server) Run(addr string) error {
	s.log.Info("API server listening on %s", addr)
	return s.router.Run(addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleAnalysis(c *gin.Context) {
	snapshot, err := s.pipeline.Analyze(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

type generateRequest struct {
	Sets int `json:"sets"`
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	sets, err := s.pipeline.Generate(c.Request.Context(), req.Sets)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sets": sets})
}

type validateRequest struct {
	Mode string `json:"mode"`
}

func (s *Server) handleValidate(c *gin.Context) {
	var req validateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	rep, err := s.pipeline.Backtest(c.Request.Context(), req.Mode)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// handleReport runs the full pipeline and renders the run summary as HTML
func (s *Server) handleReport(c *gin.Context) {
	result, err := s.pipeline.Run(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	md := report.BuildRunMarkdown(result.RunID, result.Sets, result.Report)
	c.Data(http.StatusOK, "text/html; charset=utf-8", report.RenderHTML(md))
}

func (s *Server) fail(c *gin.Context, err error) {
	s.log.Error("request failed: %v", err)
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeConfigInvalid, errors.CodeMalformedDraw:
		status = http.StatusBadRequest
	case errors.CodeInsufficientHistory:
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": errors.GetCode(err)})
}
