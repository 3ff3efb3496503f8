// Package ui exposes the engine over HTTP: a gin JSON API for the
// dashboard and a chi application serving rendered analysis reports.
package ui

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tablelens/adapters/stats/engine"
	"tablelens/app"
	"tablelens/domain/analysis"
	apperrors "tablelens/internal/errors"
	"tablelens/ports"
)

// Server is the JSON API for the dashboard
type Server struct {
	router *gin.Engine
	engine *engine.Engine
	runner *app.BatchRunner
	source ports.ColumnSource
}

// NewServer creates the API server around an engine and its source
func NewServer(e *engine.Engine, runner *app.BatchRunner, source ports.ColumnSource) *Server {
	s := &Server{
		router: gin.Default(),
		engine: e,
		runner: runner,
		source: source,
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/api/health", s.handleHealth)
	s.router.GET("/api/tables", s.handleListTables)
	s.router.GET("/api/tables/:name", s.handleTableInfo)
	s.router.GET("/api/algorithms/changepoint", s.handleChangePointAlgorithms)
	s.router.POST("/api/analyze", s.handleAnalyze)
	s.router.POST("/api/analyze/batch", s.handleAnalyzeBatch)
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	log.Printf("Starting TableLens API on http://%s", addr)
	return s.router.Run(addr)
}

// Router exposes the underlying handler, used by tests
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleListTables(c *gin.Context) {
	names, err := s.source.ListTables(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tables": names, "count": len(names)})
}

func (s *Server) handleTableInfo(c *gin.Context) {
	snapshot, err := s.source.Table(c.Request.Context(), c.Param("name"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"name":    snapshot.Name,
		"columns": snapshot.Columns,
		"rows":    len(snapshot.Rows),
	})
}

func (s *Server) handleChangePointAlgorithms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"algorithms": s.engine.ChangePointAlgorithms()})
}

// handleAnalyze runs a single analysis request to completion
func (s *Server) handleAnalyze(c *gin.Context) {
	var req analysis.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":  apperrors.CodeInvalidInput,
			"error": "malformed request body: " + err.Error(),
		})
		return
	}

	result, err := s.engine.Run(c.Request.Context(), req)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// handleAnalyzeBatch runs independent requests concurrently. Per-item
// failures are reported inline; the batch itself always returns 200.
func (s *Server) handleAnalyzeBatch(c *gin.Context) {
	var body struct {
		Requests []analysis.Request `json:"requests"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":  apperrors.CodeInvalidInput,
			"error": "malformed request body: " + err.Error(),
		})
		return
	}
	if len(body.Requests) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":  apperrors.CodeValidationError,
			"error": "batch needs at least one request",
		})
		return
	}

	items := s.runner.Run(c.Request.Context(), body.Requests)
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

func (s *Server) renderError(c *gin.Context, err error) {
	code := apperrors.GetCode(err)
	log.Printf("[Server] request failed (%s): %v", code, err)
	c.JSON(statusForCode(code), gin.H{"code": code, "error": err.Error()})
}

// statusForCode maps application error codes to HTTP statuses. Data-shape
// failures are the caller's problem (422), bad requests are 400, and only
// genuinely unexpected conditions surface as 500.
func statusForCode(code string) int {
	switch code {
	case apperrors.CodeValidationError, apperrors.CodeInvalidInput:
		return http.StatusBadRequest
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeInsufficientData,
		apperrors.CodeInsufficientVariables,
		apperrors.CodeInvalidColumn,
		apperrors.CodeDimensionMismatch,
		apperrors.CodeSingularMatrix,
		apperrors.CodeEmptyResult,
		apperrors.CodeAnalysisFailed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
