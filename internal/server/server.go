package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"agrisight/internal"
	"agrisight/internal/pipeline"
	"agrisight/internal/report"
)

type Server struct {
	analyzer *pipeline.Analyzer
}

func New(analyzer *pipeline.Analyzer) *Server {
	return &Server{analyzer: analyzer}
}

// Router builds the gin engine with all routes attached.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/", s.handleRoot)
	r.GET("/health", s.handleHealth)
	r.POST("/analyze", s.handleAnalyzeSales)
	r.POST("/analyze/stock", s.handleAnalyzeStock)

	return r
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "agrisight",
		"endpoints": []string{
			"GET /health",
			"POST /analyze",
			"POST /analyze/stock",
		},
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type analyzeRequest struct {
	Data json.RawMessage `json:"data"`
}

func (s *Server) handleAnalyzeSales(c *gin.Context) {
	records, ok := s.bindRecords(c)
	if !ok {
		return
	}

	analysis, err := s.analyzer.AnalyzeSales(records)
	if err != nil {
		analysisError(c, err)
		return
	}

	charts, err := report.SalesCharts(analysis)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"analysis":       analysis,
		"visualizations": chartMap(charts),
		"message":        fmt.Sprintf("Analyzed %d rows across %d companies (%d skipped)", len(analysis.Rows), analysis.CompanyCount, analysis.SkippedRows),
	})
}

func (s *Server) handleAnalyzeStock(c *gin.Context) {
	records, ok := s.bindRecords(c)
	if !ok {
		return
	}

	analysis, err := s.analyzer.AnalyzeStock(records)
	if err != nil {
		analysisError(c, err)
		return
	}

	charts, err := report.StockCharts(analysis)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"analysis":       analysis,
		"visualizations": chartMap(charts),
		"message":        fmt.Sprintf("Analyzed %d stock rows (%d skipped)", len(analysis.Rows), analysis.SkippedRows),
	})
}

func (s *Server) bindRecords(c *gin.Context) ([]internal.Record, bool) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return nil, false
	}
	if len(req.Data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing data field"})
		return nil, false
	}

	records, err := decodeRecords(req.Data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	if len(records) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "data contains no records"})
		return nil, false
	}
	return records, true
}

// decodeRecords accepts either a JSON array of records or a JSON string
// wrapping one. Workflow tools (n8n expressions) send the latter, sometimes
// with a leading "=" left over from the expression syntax.
func decodeRecords(raw json.RawMessage) ([]internal.Record, error) {
	var records []internal.Record
	if err := json.Unmarshal(raw, &records); err == nil {
		return records, nil
	}

	var wrapped string
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, errors.New("data must be an array of records or a JSON-encoded string")
	}

	wrapped = strings.TrimSpace(wrapped)
	wrapped = strings.TrimPrefix(wrapped, "=")
	if err := json.Unmarshal([]byte(wrapped), &records); err != nil {
		return nil, fmt.Errorf("data string is not valid JSON: %w", err)
	}
	return records, nil
}

func analysisError(c *gin.Context, err error) {
	var missing *pipeline.MissingColumnError
	if errors.As(err, &missing) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     missing.Error(),
			"column":    missing.Column,
			"available": missing.Available,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func chartMap(charts []report.Chart) map[string]string {
	out := make(map[string]string, len(charts))
	for _, c := range charts {
		out[c.Key] = base64.StdEncoding.EncodeToString(c.PNG)
	}
	return out
}
