// Package ui exposes the analysis modes over a JSON HTTP API.
package ui

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"healthlens/app"
	"healthlens/domain/core"
	"healthlens/internal/errors"
)

// Server routes HTTP requests to the analyzer.
type Server struct {
	router   *gin.Engine
	analyzer *app.Analyzer
}

// NewServer creates a server around an analyzer.
func NewServer(analyzer *app.Analyzer) *Server {
	s := &Server{
		router:   gin.New(),
		analyzer: analyzer,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Router exposes the underlying engine for testing and embedding.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the server on the given address.
func (s *Server) Run(addr string) error {
	log.Printf("[Server] Listening on %s", addr)
	return s.router.Run(addr)
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Logger())
	s.router.Use(gin.Recovery())
	s.router.Use(requestID())
}

// requestID tags every request with a UUID for log correlation.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api")
	api.GET("/scan", s.handleScan)
	api.GET("/metric", s.handleMetric)
	api.GET("/sleep", s.handleSleep)
	api.GET("/activity", s.handleActivity)
	api.GET("/heart", s.handleHeart)
	api.GET("/correlate", s.handleCorrelate)
	api.GET("/compare", s.handleCompare)
	api.GET("/yearly", s.handleYearly)
}

func (s *Server) handleScan(c *gin.Context) {
	r, err := s.rangeFromQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.analyzer.Scan(r))
}

func (s *Server) handleMetric(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		writeError(c, errors.InvalidInput("metric requires a name"))
		return
	}
	threshold := 0.0
	if raw := c.Query("streak_threshold"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(c, errors.InvalidInput(fmt.Sprintf("invalid streak_threshold %q", raw)))
			return
		}
		threshold = parsed
	}
	r, err := s.rangeFromQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}
	result, err := s.analyzer.Metric(r, name, threshold)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleSleep(c *gin.Context) {
	r, err := s.rangeFromQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.analyzer.Sleep(r))
}

func (s *Server) handleActivity(c *gin.Context) {
	r, err := s.rangeFromQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.analyzer.Activity(r))
}

func (s *Server) handleHeart(c *gin.Context) {
	r, err := s.rangeFromQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.analyzer.Heart(r))
}

func (s *Server) handleCorrelate(c *gin.Context) {
	target := c.Query("target")
	if target == "" {
		writeError(c, errors.InvalidInput("correlate requires a target metric"))
		return
	}
	lags, err := ParseLags(c.DefaultQuery("lag", "0,1,2,3"))
	if err != nil {
		writeError(c, err)
		return
	}
	r, err := s.rangeFromQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}
	result, err := s.analyzer.Correlate(r, target, lags)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleCompare(c *gin.Context) {
	p1 := c.Query("p1")
	p2 := c.Query("p2")
	if p1 == "" || p2 == "" {
		writeError(c, errors.InvalidInput("compare requires p1 and p2 (YYYY-MM)"))
		return
	}
	result, err := s.analyzer.Compare(p1, p2)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleYearly(c *gin.Context) {
	yearStr := c.Query("year")
	year, err := strconv.Atoi(yearStr)
	if err != nil || year <= 0 {
		writeError(c, errors.InvalidInput(fmt.Sprintf("invalid year %q", yearStr)))
		return
	}
	c.JSON(http.StatusOK, s.analyzer.Yearly(year))
}

// rangeFromQuery resolves from/to/period query parameters into a range. An
// absent period falls back to the analyzer's tuned default window.
func (s *Server) rangeFromQuery(c *gin.Context) (core.DateRange, error) {
	return s.analyzer.ResolveRange(app.RangeRequest{
		From:   c.Query("from"),
		To:     c.Query("to"),
		Period: c.Query("period"),
	})
}

// ParseLags parses a comma-separated lag list like "0,1,2,3".
func ParseLags(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	lags := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, errors.InvalidInput(fmt.Sprintf("invalid lag %q", p))
		}
		lags = append(lags, n)
	}
	return lags, nil
}

// writeError maps application error codes to HTTP statuses.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeInvalidInput, errors.CodeConfigInvalid:
		status = http.StatusBadRequest
	case errors.CodeNotFound:
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": errors.GetCode(err)})
}
