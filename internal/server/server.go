package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/agenthands/followgraph/internal/core"
	"github.com/agenthands/followgraph/internal/logging"
)

const dotContentType = "text/vnd.graphviz; charset=utf-8"

// Server exposes a finished run over HTTP. The result is never modified after construction.
type Server struct {
	Result   *core.Result
	Gatherer prometheus.Gatherer
	Logger   *zap.Logger
}

func NewServer(result *core.Result, gatherer prometheus.Gatherer, logger *zap.Logger) *Server {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &Server{Result: result, Gatherer: gatherer, Logger: logging.OrNop(logger)}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", s.Health)
	r.GET("/summary", s.Summary)
	r.GET("/graph", s.Graph)
	r.GET("/candidates/:id/friends", s.Friends)
	r.GET("/communities", s.Communities)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{})))

	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.Logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "run_id": s.Result.RunID})
}

func (s *Server) Summary(c *gin.Context) {
	c.JSON(http.StatusOK, s.Result.Summary)
}

func (s *Server) Graph(c *gin.Context) {
	c.Data(http.StatusOK, dotContentType, s.Result.DOT)
}

func (s *Server) Friends(c *gin.Context) {
	id := c.Param("id")
	friends, err := s.Result.Friends.Friends(id)
	if err != nil || !s.Result.Roster.Contains(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown candidate"})
		return
	}

	cohort, _ := s.Result.Roster.CohortOf(id)
	c.JSON(http.StatusOK, gin.H{
		"id":      id,
		"cohort":  cohort,
		"friends": friends,
	})
}

func (s *Server) Communities(c *gin.Context) {
	communities := s.Result.Report.Communities
	if communities == nil {
		communities = [][]string{}
	}
	c.JSON(http.StatusOK, gin.H{"communities": communities})
}
