package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"MarketWrap/internal/ptdate"
	"MarketWrap/internal/store"
	"MarketWrap/internal/wrap"
)

// Server exposes the cron trigger and report history over HTTP.
type Server struct {
	runner *wrap.Runner
	store  store.Store
	secret string
	now    func() time.Time
	log    *zap.Logger
}

// New creates a Server. A nil clock defaults to time.Now. An empty
// secret leaves the trigger endpoints open, for local runs.
func New(runner *wrap.Runner, st store.Store, secret string, clock func() time.Time, logger *zap.Logger) *Server {
	if clock == nil {
		clock = time.Now
	}
	return &Server{runner: runner, store: st, secret: secret, now: clock, log: logger}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.GET("/cron/wrapdaily", s.cronStatus)
	api.POST("/cron/wrapdaily", s.requireSecret, s.cronRun)
	api.POST("/run-wrap", s.requireSecret, s.manualRun)
	api.GET("/history/latest", s.historyLatest)
	api.GET("/history/:date", s.historyByDate)
	return r
}

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	return s.Router().Run(addr)
}

func (s *Server) requireSecret(c *gin.Context) {
	if s.secret == "" {
		return
	}
	got := c.GetHeader("X-Cron-Secret")
	if got == "" {
		got = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	}
	if got != s.secret {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
}

func (s *Server) cronStatus(c *gin.Context) {
	now := s.now()
	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"inWindow": ptdate.InWrapWindow(now),
		"ptDate":   ptdate.TargetReportDate(now),
	})
}

// cronRun is the external cron hook; it honors the wrap window.
func (s *Server) cronRun(c *gin.Context) {
	res, err := s.runner.RunScheduled(c.Request.Context())
	if err != nil {
		s.log.Error("cron wrap failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// manualRun bypasses the window gate but not the once-per-day check.
func (s *Server) manualRun(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = ptdate.TargetReportDate(s.now())
	}
	res, err := s.runner.RunForDate(c.Request.Context(), date)
	if err != nil {
		s.log.Error("manual wrap failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) historyLatest(c *gin.Context) {
	rec, err := s.store.Latest(wrap.ReportType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no reports"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) historyByDate(c *gin.Context) {
	rec, err := s.store.ByDate(wrap.ReportType, c.Param("date"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no report for date"})
		return
	}
	c.JSON(http.StatusOK, rec)
}
