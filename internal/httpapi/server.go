// Package httpapi serves the intake service over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/apex/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/a3tai/ncrp-intake/internal/export"
	"github.com/a3tai/ncrp-intake/internal/intake"
)

const (
	EndPointProcessPDF  = "/process_pdf"
	EndPointGetDatabase = "/get_database"
	EndPointComplaint   = "/complaints/:id"
	EndPointExport      = "/export.xlsx"
	EndPointHealth      = "/healthz"
	EndPointMetrics     = "/metrics"

	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 10 * time.Second

	// multipartOverhead is the slack allowed on top of the file size for
	// multipart boundaries and headers.
	multipartOverhead = 1 << 20
)

// Config configures a Server.
type Config struct {
	Addr        string
	CORSOrigins []string
	MaxFileSize int64
	Logger      log.Interface
}

// Server is the HTTP front end.
type Server struct {
	cfg    Config
	intake *intake.Service
	export *export.Service
	logger log.Interface
	router *gin.Engine
}

// NewServer builds the router and its routes.
func NewServer(cfg Config, svc *intake.Service, exp *export.Service) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Log
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}

	s := &Server{
		cfg:    cfg,
		intake: svc,
		export: exp,
		logger: cfg.Logger,
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(cfg.Logger))
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	router.POST(EndPointProcessPDF, s.processPDF)
	router.GET(EndPointGetDatabase, s.getDatabase)
	router.GET(EndPointComplaint, s.getComplaint)
	router.DELETE(EndPointComplaint, s.deleteComplaint)
	router.GET(EndPointExport, s.exportXLSX)
	router.GET(EndPointHealth, s.health)
	router.GET(EndPointMetrics, gin.WrapH(promhttp.Handler()))

	s.router = router
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", s.cfg.Addr).Info("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}

func requestLogger(logger log.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logger.WithFields(log.Fields{
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     c.Writer.Status(),
			"elapsed_ms": time.Since(start).Milliseconds(),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Warn("request failed")
			return
		}
		entry.Debug("request served")
	}
}
