// Package server exposes the normalization pipeline over HTTP: multipart
// uploads in, chart-ready series out, with an optional archive of past
// uploads and a websocket feed of batch notifications.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"activity-telemetry-lab/internal/batch"
	"activity-telemetry-lab/internal/config"
	"activity-telemetry-lab/internal/observability"
	"activity-telemetry-lab/internal/storage"
)

// Server wires the batch runner, the optional archive stores and the
// websocket hub behind a gin engine.
type Server struct {
	cfg     *config.Config
	logger  *log.Logger
	engine  *gin.Engine
	runner  *batch.Runner
	metrics *observability.Metrics
	hub     *Hub

	// Archive stores; both nil when the archive is disabled.
	activities storage.ActivityStore
	points     storage.TelemetryPointStore
}

// Option configures a Server.
type Option func(*Server)

// WithArchive enables the upload archive backed by the given stores.
func WithArchive(activities storage.ActivityStore, points storage.TelemetryPointStore) Option {
	return func(s *Server) {
		s.activities = activities
		s.points = points
	}
}

// WithMetrics attaches prometheus instrumentation.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// New creates a Server with routes registered.
func New(cfg *config.Config, logger *log.Logger, runner *batch.Runner, opts ...Option) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		cfg:    cfg,
		logger: logger,
		engine: gin.New(),
		runner: runner,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.engine.Use(gin.Recovery())
	s.engine.MaxMultipartMemory = cfg.MaxUploadBytes
	s.hub = NewHub(logger, s.metrics)

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.engine.POST("/api/parse", s.handleParse)
	s.engine.GET("/api/activities", s.handleListActivities)
	s.engine.GET("/api/activities/:id/series", s.handleActivitySeries)
	s.engine.GET("/api/health", s.handleHealth)

	s.engine.GET("/metrics", gin.WrapH(observability.Handler()))
	s.engine.GET("/ws", s.handleWebSocket)

	// Chart UI, when a static dir is configured and present.
	if s.cfg.StaticDir != "" {
		if _, err := os.Stat(s.cfg.StaticDir); err == nil {
			s.engine.Static("/static", s.cfg.StaticDir)
			index := filepath.Join(s.cfg.StaticDir, "index.html")
			s.engine.GET("/", func(c *gin.Context) {
				c.File(index)
			})
		}
	}
}

// Handler exposes the underlying http.Handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the hub and serves HTTP until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go s.hub.Run(ctx)

	srv := &http.Server{
		Addr:    s.cfg.Addr(),
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Printf("listening on %s", s.cfg.Addr())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Printf("failed to upgrade websocket: %v", err)
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan any, 256),
	}

	s.hub.register <- client

	go client.writePump()
	go client.readPump()
}
