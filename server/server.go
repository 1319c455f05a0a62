package server

import (
	"context"
	"net/http"

	"github.com/existflow/mandarina/internal/config"
	"github.com/existflow/mandarina/internal/db"
	"github.com/existflow/mandarina/internal/logger"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Server is the local calendar API
type Server struct {
	store   *db.DB
	cfg     *config.Config
	echo    *echo.Echo
	metrics *metrics
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a server over an open store. The server takes over the
// store's change hook to count created and completed tasks.
func New(cfg *config.Config, store *db.DB) *Server {
	s := &Server{
		store:   store,
		cfg:     cfg,
		metrics: newMetrics(),
	}
	store.SetOnChange(s.metrics.observe)
	s.setupEcho()
	return s
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = errorHandler

	// requestLogger writes errors itself, so metrics outside it see the final status
	e.Use(s.metrics.middleware)
	e.Use(requestLogger)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	// Health check
	e.GET("/health", s.handleHealth)
	e.GET("/metrics", echo.WrapHandler(s.metrics.handler()))

	// API v1
	api := e.Group("/api/v1")

	cal := api.Group("/calendar")
	cal.GET("/month", s.handleMonth)
	cal.GET("/week", s.handleWeek)
	cal.GET("/hours", s.handleHours)

	tasks := api.Group("/tasks")
	tasks.GET("", s.handleListTasks)
	tasks.POST("", s.handleCreateTask)
	tasks.GET("/:id", s.handleGetTask)
	tasks.POST("/:id/complete", s.handleCompleteTask)

	s.echo = e
}

// Close closes the store
func (s *Server) Close() error {
	return s.store.Close()
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	logger.Info("API server starting", logger.F("addr", addr), logger.F("driver", s.store.Backend()))
	return s.echo.Start(addr)
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("API server shutting down")
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	if err := s.store.PingContext(c.Request().Context()); err != nil {
		logger.Warn("Health check failed", logger.F("error", err))
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
