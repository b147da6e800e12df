package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	middleware "ai-notebook.com/ai-notebook/internal/http/middlewares"
)

type Server struct {
	echo   *echo.Echo
	logger *zap.Logger
	config Config
}

type Config struct {
	Addr               string
	RateLimitPerMinute int
}

func NewServer(h *Handler, logger *zap.Logger, cfg Config) (*Server, error) {
	if h == nil {
		return nil, errors.New("handler is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if cfg.RateLimitPerMinute <= 0 {
		return nil, errors.New("rate limit must be greater than 0")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(middleware.Metrics())
	Register(e, h, cfg.RateLimitPerMinute)

	return &Server{echo: e, logger: logger, config: cfg}, nil
}

// Start blocks until the server stops. A clean shutdown returns nil.
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", zap.String("addr", s.config.Addr))
	if err := s.echo.Start(s.config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.echo.Shutdown(ctx)
}
