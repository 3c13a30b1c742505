package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vibedit/vibedit-orders-service/internal/config"
	"github.com/vibedit/vibedit-orders-service/internal/handlers"
	"github.com/vibedit/vibedit-orders-service/internal/metrics"
)

type Server struct {
	config     *config.Config
	router     *gin.Engine
	httpServer *http.Server
	handlers   *handlers.Handlers
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

func New(cfg *config.Config, h *handlers.Handlers, m *metrics.Metrics, logger *zap.Logger) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), handlers.RequestID(), handlers.RequestLogger(logger, m))

	s := &Server{
		config:   cfg,
		router:   router,
		handlers: h,
		metrics:  m,
		logger:   logger.Named("server"),
	}

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handlers.Health)
	s.router.GET("/ready", s.handlers.Ready)
	s.router.GET("/live", s.handlers.Live)
	s.router.GET("/version", s.handlers.Version)

	if s.config.Metrics.Enabled {
		s.router.GET(s.config.Metrics.Path, gin.WrapH(s.metrics.Handler()))
	}
	if s.config.Features.EnableDebugRoutes {
		s.router.GET("/debug", s.handlers.Debug)
	}

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/quotes", s.handlers.CreateQuote)
		v1.GET("/pricing/options", s.handlers.PricingOptions)

		orders := v1.Group("/orders", handlers.RequireUser())
		orders.POST("", s.handlers.CreateOrder)
		orders.GET("", s.handlers.ListOrders)
		orders.GET("/:id", s.handlers.GetOrder)
		orders.PATCH("/:id", s.handlers.UpdateOrder)
		orders.DELETE("/:id", s.handlers.DeleteOrder)
		orders.POST("/:id/complete", s.handlers.CompleteOrder)
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens until Shutdown is called. It returns http.ErrServerClosed
// after a graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("Starting server", zap.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.httpServer.Shutdown(ctx)
}
