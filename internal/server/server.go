package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/ridwanfathin/ai-invoice-import/internal/config"
	"github.com/ridwanfathin/ai-invoice-import/internal/handler"
	"github.com/ridwanfathin/ai-invoice-import/internal/middleware"
	"github.com/ridwanfathin/ai-invoice-import/internal/model"
	"github.com/ridwanfathin/ai-invoice-import/internal/view"
)

const shutdownTimeout = 10 * time.Second

// Server represents the HTTP server of the invoice import frontend
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	config     *config.Config
	logger     logrus.FieldLogger
	closers    []func() error
}

// NewServer creates and configures a new server instance
func NewServer(cfg *config.Config, logger logrus.FieldLogger, importHandler *handler.ImportHandler) (*Server, error) {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))
	router.Use(middleware.RequestResponseLogger(logger))

	tmpl, err := view.Templates()
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(tmpl)

	server := &Server{
		router: router,
		config: cfg,
		logger: logger,
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}

	server.setupRoutes(importHandler)

	return server, nil
}

// corsConfig allows all origins unless an explicit allowlist is configured
func corsConfig(origins []string) cors.Config {
	corsConfig := cors.DefaultConfig()

	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
		corsConfig.AllowCredentials = true
	}

	corsConfig.AddAllowMethods("GET", "POST", "OPTIONS")
	corsConfig.AddAllowHeaders("Origin", "Content-Type", "Accept")
	corsConfig.AddExposeHeaders("Content-Length")
	return corsConfig
}

// OnShutdown registers fn to run after the HTTP server stopped
func (s *Server) OnShutdown(fn func() error) {
	s.closers = append(s.closers, fn)
}

// GetRouter returns the gin router instance
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// setupRoutes configures all application routes
func (s *Server) setupRoutes(importHandler *handler.ImportHandler) {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, model.HealthResponse{Status: "ok"})
	})

	s.router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/ai-invoice")
	})

	// Swagger UI at /api-docs/index.html
	swaggerHandler := ginSwagger.WrapHandler(swaggerFiles.Handler)
	s.router.GET("/api-docs/*any", swaggerHandler)

	s.router.GET("/api-docs", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/api-docs/index.html")
	})

	importHandler.RegisterRoutes(s.router)
}

// Start begins listening for requests and handles graceful shutdown
func (s *Server) Start() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("port", s.config.Port).Info("Server listening")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	s.logger.Info("Shutting down server...")
	if err := s.Shutdown(); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	s.logger.Info("Server exited gracefully")
	return nil
}

// Shutdown gracefully stops the server, then runs the registered shutdown hooks
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)

	for _, fn := range s.closers {
		if cerr := fn(); cerr != nil {
			s.logger.WithError(cerr).Warn("Error during shutdown")
		}
	}
	return err
}
